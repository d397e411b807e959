package projects_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/projects"
	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

const sampleJSON = `[
  {"title": "Lab 1", "image": "img/lab1.png", "year": 2024, "description": "HTML basics"},
  {"title": "Weather Viz", "image": "", "year": "2023", "description": "D3 charts of rainfall"},
  {"title": "Lab 2", "image": "img/lab2.png", "year": 2024, "description": "CSS layout"},
  {"title": "Portfolio", "year": 2025, "description": "This site"}
]`

func sample(t *testing.T) []projects.Project {
	t.Helper()

	list, err := projects.Parse([]byte(sampleJSON))
	require.NoError(t, err)

	return list
}

func TestParse(t *testing.T) {
	t.Parallel()

	list := sample(t)

	require.Len(t, list, 4)
	assert.Equal(t, projects.Year("2024"), list[0].Year)
	assert.Equal(t, projects.Year("2023"), list[1].Year)
	assert.Empty(t, list[3].Image)
}

func TestParse_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not an array", doc: `{"title": "x"}`},
		{name: "missing year", doc: `[{"title": "x"}]`},
		{name: "empty title", doc: `[{"title": "", "year": 2024}]`},
		{name: "fractional year", doc: `[{"title": "x", "year": 2024.5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := projects.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, projects.ErrInvalidProjects)

			var verr *projects.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Issues)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := projects.Parse([]byte(`[{`))
	require.ErrorIs(t, err, projects.ErrInvalidProjects)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	list, err := projects.Load(context.Background(), path, source.Options{})
	require.NoError(t, err)
	assert.Len(t, list, 4)

	_, err = projects.Load(context.Background(), filepath.Join(t.TempDir(), "none.json"), source.Options{})

	var fetchErr *source.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	list := sample(t)

	assert.Len(t, projects.Filter{}.Apply(list), 4)
	assert.False(t, projects.Filter{}.Active())

	byYear := projects.Filter{Year: "2024"}.Apply(list)
	require.Len(t, byYear, 2)
	assert.Equal(t, "Lab 1", byYear[0].Title)
	assert.Equal(t, "Lab 2", byYear[1].Title)

	byQuery := projects.Filter{Query: "d3 CHARTS"}.Apply(list)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Weather Viz", byQuery[0].Title)

	// The query also matches the year and image values.
	assert.Len(t, projects.Filter{Query: "2025"}.Apply(list), 1)
	assert.Len(t, projects.Filter{Query: "img/"}.Apply(list), 2)

	both := projects.Filter{Year: "2024", Query: "css"}.Apply(list)
	require.Len(t, both, 1)
	assert.Equal(t, "Lab 2", both[0].Title)

	assert.Empty(t, projects.Filter{Year: "1999"}.Apply(list))
}

func TestRollupByYear(t *testing.T) {
	t.Parallel()

	got := projects.RollupByYear(sample(t))

	assert.Equal(t, []projects.YearCount{
		{Year: "2024", Count: 2},
		{Year: "2023", Count: 1},
		{Year: "2025", Count: 1},
	}, got)
	assert.Empty(t, projects.RollupByYear(nil))
}

func TestColors_StableAcrossFilters(t *testing.T) {
	t.Parallel()

	list := sample(t)
	full := projects.NewView(list, projects.Filter{})
	filtered := projects.NewView(list, projects.Filter{Query: "weather"})

	require.Len(t, filtered.Years, 1)
	assert.Equal(t, full.Color("2023"), filtered.Color("2023"))
	assert.Equal(t, projects.Tableau10[0], full.Color("2024"))
	assert.Equal(t, projects.Tableau10[1], full.Color("2023"))
	assert.Equal(t, projects.Tableau10[3], full.Color("2030"))
}

func TestView(t *testing.T) {
	t.Parallel()

	v := projects.NewView(sample(t), projects.Filter{Year: "2023"})

	require.Len(t, v.Projects, 1)
	assert.Equal(t, "1 Project", v.Heading())
	assert.Len(t, v.Years, 3)

	assert.Equal(t, "4 Projects", projects.NewView(sample(t), projects.Filter{}).Heading())
}

func TestBuildPage(t *testing.T) {
	t.Parallel()

	v := projects.NewView(sample(t), projects.Filter{Year: "2024", Query: "lab"})
	page := projects.BuildPage(v, projects.PageOptions{
		Theme: plotpage.ThemeDark,
		Nav:   []plotpage.NavItem{{Title: "Projects", Href: "/projects/", Current: true}},
	})

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	html := buf.String()
	assert.Contains(t, html, "2 Projects")
	assert.Contains(t, html, "2024 (selected)")
	assert.Contains(t, html, `img/lab1.png`)
	assert.Contains(t, html, "Year 2024, matching &#34;lab&#34;")
	assert.NotContains(t, html, "Weather Viz")
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	view := projects.NewView(sample(t), projects.Filter{Year: "2024"})

	var buf bytes.Buffer
	require.NoError(t, projects.WriteText(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "2 Projects")
	assert.Contains(t, out, "2024 *")
	assert.Contains(t, out, "Lab 2")
	assert.NotContains(t, out, "Weather Viz")

	listing := view.Listing()
	assert.Equal(t, "2024", listing.Year)
	assert.Len(t, listing.Projects, 2)
	assert.Len(t, listing.Years, 3)
}
