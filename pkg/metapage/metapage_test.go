package metapage_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/metapage"
	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

const commitCSV = `commit,file,type,line,depth,length,author,date,time,timezone,datetime
aaaaaaaaa1,src/main.js,js,1,0,10,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
aaaaaaaaa1,src/main.js,js,2,1,12,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
bbbbbbbbb2,style.css,css,1,0,8,bob,2024-01-02,14:00:00,+00:00,2024-01-02T14:00:00+00:00
`

func newState(t *testing.T) timeline.State {
	t.Helper()

	res, err := loc.ReadCSV(strings.NewReader(commitCSV), loc.ReadOptions{})
	require.NoError(t, err)

	ds := loc.NewDataset(res.Rows, loc.WithCommitURL("https://example.com/commit/"))

	return timeline.NewState(ds, timeline.DefaultLayout(), 100)
}

func render(t *testing.T, page *plotpage.Page) string {
	t.Helper()

	var buf bytes.Buffer

	require.NoError(t, page.Render(&buf))

	return buf.String()
}

func TestBuild_AllCommits(t *testing.T) {
	t.Parallel()

	html := render(t, metapage.Build(newState(t), metapage.Options{Story: true}))

	assert.Contains(t, html, "Showing all commits.")
	assert.Contains(t, html, "Total LOC")
	assert.Contains(t, html, "Monday")
	assert.Contains(t, html, "Morning")
	assert.Contains(t, html, "No commits selected")
	assert.Contains(t, html, `id="selection-count"`)
	assert.Contains(t, html, "brushselected")
	assert.Contains(t, html, "src/main.js")
	assert.Contains(t, html, "66.7%")
	assert.Contains(t, html, "33.3%")
	assert.Contains(t, html, "https://example.com/commit/aaaaaaaaa1")
	assert.Contains(t, html, "my first commit, and it was glorious")
	assert.Contains(t, html, `data-step="1"`)
}

func TestBuild_CutoffHidesLaterCommits(t *testing.T) {
	t.Parallel()

	st := newState(t).WithCutoff(timeline.At(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	html := render(t, metapage.Build(st, metapage.Options{}))

	assert.Contains(t, html, "Showing commits until Jan 1, 2024 12:00 PM")
	assert.NotContains(t, html, "style.css")
	assert.NotContains(t, html, `id="story"`)
	assert.Contains(t, html, "100.0%")
}

func TestBuild_SelectionFocusesBreakdowns(t *testing.T) {
	t.Parallel()

	st := newState(t)
	// The whole usable area of the default layout selects every commit;
	// restrict to the afternoon commit by projecting it.
	commits := st.Dataset().Commits
	p := st.Chart().Project(commits[1])
	st = st.WithSelection(timeline.Select(timeline.Rect{X0: p.X - 1, Y0: p.Y - 1, X1: p.X + 1, Y1: p.Y + 1}))

	html := render(t, metapage.Build(st, metapage.Options{Theme: plotpage.ThemeDark}))

	assert.Contains(t, html, "1 commit selected")
	assert.Contains(t, html, `"Selected"`)
	assert.Contains(t, html, "style.css")
	assert.NotContains(t, html, "src/main.js")
	assert.Contains(t, html, `data-scheme="dark"`)
}

func TestBuild_TopFiles(t *testing.T) {
	t.Parallel()

	html := render(t, metapage.Build(newState(t), metapage.Options{TopFiles: 1}))

	assert.Contains(t, html, "2 files, top 1 shown")
}

func TestBuild_EmptyDataset(t *testing.T) {
	t.Parallel()

	st := timeline.NewState(loc.NewDataset(nil), timeline.DefaultLayout(), 100)
	html := render(t, metapage.Build(st, metapage.Options{Story: true}))

	assert.Contains(t, html, "n/a")
	assert.Contains(t, html, "0 commits, oldest first.")
}
