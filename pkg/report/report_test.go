package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
	"github.com/Sumatoshi-tech/locmeta/pkg/report"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

const csvData = `commit,file,type,line,depth,length,author,date,time,timezone,datetime
a,src/main.js,js,1,0,10,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
a,src/main.js,js,2,1,12,ann,2024-01-01,09:00:00,+00:00,2024-01-01T09:00:00+00:00
b,style.css,css,1,0,8,bob,2024-01-02,14:00:00,+00:00,2024-01-02T14:00:00+00:00
`

func newState(t *testing.T) timeline.State {
	t.Helper()

	res, err := loc.ReadCSV(strings.NewReader(csvData), loc.ReadOptions{})
	require.NoError(t, err)

	ds := loc.NewDataset(res.Rows)
	ds.Source = "loc.csv"

	return timeline.NewState(ds, timeline.DefaultLayout(), 100)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	r := report.Build(newState(t), locstats.Options{})

	assert.Equal(t, "loc.csv", r.Source)
	assert.Nil(t, r.Cutoff)
	assert.InDelta(t, 100, r.Progress, 1e-9)
	assert.Equal(t, 3, r.Summary.TotalLines)
	assert.Equal(t, 2, r.Summary.TotalCommits)
	assert.Equal(t, "Monday", r.Summary.BusiestWeekday)
	assert.Equal(t, "Morning", r.Summary.BusiestPeriod)
	assert.Equal(t, "rows", r.Summary.Unit)
	assert.Equal(t, "No commits selected", r.Selection.Label)
	require.Len(t, r.Files, 2)
	assert.Equal(t, report.FileLine{File: "src/main.js", Type: "js", Lines: 2}, r.Files[0])
	require.Len(t, r.Languages, 2)
	assert.Equal(t, "66.7%", r.Languages[0].Percent)
}

func TestBuild_CutoffAndSelection(t *testing.T) {
	t.Parallel()

	st := newState(t).WithCutoff(timeline.At(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	usable := st.Chart().Layout.Usable()
	st = st.WithSelection(timeline.Select(usable))

	r := report.Build(st, locstats.Options{Unit: locstats.ByCommits})

	require.NotNil(t, r.Cutoff)
	assert.Equal(t, 1, r.Summary.TotalCommits)
	assert.Equal(t, "commits", r.Summary.Unit)
	assert.True(t, r.Selection.Active)
	require.NotNil(t, r.Selection.Rect)
	assert.Equal(t, 1, r.Selection.Count)
	assert.Equal(t, "1 commit selected", r.Selection.Label)
	require.Len(t, r.Files, 1)
}

func TestWrite_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.Write(&buf, report.Build(newState(t), locstats.Options{}), report.FormatText, 1))

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Total LOC")
	assert.Contains(t, out, "Files (2)")
	assert.Contains(t, out, "src/main.js")
	assert.NotContains(t, out, "style.css")
	assert.Contains(t, out, "33.3%")
	assert.NotContains(t, out, "rejected")
}

func TestWrite_JSONAndYAML(t *testing.T) {
	t.Parallel()

	r := report.Build(newState(t), locstats.Options{})

	var jsonBuf bytes.Buffer

	require.NoError(t, report.Write(&jsonBuf, r, report.FormatJSON, 0))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Contains(t, decoded, "summary")
	assert.NotContains(t, decoded, "cutoff")

	var yamlBuf bytes.Buffer

	require.NoError(t, report.Write(&yamlBuf, r, report.FormatYAML, 0))

	var back report.Report

	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &back))
	assert.Equal(t, r.Summary, back.Summary)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.ParseFormat("xml")
	require.ErrorIs(t, err, report.ErrUnknownFormat)

	require.ErrorIs(t, report.Encode(&bytes.Buffer{}, 1, report.FormatText), report.ErrUnknownFormat)
}

func TestWriteStory(t *testing.T) {
	t.Parallel()

	story := timeline.NewStory(newState(t).Dataset().Commits)

	var text bytes.Buffer

	require.NoError(t, report.WriteStory(&text, story, report.FormatText))
	assert.Contains(t, text.String(), "my first commit")
	assert.Equal(t, 4, strings.Count(text.String(), "\n"))

	var js bytes.Buffer

	require.NoError(t, report.WriteStory(&js, story, report.FormatJSON))

	var steps []report.StoryStep

	require.NoError(t, json.Unmarshal(js.Bytes(), &steps))
	require.Len(t, steps, 2)
	assert.Equal(t, "a", steps[0].Commit)
}
