package locstats_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
)

const exampleCSV = `commit,file,type,line,depth,length,author,datetime
a,x.js,js,1,0,10,ann,2024-01-01T09:00Z
a,x.js,js,2,1,12,ann,2024-01-01T09:00Z
b,y.css,css,1,0,8,bob,2024-01-02T14:00Z
`

func exampleDataset(t *testing.T) *loc.Dataset {
	t.Helper()

	result, err := loc.ReadCSV(strings.NewReader(exampleCSV), loc.ReadOptions{})
	require.NoError(t, err)

	return loc.NewDataset(result.Rows)
}

func TestCompute_Example(t *testing.T) {
	t.Parallel()

	ds := exampleDataset(t)
	s := locstats.Compute(ds.Rows, ds.Commits, locstats.Options{})

	assert.Equal(t, 3, s.TotalLines)
	assert.Equal(t, 2, s.TotalCommits)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 2, s.Authors)
	assert.Equal(t, 1, s.MaxDepth)
	assert.Equal(t, 12, s.LongestLine)
	assert.InDelta(t, 10.0, s.AvgLength, 1e-9)

	require.Len(t, s.Languages, 2)
	assert.Equal(t, "js", s.Languages[0].Type)
	assert.Equal(t, 2, s.Languages[0].Lines)
	assert.Equal(t, "66.7%", s.Languages[0].Percent)
	assert.Equal(t, "css", s.Languages[1].Type)
	assert.Equal(t, "33.3%", s.Languages[1].Percent)

	// Two rows at 09:00 (Morning) against one at 14:00 (Afternoon).
	require.NotNil(t, s.BusiestPeriod)
	assert.Equal(t, locstats.Morning, s.BusiestPeriod.Label)
	assert.Equal(t, 2, s.BusiestPeriod.Count)

	require.NotNil(t, s.BusiestWeekday)
	assert.Equal(t, time.Monday, s.BusiestWeekday.Label)

	require.Len(t, s.FileLines, 2)
	assert.Equal(t, locstats.FileStat{File: "x.js", Type: "js", Lines: 2}, s.FileLines[0])
}

func TestCompute_ByCommitsTieBreak(t *testing.T) {
	t.Parallel()

	ds := exampleDataset(t)
	s := locstats.Compute(ds.Rows, ds.Commits, locstats.Options{Unit: locstats.ByCommits})

	// One Monday morning commit and one Tuesday afternoon commit: ties go to
	// the earlier weekday and the earlier period.
	require.NotNil(t, s.BusiestWeekday)
	assert.Equal(t, time.Monday, s.BusiestWeekday.Label)
	assert.Equal(t, 1, s.BusiestWeekday.Count)
	require.NotNil(t, s.BusiestPeriod)
	assert.Equal(t, locstats.Morning, s.BusiestPeriod.Label)
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	s := locstats.Compute(nil, nil, locstats.Options{})

	assert.Zero(t, s.TotalLines)
	assert.Zero(t, s.TotalCommits)
	assert.Zero(t, s.Files)
	assert.Nil(t, s.BusiestWeekday)
	assert.Nil(t, s.BusiestPeriod)
	assert.Empty(t, s.Languages)
	assert.Empty(t, s.FileLines)
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	ds := exampleDataset(t)

	first := locstats.ForCommits(ds.Commits, locstats.Options{})
	second := locstats.ForCommits(ds.Commits, locstats.Options{})

	assert.Equal(t, first, second)
}

func TestBusiestPeriod_NightHoursOnlyExcluded(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time { return time.Date(2024, 1, 1, h, 30, 0, 0, time.UTC) }

	assert.Nil(t, locstats.BusiestPeriod([]time.Time{at(0), at(3), at(7)}))

	got := locstats.BusiestPeriod([]time.Time{at(2), at(18), at(23), at(13)})
	require.NotNil(t, got)
	assert.Equal(t, locstats.Night, got.Label)
	assert.Equal(t, 2, got.Count)
}

func TestPeriodOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour   int
		period locstats.Period
		ok     bool
	}{
		{7, "", false},
		{8, locstats.Morning, true},
		{12, locstats.Morning, true},
		{13, locstats.Afternoon, true},
		{17, locstats.Afternoon, true},
		{18, locstats.Night, true},
		{23, locstats.Night, true},
	}

	for _, tt := range tests {
		p, ok := locstats.PeriodOf(tt.hour)
		assert.Equal(t, tt.ok, ok, "hour %d", tt.hour)
		assert.Equal(t, tt.period, p, "hour %d", tt.hour)
	}
}

func TestFileLines_TieBreakAndDominantType(t *testing.T) {
	t.Parallel()

	rows := []loc.Row{
		{File: "b.html", Type: "html"},
		{File: "a.html", Type: "html"},
		{File: "a.html", Type: "js"},
		{File: "a.html", Type: "js"},
		{File: "c.css", Type: "css"},
		{File: "c.css", Type: "css"},
		{File: "c.css", Type: "css"},
	}

	got := locstats.FileLines(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "a.html", got[0].File)
	assert.Equal(t, "js", got[0].Type)
	assert.Equal(t, "c.css", got[1].File)
	assert.Equal(t, "b.html", got[2].File)
}

func TestParseUnit(t *testing.T) {
	t.Parallel()

	u, err := locstats.ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, locstats.ByRows, u)

	u, err = locstats.ParseUnit("commits")
	require.NoError(t, err)
	assert.Equal(t, locstats.ByCommits, u)

	_, err = locstats.ParseUnit("files")
	require.ErrorIs(t, err, locstats.ErrUnknownUnit)
}

func TestSelectionLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No commits selected", locstats.SelectionLabel(false, 3))
	assert.Equal(t, "No commits selected", locstats.SelectionLabel(true, 0))
	assert.Equal(t, "1 commit selected", locstats.SelectionLabel(true, 1))
	assert.Equal(t, "4 commits selected", locstats.SelectionLabel(true, 4))
}
