package loc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

func mustRows(t *testing.T, input string) []loc.Row {
	t.Helper()

	result, err := loc.ReadCSV(strings.NewReader(input), loc.ReadOptions{})
	require.NoError(t, err)

	return result.Rows
}

func TestAggregate_Example(t *testing.T) {
	t.Parallel()

	commits := loc.Aggregate(mustRows(t, sampleCSV))
	require.Len(t, commits, 2)

	assert.Equal(t, "a", commits[0].ID)
	assert.Equal(t, 2, commits[0].TotalLines)
	assert.InDelta(t, 9.0, commits[0].HourFrac, 1e-9)
	assert.Equal(t, "ann", commits[0].Author)

	assert.Equal(t, "b", commits[1].ID)
	assert.Equal(t, 1, commits[1].TotalLines)
	assert.InDelta(t, 14.0, commits[1].HourFrac, 1e-9)
}

func TestAggregate_FirstAppearanceOrderAndPartition(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	ids := []string{"c", "a", "c", "b", "a", "c"}
	rows := make([]loc.Row, len(ids))

	for i, id := range ids {
		rows[i] = loc.Row{Commit: id, File: "f", Line: i + 1, Datetime: base.Add(time.Duration(i) * time.Hour)}
	}

	commits := loc.Aggregate(rows, loc.WithCommitURL("https://example.com/commit/"))
	require.Len(t, commits, 3)

	got := []string{commits[0].ID, commits[1].ID, commits[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, got)
	assert.Equal(t, "https://example.com/commit/c", commits[0].URL)

	total := 0
	for _, c := range commits {
		assert.Len(t, c.Lines, c.TotalLines)

		for _, row := range c.Lines {
			assert.Equal(t, c.ID, row.Commit)
		}

		total += c.TotalLines
	}

	assert.Equal(t, len(rows), total)
	assert.Len(t, loc.RowsOf(commits), len(rows))

	// The first row of a group provides the timestamp.
	assert.Equal(t, base, commits[0].Datetime)
	assert.InDelta(t, 10.5, commits[0].HourFrac, 1e-9)
}

func TestCommitFiles(t *testing.T) {
	t.Parallel()

	c := loc.Commit{Lines: []loc.Row{{File: "a"}, {File: "b"}, {File: "a"}}}
	assert.Equal(t, []string{"a", "b"}, c.Files())
}

func TestExtents(t *testing.T) {
	t.Parallel()

	_, _, ok := loc.TimeExtent(nil)
	assert.False(t, ok)

	commits := loc.Aggregate(mustRows(t, sampleCSV))

	first, last, ok := loc.TimeExtent(commits)
	require.True(t, ok)
	assert.Equal(t, commits[0].Datetime, first)
	assert.Equal(t, commits[1].Datetime, last)

	lo, hi, ok := loc.LineExtent(commits)
	require.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rec := &recordingRecorder{}

	ds, err := loc.Load(context.Background(), path, loc.LoadOptions{Recorder: rec})
	require.NoError(t, err)

	assert.False(t, ds.Empty())
	assert.Len(t, ds.Rows, 3)
	assert.Len(t, ds.Commits, 2)
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, 3, rec.parsed)
	assert.Equal(t, 2, rec.commits)
}

func TestLoad_EmptyIsNotAnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loc.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(loc.Columns, ",")+"\n"), 0o600))

	ds, err := loc.Load(context.Background(), path, loc.LoadOptions{})
	require.NoError(t, err)
	assert.True(t, ds.Empty())
}

type recordingRecorder struct {
	parsed, rejected, commits int
}

func (r *recordingRecorder) RecordLoad(_ context.Context, parsed, rejected, commits int, _ time.Duration) {
	r.parsed, r.rejected, r.commits = parsed, rejected, commits
}
