package loc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

func validRecord() loc.Record {
	return loc.Record{
		Commit:   "a1",
		File:     "src/main.js",
		Type:     "js",
		Line:     "12",
		Depth:    "2",
		Length:   "40",
		Author:   "ethan",
		Date:     "2025-02-10",
		Time:     "14:23:02",
		Timezone: "-08:00",
		Datetime: "2025-02-10T14:23:02-08:00",
	}
}

func TestParseRecord_Valid(t *testing.T) {
	t.Parallel()

	row, err := loc.ParseRecord(validRecord())
	require.NoError(t, err)

	assert.Equal(t, "a1", row.Commit)
	assert.Equal(t, 12, row.Line)
	assert.Equal(t, 2, row.Depth)
	assert.Equal(t, 40, row.Length)
	assert.Equal(t, 14, row.Datetime.Hour())
	assert.Equal(t, time.Monday, row.Date.Weekday())

	_, offset := row.Date.Zone()
	assert.Equal(t, -8*3600, offset)
	assert.Equal(t, 0, row.Date.Hour())
}

func TestParseRecord_NumericErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(*loc.Record)
		field string
		err   error
	}{
		{"line not numeric", func(r *loc.Record) { r.Line = "abc" }, loc.ColLine, loc.ErrNotInteger},
		{"line zero", func(r *loc.Record) { r.Line = "0" }, loc.ColLine, loc.ErrLineNumber},
		{"depth negative", func(r *loc.Record) { r.Depth = "-1" }, loc.ColDepth, loc.ErrNegative},
		{"length empty", func(r *loc.Record) { r.Length = "" }, loc.ColLength, loc.ErrNotInteger},
		{"bad datetime", func(r *loc.Record) { r.Datetime = "yesterday" }, loc.ColDatetime, loc.ErrBadTimestamp},
		{"bad date", func(r *loc.Record) { r.Date = "10/02/2025" }, loc.ColDate, loc.ErrBadTimestamp},
		{"bad time", func(r *loc.Record) { r.Time = "2pm" }, loc.ColTime, loc.ErrBadTimestamp},
		{"bad timezone", func(r *loc.Record) { r.Timezone = "PST" }, loc.ColTimezone, loc.ErrBadTimestamp},
		{"missing commit", func(r *loc.Record) { r.Commit = " " }, loc.ColCommit, loc.ErrMissingCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := validRecord()
			tt.edit(&rec)

			_, err := loc.ParseRecord(rec)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.err)

			var pe *loc.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParseRecord_DerivesDisplayFields(t *testing.T) {
	t.Parallel()

	row, err := loc.ParseRecord(loc.Record{
		Commit:   "a",
		File:     "x.js",
		Line:     "1",
		Depth:    "0",
		Length:   "3",
		Datetime: "2024-01-01T09:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00:00", row.Time)
	assert.Equal(t, "+00:00", row.Timezone)
	assert.Equal(t, "js", row.Type)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), row.Date)
}

func TestTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "css", loc.TypeFor("style/main.CSS"))
	assert.Equal(t, "html", loc.TypeFor("index.html"))
	assert.Equal(t, "makefile", loc.TypeFor("build/Makefile"))
	assert.Equal(t, loc.TypeOther, loc.TypeFor("LICENSE-unknown-name"))
}

func TestParseDatetime(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2024-01-01T12:00Z", "2024-01-01T12:00:00Z", "2024-01-01 14:00:00 +0200"} {
		got, err := loc.ParseDatetime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, err := loc.ParseDatetime("2024-01-01")
	require.ErrorIs(t, err, loc.ErrBadTimestamp)
}
