// Package loc parses the line-level commit-history export (loc.csv) into
// typed rows and groups them into commits.
package loc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column names of the export header.
const (
	ColCommit   = "commit"
	ColFile     = "file"
	ColType     = "type"
	ColLine     = "line"
	ColDepth    = "depth"
	ColLength   = "length"
	ColAuthor   = "author"
	ColDate     = "date"
	ColTime     = "time"
	ColTimezone = "timezone"
	ColDatetime = "datetime"
)

// Columns lists the export header in canonical order.
var Columns = []string{
	ColCommit, ColFile, ColType, ColLine, ColDepth, ColLength,
	ColAuthor, ColDate, ColTime, ColTimezone, ColDatetime,
}

// Display layouts for the derived date, time and timezone fields.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	TimezoneLayout = "-07:00"
)

// Sentinel parse failures, wrapped by ParseError.
var (
	ErrNotInteger    = errors.New("not an integer")
	ErrNegative      = errors.New("negative value")
	ErrLineNumber    = errors.New("line number must be at least 1")
	ErrBadTimestamp  = errors.New("unrecognised timestamp")
	ErrMissingCommit = errors.New("empty commit id")
)

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
}

var clockLayouts = []string{TimeLayout, "15:04"}

var offsetLayouts = []string{"Z07:00", "-0700"}

// Record is one raw CSV record keyed by column.
type Record struct {
	Commit   string
	File     string
	Type     string
	Line     string
	Depth    string
	Length   string
	Author   string
	Date     string
	Time     string
	Timezone string
	Datetime string
}

// Row is one changed source line. Rows are never modified after parsing.
type Row struct {
	Commit string
	File   string
	Type   string
	Line   int
	Depth  int
	Length int
	Author string

	// Date is midnight of the row's calendar day in the row's own offset.
	Date     time.Time
	Time     string
	Timezone string

	// Datetime is the canonical timestamp.
	Datetime time.Time
}

// ParseError describes a record that could not be turned into a Row.
type ParseError struct {
	// Line is the 1-based line in the source file, or 0 when unknown.
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: field %q: %q: %v", e.Line, e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("field %q: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecord converts a raw record into a Row. The datetime field is the
// canonical timestamp. Date, time and timezone must parse when present; when
// all three are empty they are derived from datetime.
func ParseRecord(rec Record) (Row, error) {
	if strings.TrimSpace(rec.Commit) == "" {
		return Row{}, &ParseError{Field: ColCommit, Value: rec.Commit, Err: ErrMissingCommit}
	}

	line, err := parseCount(ColLine, rec.Line)
	if err != nil {
		return Row{}, err
	}

	if line < 1 {
		return Row{}, &ParseError{Field: ColLine, Value: rec.Line, Err: ErrLineNumber}
	}

	depth, err := parseCount(ColDepth, rec.Depth)
	if err != nil {
		return Row{}, err
	}

	length, err := parseCount(ColLength, rec.Length)
	if err != nil {
		return Row{}, err
	}

	datetime, err := ParseDatetime(rec.Datetime)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Commit:   rec.Commit,
		File:     rec.File,
		Type:     rec.Type,
		Line:     line,
		Depth:    depth,
		Length:   length,
		Author:   rec.Author,
		Datetime: datetime,
	}

	if row.Type == "" {
		row.Type = TypeFor(rec.File)
	}

	err = row.fillDisplay(rec)
	if err != nil {
		return Row{}, err
	}

	return row, nil
}

func (r *Row) fillDisplay(rec Record) error {
	if rec.Date == "" && rec.Time == "" && rec.Timezone == "" {
		r.Date = midnight(r.Datetime)
		r.Time = r.Datetime.Format(TimeLayout)
		r.Timezone = r.Datetime.Format(TimezoneLayout)

		return nil
	}

	loc, err := parseOffset(rec.Timezone)
	if err != nil {
		return err
	}

	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(rec.Date), loc)
	if err != nil {
		return &ParseError{Field: ColDate, Value: rec.Date, Err: ErrBadTimestamp}
	}

	if !parsesWithAny(clockLayouts, strings.TrimSpace(rec.Time)) {
		return &ParseError{Field: ColTime, Value: rec.Time, Err: ErrBadTimestamp}
	}

	r.Date = date
	r.Time = rec.Time
	r.Timezone = rec.Timezone

	return nil
}

func parseCount(field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{Field: field, Value: raw, Err: ErrNotInteger}
	}

	if value < 0 {
		return 0, &ParseError{Field: field, Value: raw, Err: ErrNegative}
	}

	return value, nil
}

// ParseDatetime parses a datetime cell. Every accepted layout carries a zone.
func ParseDatetime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)

	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, &ParseError{Field: ColDatetime, Value: raw, Err: ErrBadTimestamp}
}

func parseOffset(raw string) (*time.Location, error) {
	trimmed := strings.TrimSpace(raw)

	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			name, offset := t.Zone()

			return time.FixedZone(name, offset), nil
		}
	}

	return nil, &ParseError{Field: ColTimezone, Value: raw, Err: ErrBadTimestamp}
}

func parsesWithAny(layouts []string, value string) bool {
	for _, layout := range layouts {
		_, err := time.Parse(layout, value)
		if err == nil {
			return true
		}
	}

	return false
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
