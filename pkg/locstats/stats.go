// Package locstats computes summary statistics over any subset of rows and
// commits: the whole dataset, the commits before a cutoff or a brushed
// selection. Every function is pure.
package locstats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// Period is a part of the day used by the busiest-period statistic.
type Period string

// Periods of the day. Hours 0-7 belong to none of them.
const (
	Morning   Period = "Morning"
	Afternoon Period = "Afternoon"
	Night     Period = "Night"
)

// Periods lists the day periods in tie-break order.
var Periods = []Period{Morning, Afternoon, Night}

// Hour boundaries of the day periods.
const (
	morningStart   = 8
	afternoonStart = 13
	nightStart     = 18
	dayEnd         = 24
)

// PeriodOf returns the period containing hour, and false for 0:00-7:59.
func PeriodOf(hour int) (Period, bool) {
	switch {
	case hour >= morningStart && hour < afternoonStart:
		return Morning, true
	case hour >= afternoonStart && hour < nightStart:
		return Afternoon, true
	case hour >= nightStart && hour < dayEnd:
		return Night, true
	default:
		return "", false
	}
}

// Unit selects what the busiest-weekday and busiest-period counts are made of.
type Unit string

// Counting units.
const (
	ByRows    Unit = "rows"
	ByCommits Unit = "commits"
)

// ParseUnit validates a unit name.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case ByRows, ByCommits:
		return Unit(s), nil
	case "":
		return ByRows, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Options configures Compute.
type Options struct {
	Unit Unit
}

// FileStat is the number of lines of one file in the subset.
type FileStat struct {
	File  string
	Type  string
	Lines int
}

// LanguageShare is the number and share of lines of one type tag.
type LanguageShare struct {
	Type     string
	Lines    int
	Fraction float64
	Percent  string
}

// Busiest holds a maximal group label and its count.
type Busiest[T comparable] struct {
	Label T
	Count int
}

// Summary is the result of Compute. Busiest fields are nil when the subset
// has nothing to count.
type Summary struct {
	TotalLines   int
	TotalCommits int
	Files        int
	Authors      int
	MaxDepth     int
	LongestLine  int
	AvgLength    float64
	AvgDepth     float64

	BusiestWeekday *Busiest[time.Weekday]
	BusiestPeriod  *Busiest[Period]

	FileLines []FileStat
	Languages []LanguageShare
}

// Compute summarizes rows and commits. rows and commits are taken as given;
// callers pass loc.RowsOf(commits) to keep the two consistent.
func Compute(rows []loc.Row, commits []loc.Commit, opts Options) Summary {
	unit := opts.Unit
	if unit == "" {
		unit = ByRows
	}

	summary := Summary{
		TotalLines:   len(rows),
		TotalCommits: len(commits),
		Files:        countDistinct(rows, func(r loc.Row) string { return r.File }),
		Authors:      countDistinct(rows, func(r loc.Row) string { return r.Author }),
		FileLines:    FileLines(rows),
		Languages:    Languages(rows),
	}

	fillLineShape(&summary, rows)

	if unit == ByCommits {
		summary.BusiestWeekday = BusiestWeekday(commitDates(commits))
		summary.BusiestPeriod = BusiestPeriod(commitTimes(commits))
	} else {
		summary.BusiestWeekday = BusiestWeekday(rowDates(rows))
		summary.BusiestPeriod = BusiestPeriod(rowTimes(rows))
	}

	return summary
}

// ForCommits summarizes commits and the rows they own.
func ForCommits(commits []loc.Commit, opts Options) Summary {
	return Compute(loc.RowsOf(commits), commits, opts)
}

func fillLineShape(s *Summary, rows []loc.Row) {
	if len(rows) == 0 {
		return
	}

	var sumLength, sumDepth int

	for _, r := range rows {
		s.MaxDepth = max(s.MaxDepth, r.Depth)
		s.LongestLine = max(s.LongestLine, r.Length)
		sumLength += r.Length
		sumDepth += r.Depth
	}

	s.AvgLength = float64(sumLength) / float64(len(rows))
	s.AvgDepth = float64(sumDepth) / float64(len(rows))
}

// BusiestWeekday returns the weekday with the most dates. Ties go to the
// weekday that comes first in the week, Sunday first. Nil for no dates.
func BusiestWeekday(dates []time.Time) *Busiest[time.Weekday] {
	var counts [7]int

	for _, d := range dates {
		counts[d.Weekday()]++
	}

	var best *Busiest[time.Weekday]

	for day, n := range counts {
		if n > 0 && (best == nil || n > best.Count) {
			best = &Busiest[time.Weekday]{Label: time.Weekday(day), Count: n}
		}
	}

	return best
}

// BusiestPeriod returns the day period with the most instants. Instants
// between 0:00 and 7:59 are not counted. Ties go to the earlier period.
func BusiestPeriod(instants []time.Time) *Busiest[Period] {
	counts := make(map[Period]int, len(Periods))

	for _, t := range instants {
		if p, ok := PeriodOf(t.Hour()); ok {
			counts[p]++
		}
	}

	var best *Busiest[Period]

	for _, p := range Periods {
		n := counts[p]
		if n > 0 && (best == nil || n > best.Count) {
			best = &Busiest[Period]{Label: p, Count: n}
		}
	}

	return best
}

// FileLines counts lines per file, most lines first, ties by path. Each
// file's type is the tag carried by most of its lines.
func FileLines(rows []loc.Row) []FileStat {
	counts := make(map[string]int)
	typeCounts := make(map[string]map[string]int)

	for _, r := range rows {
		counts[r.File]++

		if typeCounts[r.File] == nil {
			typeCounts[r.File] = make(map[string]int)
		}

		typeCounts[r.File][r.Type]++
	}

	stats := make([]FileStat, 0, len(counts))
	for file, n := range counts {
		stats = append(stats, FileStat{File: file, Type: dominant(typeCounts[file]), Lines: n})
	}

	slices.SortFunc(stats, func(a, b FileStat) int {
		if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
			return c
		}

		return cmp.Compare(a.File, b.File)
	})

	return stats
}

// Languages counts lines per type tag with their share of all rows, most
// lines first, ties by tag.
func Languages(rows []loc.Row) []LanguageShare {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Type]++
	}

	shares := make([]LanguageShare, 0, len(counts))

	for typ, n := range counts {
		fraction := float64(n) / float64(len(rows))
		shares = append(shares, LanguageShare{
			Type:     typ,
			Lines:    n,
			Fraction: fraction,
			Percent:  FormatPercent(fraction),
		})
	}

	slices.SortFunc(shares, func(a, b LanguageShare) int {
		if c := cmp.Compare(b.Lines, a.Lines); c != 0 {
			return c
		}

		return cmp.Compare(a.Type, b.Type)
	})

	return shares
}

// FormatPercent formats a fraction as a percentage with one decimal.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// SelectionLabel describes how many commits a selection holds.
func SelectionLabel(active bool, n int) string {
	switch {
	case !active || n == 0:
		return "No commits selected"
	case n == 1:
		return "1 commit selected"
	default:
		return fmt.Sprintf("%d commits selected", n)
	}
}

func dominant(counts map[string]int) string {
	best, bestN := "", -1

	for label, n := range counts {
		if n > bestN || (n == bestN && label < best) {
			best, bestN = label, n
		}
	}

	return best
}

func countDistinct(rows []loc.Row, key func(loc.Row) string) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}

	return len(seen)
}

func rowDates(rows []loc.Row) []time.Time {
	out := make([]time.Time, len(rows))
	for i, r := range rows {
		out[i] = r.Date
	}

	return out
}

func rowTimes(rows []loc.Row) []time.Time {
	out := make([]time.Time, len(rows))
	for i, r := range rows {
		out[i] = r.Datetime
	}

	return out
}

func commitDates(commits []loc.Commit) []time.Time {
	out := make([]time.Time, len(commits))
	for i, c := range commits {
		out[i] = c.Date
	}

	return out
}

func commitTimes(commits []loc.Commit) []time.Time {
	out := make([]time.Time, len(commits))
	for i, c := range commits {
		out[i] = c.Datetime
	}

	return out
}
