package loc

import (
	"time"
)

const minutesPerHour = 60

// Commit aggregates every Row that shares a commit id.
// TotalLines always equals len(Lines).
type Commit struct {
	ID       string
	URL      string
	Author   string
	Date     time.Time
	Time     string
	Timezone string
	Datetime time.Time

	// HourFrac is the time of day in the commit's own offset, in [0, 24).
	HourFrac   float64
	TotalLines int

	// Lines are the rows of this commit in file order.
	Lines []Row
}

// Files returns the distinct file paths touched by the commit, in first-seen order.
func (c Commit) Files() []string {
	seen := make(map[string]struct{}, len(c.Lines))
	files := make([]string, 0, len(c.Lines))

	for _, row := range c.Lines {
		if _, ok := seen[row.File]; ok {
			continue
		}

		seen[row.File] = struct{}{}
		files = append(files, row.File)
	}

	return files
}

// AggregateOption customizes Aggregate.
type AggregateOption func(*aggregateConfig)

type aggregateConfig struct {
	urlPrefix string
}

// WithCommitURL sets the prefix used to build each commit's URL (prefix + id).
func WithCommitURL(prefix string) AggregateOption {
	return func(c *aggregateConfig) {
		c.urlPrefix = prefix
	}
}

// HourFraction returns hour + minute/60 of t in t's own location.
func HourFraction(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/minutesPerHour
}

// Aggregate groups rows by commit id. Commits are emitted in order of first
// appearance; the first row of each group supplies author and timestamps.
func Aggregate(rows []Row, opts ...AggregateOption) []Commit {
	var cfg aggregateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	order := make([]string, 0)
	groups := make(map[string][]Row)

	for _, row := range rows {
		if _, ok := groups[row.Commit]; !ok {
			order = append(order, row.Commit)
		}

		groups[row.Commit] = append(groups[row.Commit], row)
	}

	commits := make([]Commit, 0, len(order))

	for _, id := range order {
		lines := groups[id]
		first := lines[0]

		commit := Commit{
			ID:         id,
			Author:     first.Author,
			Date:       first.Date,
			Time:       first.Time,
			Timezone:   first.Timezone,
			Datetime:   first.Datetime,
			HourFrac:   HourFraction(first.Datetime),
			TotalLines: len(lines),
			Lines:      lines,
		}

		if cfg.urlPrefix != "" {
			commit.URL = cfg.urlPrefix + id
		}

		commits = append(commits, commit)
	}

	return commits
}

// RowsOf flattens the rows of the given commits, preserving commit order.
func RowsOf(commits []Commit) []Row {
	total := 0
	for _, c := range commits {
		total += len(c.Lines)
	}

	rows := make([]Row, 0, total)
	for _, c := range commits {
		rows = append(rows, c.Lines...)
	}

	return rows
}
