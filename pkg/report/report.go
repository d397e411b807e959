// Package report turns commit statistics into terminal tables or JSON/YAML
// documents.
package report

import (
	"time"

	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

// Report is the serializable view of the statistics for one filter state.
type Report struct {
	Source    string          `json:"source"              yaml:"source"`
	Cutoff    *time.Time      `json:"cutoff,omitempty"    yaml:"cutoff,omitempty"`
	Progress  float64         `json:"progress"            yaml:"progress"`
	Selection Selection       `json:"selection"           yaml:"selection"`
	Summary   Summary         `json:"summary"             yaml:"summary"`
	Files     []FileLine      `json:"files"               yaml:"files"`
	Languages []LanguageShare `json:"languages"           yaml:"languages"`
	Rejected  int             `json:"rejected_rows"       yaml:"rejected_rows"`
}

// Selection describes the spatial selection.
type Selection struct {
	Active bool           `json:"active"         yaml:"active"`
	Rect   *timeline.Rect `json:"rect,omitempty" yaml:"rect,omitempty"`
	Count  int            `json:"count"          yaml:"count"`
	Label  string         `json:"label"          yaml:"label"`
}

// Summary holds the headline numbers.
type Summary struct {
	TotalLines     int     `json:"total_lines"               yaml:"total_lines"`
	TotalCommits   int     `json:"total_commits"             yaml:"total_commits"`
	Files          int     `json:"files"                     yaml:"files"`
	Authors        int     `json:"authors"                   yaml:"authors"`
	MaxDepth       int     `json:"max_depth"                 yaml:"max_depth"`
	LongestLine    int     `json:"longest_line"              yaml:"longest_line"`
	AvgLength      float64 `json:"avg_length"                yaml:"avg_length"`
	AvgDepth       float64 `json:"avg_depth"                 yaml:"avg_depth"`
	BusiestWeekday string  `json:"busiest_weekday,omitempty" yaml:"busiest_weekday,omitempty"`
	BusiestPeriod  string  `json:"busiest_period,omitempty"  yaml:"busiest_period,omitempty"`
	Unit           string  `json:"unit"                      yaml:"unit"`
}

// FileLine is the line count of one file.
type FileLine struct {
	File  string `json:"file"  yaml:"file"`
	Type  string `json:"type"  yaml:"type"`
	Lines int    `json:"lines" yaml:"lines"`
}

// LanguageShare is the line share of one type tag.
type LanguageShare struct {
	Type     string  `json:"type"     yaml:"type"`
	Lines    int     `json:"lines"    yaml:"lines"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
	Percent  string  `json:"percent"  yaml:"percent"`
}

// Build computes the report for st. Headline numbers cover the visible
// commits; file and language breakdowns cover the focused commits.
func Build(st timeline.State, opts locstats.Options) Report {
	visible := st.Visible()
	focus := st.Focus()
	sel := st.Selection()
	selected := st.Selected()

	head := locstats.ForCommits(visible, opts)
	breakdown := locstats.ForCommits(focus, opts)

	r := Report{
		Source:   st.Dataset().Source,
		Progress: st.Progress(),
		Selection: Selection{
			Active: sel.Active(),
			Count:  len(selected),
			Label:  locstats.SelectionLabel(sel.Active(), len(selected)),
		},
		Summary:   summaryOf(head, opts),
		Files:     make([]FileLine, len(breakdown.FileLines)),
		Languages: make([]LanguageShare, len(breakdown.Languages)),
		Rejected:  len(st.Dataset().Rejected),
	}

	if at, bounded := st.Cutoff().Time(); bounded {
		r.Cutoff = &at
	}

	if rect, ok := sel.Rect(); ok {
		r.Selection.Rect = &rect
	}

	for i, f := range breakdown.FileLines {
		r.Files[i] = FileLine{File: f.File, Type: f.Type, Lines: f.Lines}
	}

	for i, l := range breakdown.Languages {
		r.Languages[i] = LanguageShare{Type: l.Type, Lines: l.Lines, Fraction: l.Fraction, Percent: l.Percent}
	}

	return r
}

func summaryOf(s locstats.Summary, opts locstats.Options) Summary {
	unit := opts.Unit
	if unit == "" {
		unit = locstats.ByRows
	}

	out := Summary{
		TotalLines:   s.TotalLines,
		TotalCommits: s.TotalCommits,
		Files:        s.Files,
		Authors:      s.Authors,
		MaxDepth:     s.MaxDepth,
		LongestLine:  s.LongestLine,
		AvgLength:    s.AvgLength,
		AvgDepth:     s.AvgDepth,
		Unit:         string(unit),
	}

	if s.BusiestWeekday != nil {
		out.BusiestWeekday = s.BusiestWeekday.Label.String()
	}

	if s.BusiestPeriod != nil {
		out.BusiestPeriod = string(s.BusiestPeriod.Label)
	}

	return out
}
