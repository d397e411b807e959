package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText renders colored tables.
	FormatText Format = "text"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

const (
	cutoffLayout = "2006-01-02 15:04:05 -07:00"
	notAvailable = "n/a"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Encode writes v as JSON or YAML. Text is not a valid format here.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return nil
	case FormatText:
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write renders r in the given format.
func Write(w io.Writer, r Report, format Format, topFiles int) error {
	if format != FormatText {
		return Encode(w, r, format)
	}

	heading := color.New(color.Bold, color.FgCyan)

	var b strings.Builder

	heading.Fprintln(&b, "Summary")
	b.WriteString(summaryTable(r).Render())
	b.WriteString("\n\n")

	files := r.Files
	if topFiles > 0 && len(files) > topFiles {
		files = files[:topFiles]
	}

	heading.Fprintf(&b, "Files (%d)\n", len(r.Files))
	b.WriteString(filesTable(files).Render())
	b.WriteString("\n\n")

	heading.Fprintln(&b, "Languages")
	b.WriteString(languagesTable(r.Languages).Render())
	b.WriteString("\n")

	if r.Rejected > 0 {
		color.New(color.FgYellow).Fprintf(&b, "\n%s rows were rejected while parsing\n", humanize.Comma(int64(r.Rejected)))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)

	return tbl
}

func summaryTable(r Report) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value"})

	cutoff := "none"
	if r.Cutoff != nil {
		cutoff = r.Cutoff.Format(cutoffLayout)
	}

	s := r.Summary

	tbl.AppendRows([]table.Row{
		{"Source", r.Source},
		{"Cutoff", cutoff},
		{"Progress", strconv.FormatFloat(r.Progress, 'f', 0, 64)},
		{"Total LOC", humanize.Comma(int64(s.TotalLines))},
		{"Total commits", humanize.Comma(int64(s.TotalCommits))},
		{"Files", humanize.Comma(int64(s.Files))},
		{"Authors", s.Authors},
		{"Max depth", s.MaxDepth},
		{"Longest line", s.LongestLine},
		{"Average line length", fmt.Sprintf("%.1f", s.AvgLength)},
		{"Average depth", fmt.Sprintf("%.1f", s.AvgDepth)},
		{"Busiest weekday (" + s.Unit + ")", orNA(s.BusiestWeekday)},
		{"Busiest period (" + s.Unit + ")", orNA(s.BusiestPeriod)},
		{"Selection", r.Selection.Label},
	})

	return tbl
}

func filesTable(files []FileLine) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"File", "Type", "Lines"})

	for _, f := range files {
		tbl.AppendRow(table.Row{f.File, f.Type, humanize.Comma(int64(f.Lines))})
	}

	return tbl
}

func languagesTable(langs []LanguageShare) table.Writer {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Type", "Lines", "Share"})

	for _, l := range langs {
		tbl.AppendRow(table.Row{l.Type, humanize.Comma(int64(l.Lines)), l.Percent})
	}

	return tbl
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}

	return s
}

// StoryStep is the serializable form of a story step.
type StoryStep struct {
	Index  int    `json:"index"         yaml:"index"`
	Commit string `json:"commit"        yaml:"commit"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Text   string `json:"text"          yaml:"text"`
}

// WriteStory renders the story steps in the given format.
func WriteStory(w io.Writer, story *timeline.Story, format Format) error {
	steps := make([]StoryStep, 0, story.Len())
	for _, s := range story.Steps() {
		steps = append(steps, StoryStep{Index: s.Index, Commit: s.Commit.ID, URL: s.Commit.URL, Text: s.Text})
	}

	if format != FormatText {
		return Encode(w, steps, format)
	}

	idColor := color.New(color.FgYellow)

	var b strings.Builder

	for _, s := range steps {
		idColor.Fprintf(&b, "%3d  %s\n", s.Index, s.Commit)
		b.WriteString("     " + s.Text + "\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write story: %w", err)
	}

	return nil
}
