// Package metapage builds the commit history page: headline statistics, the
// commit scatter plot, file and language breakdowns, and the commit story.
package metapage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

const (
	pageTitle       = "Meta"
	pageDescription = "Stats about the code of this site"

	// DefaultTopFiles bounds the file breakdown.
	DefaultTopFiles = 25

	// SelectionCountID is the element id updated by brush selection.
	SelectionCountID = "selection-count"

	cutoffLayout = "Jan 2, 2006 3:04 PM"
)

// Options configures Build.
type Options struct {
	Theme    plotpage.Theme
	Nav      []plotpage.NavItem
	TopFiles int
	Stats    locstats.Options
	// Story adds the scrollytelling section.
	Story bool
}

// Build renders st into a page. Headline stats cover the commits visible at
// the cutoff; the file and language breakdowns cover the focused commits.
func Build(st timeline.State, o Options) *plotpage.Page {
	if o.TopFiles <= 0 {
		o.TopFiles = DefaultTopFiles
	}

	page := plotpage.NewPage(pageTitle, pageDescription).WithTheme(o.Theme).WithNav(o.Nav)
	cOpts := plotpage.NewChartOpts(o.Theme)
	colors := newTypeColors(cOpts, st.Dataset().Rows)

	visible := st.Visible()
	focus := st.Focus()
	focusRows := loc.RowsOf(focus)

	page.Add(
		summarySection(st, locstats.Compute(loc.RowsOf(visible), visible, o.Stats)),
		plotpage.Section{
			ID:       "chart",
			Title:    "Commits by time of day",
			Subtitle: "Each dot is a commit; larger dots changed more lines.",
			Chart:    plotpage.WrapChart(scatterChart(st, cOpts, page.Style)),
			Hint: plotpage.Hint{
				Title: "Reading the chart",
				Items: []string{
					"Use the brush tool to select a rectangle of commits.",
					"Click a dot to open its commit.",
				},
			},
		},
		filesSection(focusRows, o.TopFiles, cOpts, colors, page.Style),
		languagesSection(focusRows, cOpts, colors, page.Style),
	)

	if o.Story {
		page.Add(storySection(timeline.NewStory(st.Dataset().Commits)))
	}

	return page
}

func summarySection(st timeline.State, s locstats.Summary) plotpage.Section {
	weekday, period := "n/a", "n/a"

	if s.BusiestWeekday != nil {
		weekday = s.BusiestWeekday.Label.String()
	}

	if s.BusiestPeriod != nil {
		period = string(s.BusiestPeriod.Label)
	}

	sel := st.Selection()

	grid := plotpage.NewGrid(4,
		plotpage.NewStat("Total LOC", humanize.Comma(int64(s.TotalLines))),
		plotpage.NewStat("Total commits", humanize.Comma(int64(s.TotalCommits))),
		plotpage.NewStat("Files in codebase", humanize.Comma(int64(s.Files))),
		plotpage.NewStat("Authors", strconv.Itoa(s.Authors)),
		plotpage.NewStat("Max depth", strconv.Itoa(s.MaxDepth)),
		plotpage.NewStat("Longest line", strconv.Itoa(s.LongestLine)).
			WithNote(fmt.Sprintf("avg %.1f chars", s.AvgLength)),
		plotpage.NewStat("Most common workday", weekday),
		plotpage.NewStat("Majority time of day", period),
	)

	selection := plotpage.NewStat("Selection",
		locstats.SelectionLabel(sel.Active(), len(st.Selected()))).WithID(SelectionCountID)

	return plotpage.Section{
		ID:       "stats",
		Title:    "Summary",
		Subtitle: cutoffText(st),
		Chart:    plotpage.Components{grid, selection},
	}
}

func cutoffText(st timeline.State) string {
	at, bounded := st.Cutoff().Time()
	if !bounded {
		return "Showing all commits."
	}

	return fmt.Sprintf("Showing commits until %s (%s), %.0f%% of the timeline.",
		at.Format(cutoffLayout), humanize.Time(at), st.Progress())
}

func storySection(story *timeline.Story) plotpage.Section {
	items := make([]plotpage.StepItem, 0, story.Len())

	for _, step := range story.Steps() {
		items = append(items, plotpage.StepItem{
			ID:    strconv.Itoa(step.Index),
			Title: shortID(step.Commit.ID),
			Href:  step.Commit.URL,
			Text:  step.Text,
		})
	}

	return plotpage.Section{
		ID:       "story",
		Title:    "The story of this code",
		Subtitle: humanize.Comma(int64(story.Len())) + " commits, oldest first.",
		Chart:    plotpage.NewSteps(items...),
	}
}

func shortID(id string) string {
	const short = 7
	if len(id) > short {
		return id[:short]
	}

	return id
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}
