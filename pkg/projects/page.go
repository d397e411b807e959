package projects

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
)

// View is the derived state of the projects page for one filter.
type View struct {
	Filter Filter
	// Projects are the projects matching the whole filter.
	Projects []Project
	// Years is the per-year breakdown of the projects matching the query
	// alone, so every year stays clickable while one is selected.
	Years  []YearCount
	colors Colors
}

// NewView filters all with f.
func NewView(all []Project, f Filter) View {
	return View{
		Filter:   f,
		Projects: f.Apply(all),
		Years:    RollupByYear(f.WithoutYear().Apply(all)),
		colors:   NewColors(all),
	}
}

// Color returns the stable color of year.
func (v View) Color(year string) string {
	return v.colors.Of(year)
}

// Heading is the gallery heading, for example "12 Projects".
func (v View) Heading() string {
	if len(v.Projects) == 1 {
		return "1 Project"
	}

	return strconv.Itoa(len(v.Projects)) + " Projects"
}

// PageOptions configures BuildPage.
type PageOptions struct {
	Theme plotpage.Theme
	Nav   []plotpage.NavItem
}

// BuildPage renders the view as a pie of projects per year followed by the
// project gallery.
func BuildPage(v View, po PageOptions) *plotpage.Page {
	page := plotpage.NewPage("Projects", v.Heading()).WithTheme(po.Theme).WithNav(po.Nav)
	cOpts := plotpage.NewChartOpts(po.Theme)

	slices := make([]plotpage.PieSlice, len(v.Years))
	for i, yc := range v.Years {
		name := yc.Year
		if yc.Year == v.Filter.Year {
			name += " (selected)"
		}

		slices[i] = plotpage.PieSlice{Name: name, Value: yc.Count, Color: v.Color(yc.Year)}
	}

	subtitle := "All years"
	if v.Filter.Year != "" {
		subtitle = "Year " + v.Filter.Year
	}

	if v.Filter.Query != "" {
		subtitle += fmt.Sprintf(", matching %q", v.Filter.Query)
	}

	page.Add(
		plotpage.Section{
			ID:       "years",
			Title:    "Projects per year",
			Subtitle: subtitle,
			Chart:    plotpage.WrapChart(plotpage.BuildPieChart(cOpts, page.Style, "Projects", slices)),
		},
		plotpage.Section{
			ID:    "projects",
			Title: v.Heading(),
			Chart: gallery{projects: v.Projects},
		},
	)

	return page
}

var galleryTemplate = template.Must(template.New("gallery").Parse(`<div class="grid cols-3">
{{- range .}}
<article>
  <h3>{{.Title}}</h3>
  {{- if .Image}}
  <img src="{{.Image}}" alt="{{.Title}}" style="max-width:100%">
  {{- end}}
  <p>{{.Description}}<br><span class="year">{{.Year}}</span></p>
</article>
{{- end}}
</div>`))

type gallery struct {
	projects []Project
}

func (g gallery) Render(w io.Writer) error {
	if err := galleryTemplate.Execute(w, g.projects); err != nil {
		return fmt.Errorf("render gallery: %w", err)
	}

	return nil
}
