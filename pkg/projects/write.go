package projects

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Listing is the serializable form of a view.
type Listing struct {
	Heading  string      `json:"heading"         yaml:"heading"`
	Year     string      `json:"year,omitempty"  yaml:"year,omitempty"`
	Query    string      `json:"query,omitempty" yaml:"query,omitempty"`
	Years    []YearCount `json:"years"           yaml:"years"`
	Projects []Project   `json:"projects"        yaml:"projects"`
}

// Listing returns the serializable form of v.
func (v View) Listing() Listing {
	return Listing{
		Heading:  v.Heading(),
		Year:     v.Filter.Year,
		Query:    v.Filter.Query,
		Years:    v.Years,
		Projects: v.Projects,
	}
}

const descriptionWidth = 60

// WriteText renders the year breakdown and the matching projects as tables.
func WriteText(w io.Writer, v View) error {
	heading := color.New(color.Bold, color.FgCyan)

	var b strings.Builder

	heading.Fprintln(&b, v.Heading())

	years := table.NewWriter()
	years.SetStyle(table.StyleLight)
	years.AppendHeader(table.Row{"Year", "Projects"})

	for _, yc := range v.Years {
		label := yc.Year
		if yc.Year == v.Filter.Year {
			label += " *"
		}

		years.AppendRow(table.Row{label, yc.Count})
	}

	b.WriteString(years.Render())
	b.WriteString("\n\n")

	list := table.NewWriter()
	list.SetStyle(table.StyleLight)
	list.AppendHeader(table.Row{"Title", "Year", "Description"})
	list.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: descriptionWidth, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, p := range v.Projects {
		list.AppendRow(table.Row{p.Title, string(p.Year), p.Description})
	}

	b.WriteString(list.Render())
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write projects: %w", err)
	}

	return nil
}
