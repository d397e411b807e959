package plotpage

import (
	"fmt"
	"html/template"
	"io"
)

const maxGridColumns = 4

func writeTemplate(w io.Writer, name string, data any) error {
	html, err := renderTemplate(name, data)
	if err != nil {
		return err
	}

	if _, err = io.WriteString(w, string(html)); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// Text renders an escaped paragraph.
type Text struct {
	Content string
}

// NewText creates a new text block.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Render writes the text content.
func (t *Text) Render(w io.Writer) error {
	_, err := io.WriteString(w, "<p class=\"text\">"+template.HTMLEscapeString(t.Content)+"</p>")
	if err != nil {
		return fmt.Errorf("writing text: %w", err)
	}

	return nil
}

// Table renders an HTML table. Cells are escaped.
type Table struct {
	Caption string
	Headers []string
	Rows    [][]string
	Striped bool
}

// NewTable creates a new striped table.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Striped: true}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)

	return t
}

// WithCaption sets the table caption.
func (t *Table) WithCaption(caption string) *Table {
	t.Caption = caption

	return t
}

// Render writes the table HTML.
func (t *Table) Render(w io.Writer) error {
	return writeTemplate(w, "table.html", tableData{
		Caption: t.Caption,
		Headers: t.Headers,
		Rows:    t.Rows,
		Striped: t.Striped,
	})
}

// Stat renders a labelled headline value.
type Stat struct {
	Label string
	Value string
	Note  string
	// ID, when set, lets page scripts update the value in place.
	ID string
}

// NewStat creates a new stat display.
func NewStat(label, value string) *Stat {
	return &Stat{Label: label, Value: value}
}

// WithNote sets the small text under the value.
func (s *Stat) WithNote(note string) *Stat {
	s.Note = note

	return s
}

// WithID sets the element id of the value.
func (s *Stat) WithID(id string) *Stat {
	s.ID = id

	return s
}

// Render writes the stat HTML.
func (s *Stat) Render(w io.Writer) error {
	return writeTemplate(w, "stat.html", statData{
		Label: s.Label,
		Value: s.Value,
		Note:  s.Note,
		ID:    s.ID,
	})
}

// Grid renders items in a responsive grid.
type Grid struct {
	Columns int
	Items   []Renderable
}

// NewGrid creates a grid of 1 to 4 columns.
func NewGrid(columns int, items ...Renderable) *Grid {
	return &Grid{Columns: max(1, min(columns, maxGridColumns)), Items: items}
}

// Render writes the grid HTML.
func (g *Grid) Render(w io.Writer) error {
	items := make([]template.HTML, 0, len(g.Items))

	for i, item := range g.Items {
		html, err := renderComponent(item)
		if err != nil {
			return fmt.Errorf("rendering grid item %d: %w", i, err)
		}

		items = append(items, html)
	}

	return writeTemplate(w, "grid.html", gridData{Columns: g.Columns, Items: items})
}

// StepItem is one entry of a scrollytelling list.
type StepItem struct {
	ID   string
	Text string
	// Href, when set, links the step title.
	Href  string
	Title string
}

// Steps renders a scrollytelling list whose entries are marked active as
// they scroll into view.
type Steps struct {
	Items []StepItem
}

// NewSteps creates a steps list.
func NewSteps(items ...StepItem) *Steps {
	return &Steps{Items: items}
}

// Render writes the steps HTML.
func (s *Steps) Render(w io.Writer) error {
	return writeTemplate(w, "steps.html", stepsData{Items: s.Items})
}

// Components groups renderables into one vertical block.
type Components []Renderable

// Render writes every component in order.
func (c Components) Render(w io.Writer) error {
	for i, item := range c {
		html, err := renderComponent(item)
		if err != nil {
			return fmt.Errorf("rendering component %d: %w", i, err)
		}

		if _, err = io.WriteString(w, string(html)); err != nil {
			return fmt.Errorf("writing component %d: %w", i, err)
		}
	}

	return nil
}
