// Package plotpage renders self-contained HTML pages made of go-echarts charts
// and simple components, with site navigation and a light or dark theme.
package plotpage

import (
	"fmt"
	"io"
	"os"
)

// Style defines chart dimensions.
type Style struct {
	Width  string
	Height string
}

// DefaultStyle returns the default chart style.
func DefaultStyle() Style {
	return Style{Width: "100%", Height: "480px"}
}

// NavItem is one link in the page navigation bar.
type NavItem struct {
	Title    string
	Href     string
	Current  bool
	External bool
}

// Hint contains interpretive guidance for a section.
type Hint struct {
	Title string
	Items []string
}

// Section is one titled block of a page.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Page represents a complete HTML page.
type Page struct {
	Title           string
	Description     string
	SiteName        string
	ShowThemeToggle bool
	Style           Style
	Theme           Theme
	Nav             []NavItem
	Sections        []Section
}

// NewPage creates a light-themed page with the theme toggle enabled.
func NewPage(title, description string) *Page {
	return &Page{
		Title:           title,
		Description:     description,
		SiteName:        "locmeta",
		ShowThemeToggle: true,
		Style:           DefaultStyle(),
		Theme:           ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// WithNav sets the navigation bar links.
func (p *Page) WithNav(items []NavItem) *Page {
	p.Nav = items

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// WriteFile renders the page into the file at path.
func (p *Page) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err = p.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	return nil
}

// Renderable is the interface for page components.
type Renderable interface {
	Render(w io.Writer) error
}
