package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	header, err := renderTemplate("header.html", headerData{
		SiteName:        page.SiteName,
		Title:           page.Title,
		Description:     page.Description,
		ShowThemeToggle: page.ShowThemeToggle,
		Theme:           string(page.Theme),
		Nav:             page.Nav,
	})
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	var sectionsHTML bytes.Buffer

	for i, section := range page.Sections {
		sectionHTML, sectionErr := renderSection(section)
		if sectionErr != nil {
			return fmt.Errorf("render section %d: %w", i, sectionErr)
		}

		sectionsHTML.WriteString(string(sectionHTML))
	}

	scripts, err := renderTemplate("scripts.html", nil)
	if err != nil {
		return fmt.Errorf("render scripts: %w", err)
	}

	html, err := renderTemplate("page.html", pageData{
		Title:    page.Title,
		SiteName: page.SiteName,
		Scheme:   string(page.Theme),
		Light:    GetThemeConfig(ThemeLight),
		Dark:     GetThemeConfig(ThemeDark),
		ExtraCSS: template.CSS(r.ExtraCSS),
		Header:   header,
		Content:  template.HTML(sectionsHTML.String()),
		Scripts:  scripts,
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	if _, err = io.WriteString(w, string(html)); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func renderSection(section Section) (template.HTML, error) {
	body, err := renderComponent(section.Chart)
	if err != nil {
		return "", err
	}

	var hint *hintData

	if len(section.Hint.Items) > 0 {
		hint = &hintData{Title: section.Hint.Title, Items: section.Hint.Items}
	}

	return renderTemplate("section.html", sectionData{
		ID:       section.ID,
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Body:     body,
		Hint:     hint,
	})
}

func renderComponent(c Renderable) (template.HTML, error) {
	if c == nil {
		return "", nil
	}

	var buf bytes.Buffer

	if err := c.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering component: %w", err)
	}

	return template.HTML(extractChartContent(buf.String())), nil
}

// ChartWrapper wraps an echarts chart and renders only the chart content.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script.
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	content, err := renderComponent(cw.chart)
	if err != nil {
		return err
	}

	if _, err = io.WriteString(w, string(content)); err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

// extractChartContent strips the document shell go-echarts wraps around a
// chart. Fragments that are not full documents pass through unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	end := strings.Index(html, `</body>`)

	if start == -1 || end == -1 || end < start {
		return html
	}

	content := strings.ReplaceAll(html[start:end], `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}
