package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

var funcMap = template.FuncMap{
	"odd": func(i int) bool {
		return i%2 == 1
	},
}

func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").
			Funcs(funcMap).
			ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	if err = tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

type pageData struct {
	Title    string
	SiteName string
	Scheme   string
	Light    ThemeConfig
	Dark     ThemeConfig
	ExtraCSS template.CSS
	Header   template.HTML
	Content  template.HTML
	Scripts  template.HTML
}

type headerData struct {
	SiteName        string
	Title           string
	Description     string
	ShowThemeToggle bool
	Theme           string
	Nav             []NavItem
}

type sectionData struct {
	ID       string
	Title    string
	Subtitle string
	Body     template.HTML
	Hint     *hintData
}

type hintData struct {
	Title string
	Items []string
}

type tableData struct {
	Caption string
	Headers []string
	Rows    [][]string
	Striped bool
}

type statData struct {
	Label string
	Value string
	Note  string
	ID    string
}

type gridData struct {
	Columns int
	Items   []template.HTML
}

type stepsData struct {
	Items []StepItem
}
