package projects

import (
	"strings"
)

// Filter selects projects by exact year and by a case-insensitive query
// matched against all of a project's values joined by spaces.
type Filter struct {
	Year  string
	Query string
}

// Active reports whether the filter restricts anything.
func (f Filter) Active() bool {
	return f.Year != "" || f.Query != ""
}

// Apply returns the matching projects in input order.
func (f Filter) Apply(list []Project) []Project {
	out := make([]Project, 0, len(list))
	query := strings.ToLower(f.Query)

	for _, p := range list {
		if f.Year != "" && string(p.Year) != f.Year {
			continue
		}

		if query != "" && !strings.Contains(strings.ToLower(p.searchText()), query) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// WithoutYear returns the filter with the year cleared.
func (f Filter) WithoutYear() Filter {
	f.Year = ""

	return f
}

func (p Project) searchText() string {
	return strings.Join([]string{p.Title, p.Image, string(p.Year), p.Description}, " ")
}
