// Package site builds the navigation bar shared by every page of the site.
package site

import (
	"net/url"
	"strings"

	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
)

// DefaultBasePath is the deployed base path of the site.
const DefaultBasePath = "/portfolio/"

const localBasePath = "/"

// Link is one entry of the site's page list. A URL starting with http is
// absolute; anything else is relative to the base path.
type Link struct {
	URL   string `mapstructure:"url"   json:"url"`
	Title string `mapstructure:"title" json:"title"`
}

// DefaultPages returns the site's page list. The profile link is left out
// when githubURL is empty.
func DefaultPages(githubURL string) []Link {
	pages := []Link{
		{URL: "", Title: "Home"},
		{URL: "projects/", Title: "Projects"},
		{URL: "contact/", Title: "Contact Me"},
		{URL: "resume/", Title: "Resume"},
	}

	if githubURL != "" {
		pages = append(pages, Link{URL: githubURL, Title: "Github Profile"})
	}

	return append(pages, Link{URL: "meta/", Title: "Meta"})
}

// Nav resolves page links against the location they are rendered for.
type Nav struct {
	Pages    []Link
	BasePath string
}

// BasePathFor returns "/" when host is a local development host, base otherwise.
func BasePathFor(host, base string) string {
	name := host
	if h, _, ok := strings.Cut(host, ":"); ok {
		name = h
	}

	if name == "localhost" || name == "127.0.0.1" {
		return localBasePath
	}

	if base == "" {
		return DefaultBasePath
	}

	return base
}

// Items resolves every page for a page served at current. The item whose
// host and path equal current is marked current; items on another host
// are external.
func (n Nav) Items(current *url.URL) []plotpage.NavItem {
	base := BasePathFor(current.Host, n.BasePath)
	items := make([]plotpage.NavItem, 0, len(n.Pages))

	for _, p := range n.Pages {
		if p.URL == "" && p.Title == "" {
			continue
		}

		href := p.URL
		if !strings.HasPrefix(href, "http") {
			href = base + href
		}

		target, err := current.Parse(href)
		if err != nil {
			continue
		}

		items = append(items, plotpage.NavItem{
			Title:    p.Title,
			Href:     href,
			Current:  target.Host == current.Host && target.Path == current.Path,
			External: target.Host != current.Host,
		})
	}

	return items
}
