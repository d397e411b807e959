package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/locmeta/pkg/projects"
	"github.com/Sumatoshi-tech/locmeta/pkg/report"
	"github.com/Sumatoshi-tech/locmeta/pkg/site"
)

// ErrUnknownDocument is returned by For for an unregistered document name.
var ErrUnknownDocument = errors.New("unknown document")

type document struct {
	title       string
	description string
	value       any
}

var documents = map[string]document{
	"stats": {
		"Statistics report",
		"Output of locmeta stats --format json",
		report.Report{},
	},
	"story": {
		"Commit story",
		"Output of locmeta story --format json",
		[]report.StoryStep{},
	},
	"projects": {
		"Project listing",
		"Output of locmeta projects --format json",
		projects.Listing{},
	},
	"profile": {
		"GitHub profile",
		"Output of locmeta profile --format json",
		site.Profile{},
	},
}

// Names lists the documents with a schema, sorted.
func Names() []string {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// For returns the schema of the named JSON output document.
func For(name string) (*Schema, error) {
	doc, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDocument, name, strings.Join(Names(), ", "))
	}

	return Generate(doc.title, doc.description, doc.value), nil
}
