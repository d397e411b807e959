// Package projects loads the portfolio's project list and derives the
// filtered views and per-year breakdown shown on the projects page.
package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

// ErrInvalidProjects is wrapped by *ValidationError.
var ErrInvalidProjects = errors.New("invalid projects document")

// schema describes projects.json. Years may be written as numbers or strings.
const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "year"],
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "image": {"type": "string"},
      "year": {"type": ["string", "integer"]},
      "description": {"type": "string"}
    }
  }
}`

// ValidationError lists the schema violations of a projects document.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidProjects, strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidProjects
}

// Year is a project year as written in the document.
type Year string

// UnmarshalJSON accepts both 2024 and "2024".
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("year: %w", err)
		}

		*y = Year(s)

		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("year %s: %w", data, err)
	}

	*y = Year(strconv.FormatInt(n, 10))

	return nil
}

// Project is one entry of the gallery.
type Project struct {
	Title       string `json:"title"       yaml:"title"`
	Image       string `json:"image"       yaml:"image"`
	Year        Year   `json:"year"        yaml:"year"`
	Description string `json:"description" yaml:"description"`
}

var schemaLoader = gojsonschema.NewStringLoader(schema)

// Parse validates data against the projects schema and decodes it.
func Parse(data []byte) ([]Project, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjects, err)
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			issues = append(issues, re.String())
		}

		return nil, &ValidationError{Issues: issues}
	}

	var list []Project

	if err = json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	return list, nil
}

// Load reads and parses the projects document at src.
func Load(ctx context.Context, src string, opts source.Options) ([]Project, error) {
	data, err := source.Read(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}

	return list, nil
}
