// Package locexport produces a loc.csv export from a git repository by
// blaming every tracked text file at HEAD.
package locexport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/src-d/enry/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// DefaultIndentSize is the number of spaces treated as one depth level.
const DefaultIndentSize = 2

// ErrNoHead is returned for repositories without a resolvable HEAD commit.
var ErrNoHead = errors.New("repository has no HEAD commit")

// Options controls which files are exported and how depth is measured.
type Options struct {
	// Extensions is the allow-list of file extensions, without the dot.
	// Empty means every text file.
	Extensions []string
	IndentSize int
	SkipVendor bool
	Logger     *slog.Logger
}

// Result counts what an export produced.
type Result struct {
	Commit string
	Files  int
	Rows   int
}

// Export blames the HEAD tree of the repository at repoPath and writes one
// loc.csv record per line to w, header first.
func Export(ctx context.Context, repoPath string, w io.Writer, opts Options) (Result, error) {
	ctx, span := otel.Tracer("locmeta/locexport").Start(ctx, "locexport.Export")
	defer span.End()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	indent := opts.IndentSize
	if indent <= 0 {
		indent = DefaultIndentSize
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Result{}, fmt.Errorf("open repository %s: %w", repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNoHead, err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return Result{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	files, err := commit.Files()
	if err != nil {
		return Result{}, fmt.Errorf("list files: %w", err)
	}

	allowed := extensionSet(opts.Extensions)
	out := csv.NewWriter(w)
	res := Result{Commit: commit.Hash.String()}

	err = out.Write(loc.Columns)
	if err != nil {
		return res, fmt.Errorf("write header: %w", err)
	}

	err = files.ForEach(func(f *object.File) error {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return ctxErr
		}

		if !wanted(f.Name, allowed, opts.SkipVendor) {
			return nil
		}

		bin, binErr := f.IsBinary()
		if binErr != nil {
			return fmt.Errorf("inspect %s: %w", f.Name, binErr)
		}

		if bin {
			logger.Debug("skipping binary file", "file", f.Name)

			return nil
		}

		n, blameErr := blameFile(out, commit, f.Name, indent)
		if blameErr != nil {
			return blameErr
		}

		res.Files++
		res.Rows += n

		logger.Debug("blamed file", "file", f.Name, "lines", n)

		return nil
	})
	if err != nil {
		return res, err
	}

	out.Flush()

	err = out.Error()
	if err != nil {
		return res, fmt.Errorf("write rows: %w", err)
	}

	span.SetAttributes(
		attribute.Int("locexport.files", res.Files),
		attribute.Int("locexport.rows", res.Rows),
	)

	return res, nil
}

func blameFile(out *csv.Writer, commit *object.Commit, name string, indent int) (int, error) {
	blame, err := git.Blame(commit, name)
	if err != nil {
		return 0, fmt.Errorf("blame %s: %w", name, err)
	}

	typ := loc.TypeFor(name)

	for i, line := range blame.Lines {
		err = out.Write(Record(line, name, typ, i+1, indent))
		if err != nil {
			return i, fmt.Errorf("write %s:%d: %w", name, i+1, err)
		}
	}

	return len(blame.Lines), nil
}

// Record formats one blamed line in loc.Columns order.
func Record(line *git.Line, file, typ string, number, indent int) []string {
	when := line.Date

	return []string{
		line.Hash.String(),
		file,
		typ,
		strconv.Itoa(number),
		strconv.Itoa(Depth(line.Text, indent)),
		strconv.Itoa(utf8.RuneCountInString(line.Text)),
		line.AuthorName,
		when.Format(loc.DateLayout),
		when.Format(loc.TimeLayout),
		when.Format(loc.TimezoneLayout),
		when.Format(time.RFC3339),
	}
}

// Depth returns the indentation level of a line. A tab counts as one level
// and every indent spaces count as one more.
func Depth(text string, indent int) int {
	if indent <= 0 {
		indent = DefaultIndentSize
	}

	tabs, spaces := 0, 0

	for _, r := range text {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/indent
		}
	}

	// Whitespace-only lines carry no depth.
	return 0
}

func extensionSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = struct{}{}
	}

	return set
}

func wanted(name string, allowed map[string]struct{}, skipVendor bool) bool {
	if skipVendor && enry.IsVendor(name) {
		return false
	}

	if allowed == nil {
		return true
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	_, ok := allowed[ext]

	return ok
}
