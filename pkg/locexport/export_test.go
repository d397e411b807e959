package locexport_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locexport"
)

func commitFiles(t *testing.T, dir string, files map[string]string, when time.Time) string {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		repo, err = git.PlainInit(dir, false)
	}

	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, body := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o600))

		_, err = wt.Add(name)
		require.NoError(t, err)
	}

	hash, err := wt.Commit("update", &git.CommitOptions{
		Author: &object.Signature{Name: "Ada", Email: "ada@example.com", When: when},
	})
	require.NoError(t, err)

	return hash.String()
}

func TestExport_RoundTripsThroughReader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	when := time.Date(2024, 3, 5, 14, 30, 0, 0, time.FixedZone("", 2*60*60))
	hash := commitFiles(t, dir, map[string]string{
		"src/app.js":  "function f() {\n  if (x) {\n    return 1;\n  }\n}\n",
		"README.txt":  "not exported\n",
		"logo.png":    "\x89PNG\x00\x00",
		"style/a.css": "body {\n\tcolor: red;\n}\n",
	}, when)

	var buf bytes.Buffer

	res, err := locexport.Export(context.Background(), dir, &buf, locexport.Options{
		Extensions: []string{"js", ".CSS", "png"},
		IndentSize: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, hash, res.Commit)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 8, res.Rows)

	parsed, err := loc.ReadCSV(&buf, loc.ReadOptions{Strict: true})
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 8)

	byFile := map[string][]loc.Row{}
	for _, r := range parsed.Rows {
		byFile[r.File] = append(byFile[r.File], r)
	}

	js := byFile["src/app.js"]
	require.Len(t, js, 5)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, []int{js[0].Depth, js[1].Depth, js[2].Depth, js[3].Depth, js[4].Depth})
	assert.Equal(t, 3, js[2].Line)
	assert.Equal(t, len("    return 1;"), js[2].Length)
	assert.Equal(t, "js", js[0].Type)
	assert.Equal(t, "Ada", js[0].Author)
	assert.Equal(t, hash, js[0].Commit)
	assert.Equal(t, "14:30:00", js[0].Time)
	assert.Equal(t, "+02:00", js[0].Timezone)
	assert.True(t, when.Equal(js[0].Datetime))

	css := byFile["style/a.css"]
	require.Len(t, css, 3)
	assert.Equal(t, 1, css[1].Depth)
	assert.Equal(t, "css", css[1].Type)
}

func TestExport_NoHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = locexport.Export(context.Background(), dir, &bytes.Buffer{}, locexport.Options{})
	require.ErrorIs(t, err, locexport.ErrNoHead)
}

func TestExport_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := locexport.Export(context.Background(), t.TempDir(), &bytes.Buffer{}, locexport.Options{})
	require.Error(t, err)
}

func TestExport_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	commitFiles(t, dir, map[string]string{"a.js": "x\n"}, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := locexport.Export(ctx, dir, &bytes.Buffer{}, locexport.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExport_SkipVendor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	commitFiles(t, dir, map[string]string{
		"main.go":             "package main\n",
		"vendor/lib/dep.go":   "package lib\n",
		"node_modules/x/i.js": "x\n",
	}, time.Now())

	var buf bytes.Buffer

	res, err := locexport.Export(context.Background(), dir, &buf, locexport.Options{SkipVendor: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Contains(t, buf.String(), "main.go")
	assert.NotContains(t, buf.String(), "dep.go")
}

func TestDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		indent int
		want   int
	}{
		{"flush", "x := 1", 2, 0},
		{"two spaces", "  x", 2, 1},
		{"three spaces", "   x", 2, 1},
		{"four spaces width four", "    x", 4, 1},
		{"tabs", "\t\tx", 2, 2},
		{"mixed", "\t  x", 2, 2},
		{"blank", "    ", 2, 0},
		{"default indent", "    x", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, locexport.Depth(tt.text, tt.indent))
		})
	}
}
