package loc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must be present in the header. The type and display
// columns may be absent; they are then inferred.
var requiredColumns = []string{ColCommit, ColFile, ColLine, ColDepth, ColLength, ColAuthor, ColDatetime}

// ReadOptions configures ReadCSV.
type ReadOptions struct {
	// Strict aborts on the first rejected record instead of skipping it.
	Strict bool
	Logger *slog.Logger
}

// ReadResult holds the parsed rows in file order and the rejected records.
type ReadResult struct {
	Rows     []Row
	Rejected []*ParseError
}

// ReadCSV parses a loc.csv stream. Records that fail to parse are logged and
// skipped unless opts.Strict is set, in which case the first failure is returned.
func ReadCSV(r io.Reader, opts ReadOptions) (ReadResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ReadResult{}, nil
	}

	if err != nil {
		return ReadResult{}, fmt.Errorf("read header: %w", err)
	}

	index, err := indexHeader(header)
	if err != nil {
		return ReadResult{}, err
	}

	var result ReadResult

	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return result, fmt.Errorf("read record: %w", readErr)
		}

		line, _ := reader.FieldPos(0)

		row, parseErr := ParseRecord(index.record(fields))
		if parseErr == nil {
			result.Rows = append(result.Rows, row)

			continue
		}

		var pe *ParseError
		if !errors.As(parseErr, &pe) {
			pe = &ParseError{Err: parseErr}
		}

		pe.Line = line

		if opts.Strict {
			return result, pe
		}

		logger.Warn("skipping row", "line", line, "field", pe.Field, "error", pe.Err)

		result.Rejected = append(result.Rejected, pe)
	}

	return result, nil
}

type headerIndex map[string]int

func indexHeader(header []string) (headerIndex, error) {
	index := make(headerIndex, len(header))

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		index[key] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return index, nil
}

func (h headerIndex) field(fields []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(fields) {
		return ""
	}

	return fields[i]
}

func (h headerIndex) record(fields []string) Record {
	return Record{
		Commit:   h.field(fields, ColCommit),
		File:     h.field(fields, ColFile),
		Type:     h.field(fields, ColType),
		Line:     h.field(fields, ColLine),
		Depth:    h.field(fields, ColDepth),
		Length:   h.field(fields, ColLength),
		Author:   h.field(fields, ColAuthor),
		Date:     h.field(fields, ColDate),
		Time:     h.field(fields, ColTime),
		Timezone: h.field(fields, ColTimezone),
		Datetime: h.field(fields, ColDatetime),
	}
}
