package loc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

const tracerName = "github.com/Sumatoshi-tech/locmeta/pkg/loc"

// ErrEmptyDataset reports that no commits remain after parsing.
var ErrEmptyDataset = errors.New("dataset has no commits")

// Recorder receives load statistics. observability.PipelineMetrics implements it.
type Recorder interface {
	RecordLoad(ctx context.Context, parsed, rejected, commits int, elapsed time.Duration)
}

// Dataset is the immutable result of loading an export.
type Dataset struct {
	Source   string
	Rows     []Row
	Commits  []Commit
	Rejected []*ParseError
}

// NewDataset aggregates rows into a Dataset.
func NewDataset(rows []Row, opts ...AggregateOption) *Dataset {
	return &Dataset{
		Rows:    rows,
		Commits: Aggregate(rows, opts...),
	}
}

// Empty reports whether the dataset has no commits.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.Commits) == 0
}

// Extent returns the earliest and latest commit timestamps.
// ok is false for an empty dataset.
func (d *Dataset) Extent() (first, last time.Time, ok bool) {
	return TimeExtent(d.Commits)
}

// TimeExtent returns the earliest and latest commit timestamps of commits.
func TimeExtent(commits []Commit) (first, last time.Time, ok bool) {
	if len(commits) == 0 {
		return time.Time{}, time.Time{}, false
	}

	first, last = commits[0].Datetime, commits[0].Datetime

	for _, c := range commits[1:] {
		if c.Datetime.Before(first) {
			first = c.Datetime
		}

		if c.Datetime.After(last) {
			last = c.Datetime
		}
	}

	return first, last, true
}

// LineExtent returns the smallest and largest TotalLines among commits.
func LineExtent(commits []Commit) (lo, hi int, ok bool) {
	if len(commits) == 0 {
		return 0, 0, false
	}

	lo, hi = commits[0].TotalLines, commits[0].TotalLines

	for _, c := range commits[1:] {
		lo = min(lo, c.TotalLines)
		hi = max(hi, c.TotalLines)
	}

	return lo, hi, true
}

// LoadOptions configures Load.
type LoadOptions struct {
	Source    source.Options
	Read      ReadOptions
	CommitURL string
	Recorder  Recorder
}

// Load fetches, parses and aggregates an export. An empty result is not an
// error; callers check Dataset.Empty.
func Load(ctx context.Context, src string, opts LoadOptions) (*Dataset, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "loc.Load")
	defer span.End()

	span.SetAttributes(attribute.String("loc.source", src))

	start := time.Now()

	data, err := source.Read(ctx, src, opts.Source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")

		return nil, err
	}

	result, err := ReadCSV(bytes.NewReader(data), opts.Read)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")

		return nil, fmt.Errorf("parse %s: %w", src, err)
	}

	var aggOpts []AggregateOption
	if opts.CommitURL != "" {
		aggOpts = append(aggOpts, WithCommitURL(opts.CommitURL))
	}

	ds := NewDataset(result.Rows, aggOpts...)
	ds.Source = src
	ds.Rejected = result.Rejected

	span.SetAttributes(
		attribute.Int("loc.rows", len(ds.Rows)),
		attribute.Int("loc.rejected", len(ds.Rejected)),
		attribute.Int("loc.commits", len(ds.Commits)),
	)

	if opts.Recorder != nil {
		opts.Recorder.RecordLoad(ctx, len(ds.Rows), len(ds.Rejected), len(ds.Commits), time.Since(start))
	}

	logger := opts.Read.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.DebugContext(ctx, "dataset loaded",
		"source", src, "rows", len(ds.Rows), "rejected", len(ds.Rejected), "commits", len(ds.Commits))

	return ds, nil
}
