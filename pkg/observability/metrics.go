package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRowsParsed    = "locmeta.rows.parsed"
	metricRowsRejected  = "locmeta.rows.rejected"
	metricCommits       = "locmeta.commits"
	metricStageDuration = "locmeta.stage.duration.seconds"

	attrStage = "stage"

	// StageLoad covers fetch, parse and aggregation of one dataset.
	StageLoad = "load"
	// StageStats covers one statistics computation.
	StageStats = "stats"
	// StageRender covers building and writing one HTML page.
	StageRender = "render"
	// StageExport covers blaming a repository into CSV rows.
	StageExport = "export"
)

// durationBucketBoundaries covers 1ms to 120s.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 120}

// PipelineMetrics holds the instruments recorded by the loader and the commands.
type PipelineMetrics struct {
	rowsParsed    metric.Int64Counter
	rowsRejected  metric.Int64Counter
	commits       metric.Int64Counter
	stageDuration metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments from the given meter.
func NewPipelineMetrics(mt metric.Meter) (*PipelineMetrics, error) {
	parsed, err := mt.Int64Counter(metricRowsParsed,
		metric.WithDescription("Rows accepted by the CSV parser"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRowsParsed, err)
	}

	rejected, err := mt.Int64Counter(metricRowsRejected,
		metric.WithDescription("Rows rejected by the CSV parser"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRowsRejected, err)
	}

	commits, err := mt.Int64Counter(metricCommits,
		metric.WithDescription("Commits aggregated from loaded rows"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommits, err)
	}

	duration, err := mt.Float64Histogram(metricStageDuration,
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricStageDuration, err)
	}

	return &PipelineMetrics{
		rowsParsed:    parsed,
		rowsRejected:  rejected,
		commits:       commits,
		stageDuration: duration,
	}, nil
}

// RecordLoad records the outcome of one dataset load.
func (pm *PipelineMetrics) RecordLoad(ctx context.Context, parsed, rejected, commits int, elapsed time.Duration) {
	pm.rowsParsed.Add(ctx, int64(parsed))
	pm.rowsRejected.Add(ctx, int64(rejected))
	pm.commits.Add(ctx, int64(commits))
	pm.RecordStage(ctx, StageLoad, elapsed)
}

// RecordStage records the duration of a named pipeline stage.
func (pm *PipelineMetrics) RecordStage(ctx context.Context, stage string, elapsed time.Duration) {
	pm.stageDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String(attrStage, stage)),
	)
}
