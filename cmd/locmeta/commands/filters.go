package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/locstats"
	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
	"github.com/Sumatoshi-tech/locmeta/pkg/source"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

const (
	flagProgress = "progress"
	flagUntil    = "until"
	flagSelect   = "select"
	flagBy       = "by"
	rectFields   = 4
)

var (
	// ErrProgressRange is returned for a slider position outside [0, max].
	ErrProgressRange = errors.New("progress out of range")
	// ErrBadSelection is returned for a malformed --select rectangle.
	ErrBadSelection = errors.New("selection must be x0,y0,x1,y1")
	// ErrBadUntil is returned for an unparsable --until timestamp.
	ErrBadUntil = errors.New("unrecognised --until timestamp")
)

var untilLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}

const untilDateLayout = "2006-01-02"

// filterFlags are the flags that shape a timeline.State.
type filterFlags struct {
	progress float64
	until    string
	selectXY string
	by       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.progress, flagProgress, 0, "slider position (0..filter.slider_max) of the time cutoff")
	fs.StringVar(&f.until, flagUntil, "",
		"time cutoff; a timestamp without zone is UTC, a bare date includes that whole UTC day")
	fs.StringVar(&f.selectXY, flagSelect, "", "chart-space selection rectangle x0,y0,x1,y1")
	fs.StringVar(&f.by, flagBy, "", "count busiest stats by rows or commits (default: stats.unit)")

	cmd.MarkFlagsMutuallyExclusive(flagProgress, flagUntil)
}

// statsOptions resolves --by against the configured unit.
func (f *filterFlags) statsOptions(rt *runtime) (locstats.Options, error) {
	raw := f.by
	if raw == "" {
		raw = rt.cfg.Stats.Unit
	}

	unit, err := locstats.ParseUnit(raw)
	if err != nil {
		return locstats.Options{}, err
	}

	return locstats.Options{Unit: unit}, nil
}

// apply narrows st with the flags that were set on cmd.
func (f *filterFlags) apply(cmd *cobra.Command, rt *runtime, st timeline.State) (timeline.State, error) {
	if cmd.Flags().Changed(flagProgress) {
		limit := rt.cfg.Filter.SliderMax
		if f.progress < 0 || f.progress > limit {
			return st, fmt.Errorf("%w: %v not in [0, %v]", ErrProgressRange, f.progress, limit)
		}

		st = st.WithProgress(f.progress)
	}

	if f.until != "" {
		at, err := parseUntil(f.until)
		if err != nil {
			return st, err
		}

		st = st.WithCutoff(timeline.At(at))
	}

	if f.selectXY != "" {
		rect, err := parseRect(f.selectXY)
		if err != nil {
			return st, err
		}

		st = st.WithSelection(timeline.Select(rect))
	}

	return st, nil
}

// parseUntil accepts every datetime the CSV parser accepts, zoneless
// timestamps read as UTC, and a bare date meaning the last instant of that day.
func parseUntil(raw string) (time.Time, error) {
	if t, err := loc.ParseDatetime(raw); err == nil {
		return t, nil
	}

	if day, err := time.Parse(untilDateLayout, raw); err == nil {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}

	for _, layout := range untilLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadUntil, raw)
}

func parseRect(raw string) (timeline.Rect, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != rectFields {
		return timeline.Rect{}, fmt.Errorf("%w: %q", ErrBadSelection, raw)
	}

	var v [rectFields]float64

	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return timeline.Rect{}, fmt.Errorf("%w: %q", ErrBadSelection, raw)
		}

		v[i] = f
	}

	return timeline.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}

// dataSource returns the first argument or the configured loc.csv.
func dataSource(rt *runtime, args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return rt.cfg.Data.LocCSV
}

// loadState loads the export at src into a fresh state sized by the chart
// configuration.
func loadState(ctx context.Context, rt *runtime, src string) (timeline.State, error) {
	cfg := rt.cfg

	ds, err := loc.Load(ctx, src, loc.LoadOptions{
		Source:    source.Options{Timeout: cfg.Data.Timeout},
		Read:      loc.ReadOptions{Strict: cfg.Data.Strict, Logger: rt.logger},
		CommitURL: cfg.Data.CommitURL,
		Recorder:  rt.metrics,
	})
	if err != nil {
		return timeline.State{}, err
	}

	if len(ds.Rejected) > 0 {
		rt.logger.WarnContext(ctx, "rows rejected while parsing", "source", src, "rejected", len(ds.Rejected))
	}

	if ds.Empty() {
		rt.logger.WarnContext(ctx, "nothing to show", "source", src, "error", loc.ErrEmptyDataset)
	}

	layout := timeline.Layout{
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
		Margin: timeline.Margin{
			Top:    cfg.Chart.MarginTop,
			Right:  cfg.Chart.MarginRight,
			Bottom: cfg.Chart.MarginBottom,
			Left:   cfg.Chart.MarginLeft,
		},
		RadiusMin: cfg.Chart.RadiusMin,
		RadiusMax: cfg.Chart.RadiusMax,
	}

	return timeline.NewState(ds, layout, cfg.Filter.SliderMax), nil
}

// timed records the duration of stage once fn returns.
func timed(ctx context.Context, rt *runtime, stage string, fn func() error) error {
	start := time.Now()

	ctx, span := rt.providers.Tracer.Start(ctx, "locmeta."+stage)
	defer span.End()

	err := fn()

	rt.metrics.RecordStage(ctx, stage, time.Since(start))

	if err != nil {
		span.RecordError(err)
	}

	return err
}

var _ loc.Recorder = (*observability.PipelineMetrics)(nil)
