package timeline

import (
	"math"
	"time"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// DefaultSliderMax is the upper bound of the slider control.
const DefaultSliderMax = 100

// Slider maps a bounded control value onto the commit time extent.
type Slider struct {
	Max   float64
	scale Time
}

// NewSlider returns a slider over the commit timestamps in [0, limit].
// It fails with loc.ErrEmptyDataset when there are no commits.
func NewSlider(commits []loc.Commit, limit float64) (Slider, error) {
	first, last, ok := loc.TimeExtent(commits)
	if !ok {
		return Slider{}, loc.ErrEmptyDataset
	}

	if limit <= 0 {
		limit = DefaultSliderMax
	}

	return Slider{Max: limit, scale: NewTime(first, last, 0, limit)}, nil
}

// Cutoff returns the cutoff for control value v, clamped to [0, Max].
func (s Slider) Cutoff(v float64) Cutoff {
	return At(s.scale.Invert(clamp(v, 0, s.Max)))
}

// Value returns the control value for t, rounded to a whole tick and clamped.
// With a single timestamp every t at or after it maps to Max and earlier t to 0.
func (s Slider) Value(t time.Time) float64 {
	if s.scale.Start.Equal(s.scale.End) {
		if t.Before(s.scale.Start) {
			return 0
		}

		return s.Max
	}

	return clamp(math.Round(s.scale.Map(t)), 0, s.Max)
}

// Bounds returns the earliest and latest commit timestamps.
func (s Slider) Bounds() (time.Time, time.Time) {
	return s.scale.Start, s.scale.End
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
