// Package timeline maps commits onto chart coordinates and filters them by
// time cutoff and by rectangular selection. All filters are pure functions of
// an immutable dataset plus an explicit State value.
package timeline

import (
	"math"
	"time"
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns a linear scale from [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map returns the range value for v. A degenerate domain maps to the range midpoint.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}

	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// Invert returns the domain value for a range value r.
func (s Linear) Invert(r float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return (s.D0 + s.D1) / 2
	}

	return s.D0 + (r-s.R0)/span*(s.D1-s.D0)
}

// Ticks returns count+1 evenly spaced domain values from D0 to D1.
func (s Linear) Ticks(count int) []float64 {
	if count <= 0 {
		return []float64{s.D0}
	}

	ticks := make([]float64, count+1)
	step := (s.D1 - s.D0) / float64(count)

	for i := range ticks {
		ticks[i] = s.D0 + step*float64(i)
	}

	ticks[count] = s.D1

	return ticks
}

// Time is a linear scale over instants.
type Time struct {
	Start, End time.Time
	R0, R1     float64
}

// NewTime returns a time scale from [start, end] onto [r0, r1].
func NewTime(start, end time.Time, r0, r1 float64) Time {
	return Time{Start: start, End: end, R0: r0, R1: r1}
}

func (s Time) linear() Linear {
	return NewLinear(0, float64(s.End.Sub(s.Start)), s.R0, s.R1)
}

// Map returns the range value for t.
func (s Time) Map(t time.Time) float64 {
	return s.linear().Map(float64(t.Sub(s.Start)))
}

// Invert returns the instant for range value r.
func (s Time) Invert(r float64) time.Time {
	offset := s.linear().Invert(r)

	return s.Start.Add(time.Duration(math.Round(offset)))
}

// Sqrt maps a domain onto a range through a square root, so that circle area
// rather than radius is proportional to the value.
type Sqrt struct {
	D0, D1 float64
	R0, R1 float64
}

// NewSqrt returns a square-root scale from [d0, d1] onto [r0, r1].
func NewSqrt(d0, d1, r0, r1 float64) Sqrt {
	return Sqrt{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map returns the range value for v.
func (s Sqrt) Map(v float64) float64 {
	return NewLinear(signedSqrt(s.D0), signedSqrt(s.D1), s.R0, s.R1).Map(signedSqrt(v))
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}

	return math.Sqrt(v)
}
