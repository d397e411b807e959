package timeline

import (
	"time"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// HoursPerDay is the upper bound of the y domain.
const HoursPerDay = 24

// Margin is the space around the plotting area, in chart units.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout describes the chart viewport.
type Layout struct {
	Width, Height float64
	Margin        Margin

	// RadiusMin and RadiusMax bound the dot radius.
	RadiusMin, RadiusMax float64
}

// DefaultLayout returns the 1000x600 viewport used by the commit page.
func DefaultLayout() Layout {
	return Layout{
		Width:     1000,
		Height:    600,
		Margin:    Margin{Top: 10, Right: 10, Bottom: 30, Left: 20},
		RadiusMin: 2,
		RadiusMax: 30,
	}
}

// Usable returns the plotting rectangle inside the margins.
func (l Layout) Usable() Rect {
	return Rect{
		X0: l.Margin.Left,
		Y0: l.Margin.Top,
		X1: l.Width - l.Margin.Right,
		Y1: l.Height - l.Margin.Bottom,
	}
}

// Point is a position in chart coordinates.
type Point struct {
	X, Y float64
}

// Projector maps a commit to its chart position.
type Projector interface {
	Project(c loc.Commit) Point
}

// Chart holds the scales of the commit scatter plot.
type Chart struct {
	Layout Layout
	X      Time
	Y      Linear
	R      Sqrt
}

// NewChart builds scales for commits: x over the timestamp extent, y over
// [0, 24) hours with 0 at the bottom, r over the total-lines extent.
func NewChart(commits []loc.Commit, layout Layout) Chart {
	usable := layout.Usable()

	first, last, ok := loc.TimeExtent(commits)
	if !ok {
		first = time.Unix(0, 0).UTC()
		last = first
	}

	lo, hi, _ := loc.LineExtent(commits)

	return Chart{
		Layout: layout,
		X:      NewTime(first, last, usable.X0, usable.X1),
		Y:      NewLinear(0, HoursPerDay, usable.Y1, usable.Y0),
		R:      NewSqrt(float64(lo), float64(hi), layout.RadiusMin, layout.RadiusMax),
	}
}

// Project implements Projector.
func (c Chart) Project(commit loc.Commit) Point {
	return Point{X: c.X.Map(commit.Datetime), Y: c.Y.Map(commit.HourFrac)}
}

// Radius returns the dot radius for a commit.
func (c Chart) Radius(commit loc.Commit) float64 {
	return c.R.Map(float64(commit.TotalLines))
}

// Dot is the tuple handed to the drawing layer.
type Dot struct {
	Commit loc.Commit
	X      time.Time
	Y      float64
	R      float64
	Point  Point
}

// Dots returns one Dot per commit, largest first so small dots stay on top.
func (c Chart) Dots(commits []loc.Commit) []Dot {
	dots := make([]Dot, len(commits))

	for i, commit := range commits {
		dots[i] = Dot{
			Commit: commit,
			X:      commit.Datetime,
			Y:      commit.HourFrac,
			R:      c.Radius(commit),
			Point:  c.Project(commit),
		}
	}

	sortDotsBySize(dots)

	return dots
}
