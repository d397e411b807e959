package timeline

import (
	"cmp"
	"slices"
	"time"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// Rect is an axis-aligned rectangle in chart coordinates.
type Rect struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Normalize returns r with X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Contains reports whether p lies inside r, boundaries included.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()

	return p.X >= n.X0 && p.X <= n.X1 && p.Y >= n.Y0 && p.Y <= n.Y1
}

// Selection is an optional rectangle. The zero value is "no selection".
type Selection struct {
	rect   Rect
	active bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// Select returns an active selection over r.
func Select(r Rect) Selection {
	return Selection{rect: r.Normalize(), active: true}
}

// Active reports whether a rectangle is set.
func (s Selection) Active() bool {
	return s.active
}

// Rect returns the rectangle and whether the selection is active.
func (s Selection) Rect() (Rect, bool) {
	return s.rect, s.active
}

// Cutoff is the latest timestamp included by the time filter.
// The zero value is unbounded.
type Cutoff struct {
	at      time.Time
	bounded bool
}

// Unbounded includes every commit.
var Unbounded = Cutoff{}

// At returns a cutoff at t.
func At(t time.Time) Cutoff {
	return Cutoff{at: t, bounded: true}
}

// Time returns the cutoff instant and whether it is bounded.
func (c Cutoff) Time() (time.Time, bool) {
	return c.at, c.bounded
}

// Includes reports whether t is at or before the cutoff.
func (c Cutoff) Includes(t time.Time) bool {
	return !c.bounded || !t.After(c.at)
}

// FilterByTime returns commits with Datetime <= cutoff, in input order.
func FilterByTime(commits []loc.Commit, cutoff Cutoff) []loc.Commit {
	out := make([]loc.Commit, 0, len(commits))

	for _, c := range commits {
		if cutoff.Includes(c.Datetime) {
			out = append(out, c)
		}
	}

	return out
}

// FilterByRegion returns commits whose projected point lies inside the
// selection, in input order. An inactive selection selects nothing.
func FilterByRegion(commits []loc.Commit, sel Selection, p Projector) []loc.Commit {
	rect, ok := sel.Rect()
	if !ok {
		return []loc.Commit{}
	}

	out := make([]loc.Commit, 0)

	for _, c := range commits {
		if rect.Contains(p.Project(c)) {
			out = append(out, c)
		}
	}

	return out
}

// IsSelected reports whether commit falls inside the selection.
func IsSelected(c loc.Commit, sel Selection, p Projector) bool {
	rect, ok := sel.Rect()

	return ok && rect.Contains(p.Project(c))
}

func sortDotsBySize(dots []Dot) {
	slices.SortStableFunc(dots, func(a, b Dot) int {
		return cmp.Compare(b.R, a.R)
	})
}
