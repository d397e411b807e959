package timeline

import (
	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// State is the complete filter state of the commit views. States are values:
// every With* method returns a new State and leaves the receiver untouched.
//
// The two filters compose: the selection applies to the commits that pass
// the time cutoff.
type State struct {
	dataset   *loc.Dataset
	chart     Chart
	slider    Slider
	hasSlider bool
	cutoff    Cutoff
	selection Selection
}

// NewState returns a state over ds with no cutoff and no selection.
func NewState(ds *loc.Dataset, layout Layout, sliderMax float64) State {
	st := State{
		dataset: ds,
		chart:   NewChart(ds.Commits, layout),
	}

	slider, err := NewSlider(ds.Commits, sliderMax)
	if err == nil {
		st.slider = slider
		st.hasSlider = true
	}

	return st
}

// Dataset returns the underlying dataset.
func (s State) Dataset() *loc.Dataset {
	return s.dataset
}

// Chart returns the scales shared by display and selection.
func (s State) Chart() Chart {
	return s.chart
}

// Slider returns the time slider; ok is false for an empty dataset.
func (s State) Slider() (Slider, bool) {
	return s.slider, s.hasSlider
}

// Cutoff returns the current time cutoff.
func (s State) Cutoff() Cutoff {
	return s.cutoff
}

// Selection returns the current selection.
func (s State) Selection() Selection {
	return s.selection
}

// WithCutoff returns s with the given cutoff.
func (s State) WithCutoff(c Cutoff) State {
	s.cutoff = c

	return s
}

// WithProgress moves the cutoff to slider position v. On an empty dataset the
// state is returned unchanged.
func (s State) WithProgress(v float64) State {
	if !s.hasSlider {
		return s
	}

	return s.WithCutoff(s.slider.Cutoff(v))
}

// Progress returns the slider position of the current cutoff.
func (s State) Progress() float64 {
	if !s.hasSlider {
		return 0
	}

	at, bounded := s.cutoff.Time()
	if !bounded {
		return s.slider.Max
	}

	return s.slider.Value(at)
}

// WithSelection returns s with the given selection.
func (s State) WithSelection(sel Selection) State {
	s.selection = sel

	return s
}

// ClearSelection returns s with no selection.
func (s State) ClearSelection() State {
	return s.WithSelection(NoSelection)
}

// Visible returns the commits that pass the time cutoff.
func (s State) Visible() []loc.Commit {
	return FilterByTime(s.dataset.Commits, s.cutoff)
}

// Selected returns the visible commits inside the selection.
func (s State) Selected() []loc.Commit {
	return FilterByRegion(s.Visible(), s.selection, s.chart)
}

// Focus returns the selected commits when a selection is active, otherwise
// the visible commits. Breakdown views are computed over Focus.
func (s State) Focus() []loc.Commit {
	if s.selection.Active() {
		return s.Selected()
	}

	return s.Visible()
}
