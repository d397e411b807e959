package timeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
)

// ErrStepOutOfRange is returned by Story.Enter for an unknown step.
var ErrStepOutOfRange = errors.New("story step out of range")

// StepDateLayout formats the step date in narrative text.
const StepDateLayout = "Monday, January 2, 2006 at 3:04 PM"

// Step is one scrollytelling step, bound to a single commit.
type Step struct {
	Index  int
	Commit loc.Commit
	Text   string
}

// Story orders commits chronologically into steps. Entering a step moves the
// time cutoff to that step's commit.
type Story struct {
	steps   []Step
	onEnter func(loc.Commit)
}

// NewStory builds one step per commit, oldest first.
func NewStory(commits []loc.Commit) *Story {
	ordered := slices.Clone(commits)
	slices.SortStableFunc(ordered, func(a, b loc.Commit) int {
		return a.Datetime.Compare(b.Datetime)
	})

	steps := make([]Step, len(ordered))
	for i, c := range ordered {
		steps[i] = Step{Index: i, Commit: c, Text: narrate(i, c)}
	}

	return &Story{steps: steps}
}

// Steps returns the steps in order.
func (s *Story) Steps() []Step {
	return s.steps
}

// Len returns the number of steps.
func (s *Story) Len() int {
	return len(s.steps)
}

// OnStepEnter registers the callback invoked by Enter. A later call replaces
// the earlier callback.
func (s *Story) OnStepEnter(fn func(loc.Commit)) {
	s.onEnter = fn
}

// Enter activates step i: the callback sees the step's commit and the
// returned state has its cutoff at that commit.
func (s *Story) Enter(st State, i int) (State, error) {
	if i < 0 || i >= len(s.steps) {
		return st, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, i, len(s.steps))
	}

	commit := s.steps[i].Commit

	if s.onEnter != nil {
		s.onEnter(commit)
	}

	return st.WithCutoff(At(commit.Datetime)), nil
}

func narrate(i int, c loc.Commit) string {
	which := "another glorious commit"
	if i == 0 {
		which = "my first commit, and it was glorious"
	}

	return fmt.Sprintf("On %s, I made %s. I edited %d lines across %d files.",
		c.Datetime.Format(StepDateLayout), which, c.TotalLines, len(c.Files()))
}
