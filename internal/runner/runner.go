// Package runner sequences a lesson's steps. The runner owns navigation
// only; each step player owns its internal interaction state and calls
// Advance exactly once when the learner finishes that step.
package runner

import (
	"github.com/felixgeelhaar/lectern/internal/lesson"
)

// Runner walks an ordered list of steps. States are InProgress(index) and
// the absorbing Finished state.
type Runner struct {
	steps      []lesson.Step
	index      int
	finished   bool
	onProgress func(int)
	onComplete func()
}

// Option configures a Runner.
type Option func(*Runner)

// WithInitialStep seeds the starting index for resume. Out-of-range values
// are clamped into [0, N-1].
func WithInitialStep(index int) Option {
	return func(r *Runner) {
		if index < 0 {
			index = 0
		}
		if index >= len(r.steps) && len(r.steps) > 0 {
			index = len(r.steps) - 1
		}
		r.index = index
	}
}

// WithProgressFunc registers a callback fired with the new index on every
// step transition.
func WithProgressFunc(fn func(stepIndex int)) Option {
	return func(r *Runner) { r.onProgress = fn }
}

// WithCompleteFunc registers a callback fired exactly once when the last
// step is completed.
func WithCompleteFunc(fn func()) Option {
	return func(r *Runner) { r.onComplete = fn }
}

// New creates a runner over the lesson's steps.
func New(les lesson.Lesson, opts ...Option) *Runner {
	r := &Runner{steps: les.Steps}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Step returns the current step, or nil once finished or for an empty lesson.
func (r *Runner) Step() lesson.Step {
	if r.finished || r.index >= len(r.steps) {
		return nil
	}
	return r.steps[r.index]
}

// Index returns the current step index.
func (r *Runner) Index() int { return r.index }

// Len returns the number of steps.
func (r *Runner) Len() int { return len(r.steps) }

// Done reports whether the runner reached the Finished state.
func (r *Runner) Done() bool { return r.finished }

// Advance moves to the next step, or to Finished from the last step.
// Finished is absorbing: further calls are no-ops.
func (r *Runner) Advance() {
	if r.finished {
		return
	}
	if r.index < len(r.steps)-1 {
		r.index++
		if r.onProgress != nil {
			r.onProgress(r.index)
		}
		return
	}
	r.finished = true
	if r.onComplete != nil {
		r.onComplete()
	}
}

// Retreat moves back one step; a no-op at index 0 or once finished.
func (r *Runner) Retreat() {
	if r.finished || r.index == 0 {
		return
	}
	r.index--
	if r.onProgress != nil {
		r.onProgress(r.index)
	}
}
