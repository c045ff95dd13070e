package player

import "github.com/felixgeelhaar/lectern/internal/lesson"

// Quiz is a single-select question. Submission locks in the choice and
// reveals correctness; only then can the learner continue.
type Quiz struct {
	completion
	step      *lesson.Quiz
	selected  int
	submitted bool
}

// NewQuiz creates the quiz player.
func NewQuiz(step *lesson.Quiz, onComplete func()) *Quiz {
	return &Quiz{completion: completion{fn: onComplete}, step: step, selected: -1}
}

// Step returns the underlying step.
func (p *Quiz) Step() *lesson.Quiz { return p.step }

// Select picks an option. Ignored after submission or out of range.
func (p *Quiz) Select(i int) {
	if p.submitted || i < 0 || i >= len(p.step.Options) {
		return
	}
	p.selected = i
}

// Selected returns the chosen option index, or -1.
func (p *Quiz) Selected() int { return p.selected }

// Submit locks in the selection. It reports whether a submission happened.
func (p *Quiz) Submit() bool {
	if p.submitted || p.selected < 0 {
		return false
	}
	p.submitted = true
	return true
}

// Submitted reports whether the answer is locked in.
func (p *Quiz) Submitted() bool { return p.submitted }

// Correct reports whether the locked-in answer matches the correct index.
// Only meaningful after submission.
func (p *Quiz) Correct() bool {
	return p.submitted && p.selected == p.step.CorrectAnswerIndex
}

// Continue finishes the step; only legal after submission.
func (p *Quiz) Continue() {
	if !p.submitted {
		return
	}
	p.fire()
}
