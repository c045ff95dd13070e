package player

import "github.com/felixgeelhaar/lectern/internal/lesson"

// Explanation is the passive reading step; an explicit continue action
// completes it.
type Explanation struct {
	completion
	step *lesson.Explanation
}

// NewExplanation creates the explanation player.
func NewExplanation(step *lesson.Explanation, onComplete func()) *Explanation {
	return &Explanation{completion: completion{fn: onComplete}, step: step}
}

// Step returns the underlying step.
func (p *Explanation) Step() *lesson.Explanation { return p.step }

// Continue finishes the step.
func (p *Explanation) Continue() { p.fire() }
