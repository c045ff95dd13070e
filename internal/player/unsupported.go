package player

import "github.com/felixgeelhaar/lectern/internal/lesson"

// Unsupported is the placeholder player for step variants the generator
// invented. It renders a notice and lets the learner skip past.
type Unsupported struct {
	completion
	step lesson.Step
}

// NewUnsupported creates the placeholder player.
func NewUnsupported(step lesson.Step, onComplete func()) *Unsupported {
	return &Unsupported{completion: completion{fn: onComplete}, step: step}
}

// Step returns the underlying step.
func (p *Unsupported) Step() lesson.Step { return p.step }

// RawType returns the unresolvable type tag, if the step carries one.
func (p *Unsupported) RawType() string {
	if u, ok := p.step.(*lesson.Unsupported); ok {
		return u.RawType
	}
	return string(p.step.Type())
}

// Skip finishes the step.
func (p *Unsupported) Skip() { p.fire() }
