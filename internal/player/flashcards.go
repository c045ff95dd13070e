package player

import "github.com/felixgeelhaar/lectern/internal/lesson"

// Flashcards cycles the learner through a deck until every card has been
// marked done. "Again" sends the current card to the back of the remaining
// queue; "Done" removes it. Completion fires when the queue empties.
type Flashcards struct {
	completion
	step      *lesson.Flashcards
	remaining []int // deck indices not yet mastered
	pos       int
	flipped   bool
}

// NewFlashcards creates the flashcards player over the full deck.
func NewFlashcards(step *lesson.Flashcards, onComplete func()) *Flashcards {
	remaining := make([]int, len(step.Deck))
	for i := range remaining {
		remaining[i] = i
	}
	return &Flashcards{
		completion: completion{fn: onComplete},
		step:       step,
		remaining:  remaining,
	}
}

// Step returns the underlying step.
func (p *Flashcards) Step() *lesson.Flashcards { return p.step }

// Current returns the card being studied, or nil when the queue is empty.
func (p *Flashcards) Current() *lesson.Card {
	if len(p.remaining) == 0 {
		return nil
	}
	return &p.step.Deck[p.remaining[p.pos]]
}

// Remaining returns how many cards are left in the queue.
func (p *Flashcards) Remaining() int { return len(p.remaining) }

// Flipped reports whether the current card shows its back.
func (p *Flashcards) Flipped() bool { return p.flipped }

// Flip toggles the current card between front and back.
func (p *Flashcards) Flip() {
	if p.Completed() || len(p.remaining) == 0 {
		return
	}
	p.flipped = !p.flipped
}

// Again keeps the current card in rotation and moves to the next one.
// Only legal after a flip.
func (p *Flashcards) Again() {
	if p.Completed() || !p.flipped || len(p.remaining) == 0 {
		return
	}
	p.flipped = false
	p.pos = (p.pos + 1) % len(p.remaining)
}

// Done removes the current card from the queue; when the queue empties the
// step completes. An empty deck completes immediately.
func (p *Flashcards) Done() {
	if p.Completed() {
		return
	}
	if len(p.remaining) == 0 {
		p.fire()
		return
	}
	if !p.flipped {
		return
	}
	p.flipped = false
	p.remaining = append(p.remaining[:p.pos], p.remaining[p.pos+1:]...)
	if len(p.remaining) == 0 {
		p.fire()
		return
	}
	if p.pos >= len(p.remaining) {
		p.pos = 0
	}
}
