// Package player implements the per-step interaction state machines. Each
// player renders through whatever front end drives it and calls its
// completion callback exactly once when the learner finishes the step; the
// runner never inspects step-internal correctness.
package player

import (
	"math/rand"
	"time"

	"github.com/felixgeelhaar/lectern/internal/lesson"
)

// Player is the capability shared by all step players.
type Player interface {
	// Completed reports whether the completion callback has fired.
	Completed() bool
}

// ForStep builds the player for a step. Unknown step variants get the
// skippable placeholder player, never an error. rng drives tile/option
// shuffling; pass nil for a time-seeded source.
func ForStep(step lesson.Step, onComplete func(), rng *rand.Rand) Player {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch s := step.(type) {
	case *lesson.Explanation:
		return NewExplanation(s, onComplete)
	case *lesson.Flashcards:
		return NewFlashcards(s, onComplete)
	case *lesson.Quiz:
		return NewQuiz(s, onComplete)
	case *lesson.Matching:
		return NewMatching(s, onComplete, rng)
	case *lesson.FillInTheBlank:
		return NewFillInTheBlank(s, onComplete, rng)
	case *lesson.ShortAnswer:
		return NewShortAnswer(s, onComplete)
	default:
		return NewUnsupported(step, onComplete)
	}
}

// completion guards the once-only completion callback.
type completion struct {
	fn   func()
	done bool
}

func (c *completion) fire() {
	if c.done {
		return
	}
	c.done = true
	if c.fn != nil {
		c.fn()
	}
}

func (c *completion) Completed() bool { return c.done }
