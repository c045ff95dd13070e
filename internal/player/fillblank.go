package player

import (
	"math/rand"
	"regexp"

	"github.com/felixgeelhaar/lectern/internal/lesson"
)

var blankToken = regexp.MustCompile(`___BLANK___|_{5,}`)

// FillInTheBlank is a one-blank sentence with shuffled options. Submission
// locks the choice and reveals the correct answer.
type FillInTheBlank struct {
	completion
	step      *lesson.FillInTheBlank
	options   []string // shuffled once at construction
	selected  int
	submitted bool
}

// NewFillInTheBlank creates the fill-in-the-blank player.
func NewFillInTheBlank(step *lesson.FillInTheBlank, onComplete func(), rng *rand.Rand) *FillInTheBlank {
	options := make([]string, len(step.Options))
	copy(options, step.Options)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &FillInTheBlank{
		completion: completion{fn: onComplete},
		step:       step,
		options:    options,
		selected:   -1,
	}
}

// Step returns the underlying step.
func (p *FillInTheBlank) Step() *lesson.FillInTheBlank { return p.step }

// Options returns the shuffled option list.
func (p *FillInTheBlank) Options() []string { return p.options }

// SentenceParts splits the sentence around the blank token.
func (p *FillInTheBlank) SentenceParts() []string {
	return blankToken.Split(p.step.Sentence, -1)
}

// Select picks an option. Ignored after submission or out of range.
func (p *FillInTheBlank) Select(i int) {
	if p.submitted || i < 0 || i >= len(p.options) {
		return
	}
	p.selected = i
}

// Selected returns the chosen option index, or -1.
func (p *FillInTheBlank) Selected() int { return p.selected }

// SelectedOption returns the chosen option text, or empty.
func (p *FillInTheBlank) SelectedOption() string {
	if p.selected < 0 {
		return ""
	}
	return p.options[p.selected]
}

// Submit locks in the selection. It reports whether a submission happened.
func (p *FillInTheBlank) Submit() bool {
	if p.submitted || p.selected < 0 {
		return false
	}
	p.submitted = true
	return true
}

// Submitted reports whether the answer is locked in.
func (p *FillInTheBlank) Submitted() bool { return p.submitted }

// Correct reports whether the locked-in option is the correct answer.
func (p *FillInTheBlank) Correct() bool {
	return p.submitted && p.SelectedOption() == p.step.CorrectAnswer
}

// Continue finishes the step; only legal after submission.
func (p *FillInTheBlank) Continue() {
	if !p.submitted {
		return
	}
	p.fire()
}
