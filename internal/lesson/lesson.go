package lesson

import "encoding/json"

// StepType identifies one of the canonical lesson step variants.
type StepType string

const (
	TypeExplanation    StepType = "explanation"
	TypeFlashcards     StepType = "flashcards"
	TypeQuiz           StepType = "quiz"
	TypeMatching       StepType = "matching"
	TypeFillInTheBlank StepType = "fill-in-the-blank"
	TypeShortAnswer    StepType = "short-answer"

	// TypeUnsupported marks a step whose type could not be resolved.
	// It renders as a skippable placeholder and is never fatal.
	TypeUnsupported StepType = "unsupported"
)

// Step is one interactive unit within a lesson.
// Sequence position is authoritative for ordering; IDs are opaque.
type Step interface {
	StepID() string
	StepTitle() string
	Type() StepType
}

// Base carries the fields shared by every step variant.
type Base struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (b Base) StepID() string    { return b.ID }
func (b Base) StepTitle() string { return b.Title }

// Explanation is a passive step with a markdown body.
type Explanation struct {
	Base
	Content string `json:"content"`
}

func (Explanation) Type() StepType { return TypeExplanation }

// Card is a single front/back flashcard.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcards carries a deck of cards the learner works through.
type Flashcards struct {
	Base
	Deck []Card `json:"deck"`
}

func (Flashcards) Type() StepType { return TypeFlashcards }

// Quiz is a single-select multiple choice question.
type Quiz struct {
	Base
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

func (Quiz) Type() StepType { return TypeQuiz }

// Pair is one left/right pair in a matching exercise.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Matching asks the learner to pair up left and right items.
type Matching struct {
	Base
	Pairs []Pair `json:"pairs"`
}

func (Matching) Type() StepType { return TypeMatching }

// FillInTheBlank is a sentence with one blank and a set of options.
// The blank is marked by ___BLANK___ (or a bare _____ run) in the sentence.
type FillInTheBlank struct {
	Base
	Sentence      string   `json:"sentence"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	Explanation   string   `json:"explanation"`
}

func (FillInTheBlank) Type() StepType { return TypeFillInTheBlank }

// KeyPoint is one gradeable point in a short-answer question.
type KeyPoint struct {
	Point string `json:"point"`
	Marks int    `json:"marks"`
}

// ShortAnswer is a free-text question graded by keyword matching
// against key points, always paired with a model answer.
type ShortAnswer struct {
	Base
	Question    string     `json:"question"`
	ModelAnswer string     `json:"modelAnswer"`
	KeyPoints   []KeyPoint `json:"keyPoints"`
	TotalMarks  int        `json:"totalMarks"`
}

func (ShortAnswer) Type() StepType { return TypeShortAnswer }

// Unsupported is the placeholder for step types the model invented.
// RawType preserves the original type tag for diagnostics and round-trips.
type Unsupported struct {
	Base
	RawType string `json:"type"`
}

func (Unsupported) Type() StepType { return TypeUnsupported }

// Lesson is the generated curriculum artifact: a title plus an ordered
// sequence of steps. Immutable once generated.
type Lesson struct {
	Title string
	Steps []Step
}

// Unsupported returns the steps that degraded to the placeholder variant.
func (l *Lesson) Unsupported() []*Unsupported {
	var out []*Unsupported
	for _, s := range l.Steps {
		if u, ok := s.(*Unsupported); ok {
			out = append(out, u)
		}
	}
	return out
}

type rawLesson struct {
	Title string            `json:"title"`
	Steps []json.RawMessage `json:"steps"`
}
