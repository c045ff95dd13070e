package lesson

import "strings"

// aliases maps normalized type strings to canonical step types. The model
// routinely invents synonyms ("Final Review", "MCQ", "cloze"); anything not
// listed here degrades to the unsupported placeholder rather than failing.
var aliases = map[string]StepType{
	// canonical names resolve to themselves
	"explanation":       TypeExplanation,
	"flashcards":        TypeFlashcards,
	"quiz":              TypeQuiz,
	"matching":          TypeMatching,
	"fill-in-the-blank": TypeFillInTheBlank,
	"short-answer":      TypeShortAnswer,

	"final-review": TypeExplanation,
	"review":       TypeExplanation,
	"summary":      TypeExplanation,

	"flashcard": TypeFlashcards,
	"cards":     TypeFlashcards,
	"card":      TypeFlashcards,
	"deck":      TypeFlashcards,

	"multiple-choice": TypeQuiz,
	"mcq":             TypeQuiz,

	"match":         TypeMatching,
	"drag-and-drop": TypeMatching,

	"fill-in-the-blanks": TypeFillInTheBlank,
	"fill-blank":         TypeFillInTheBlank,
	"cloze":              TypeFillInTheBlank,

	"free-response": TypeShortAnswer,
	"long-answer":   TypeShortAnswer,
	"open-ended":    TypeShortAnswer,
}

// NormalizeTypeString lower-cases a raw type tag and collapses runs of
// spaces, underscores, and hyphens into single hyphens.
func NormalizeTypeString(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), "-")
}

// ResolveType maps an arbitrary model-emitted type tag to a canonical step
// type. It is total over strings: the second return reports whether the tag
// resolved to one of the six known variants.
func ResolveType(raw string) (StepType, bool) {
	t, ok := aliases[NormalizeTypeString(raw)]
	return t, ok
}
