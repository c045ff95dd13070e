package lesson

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a lesson from model output. Step decoding is total:
// a step with an unknown type tag, or one whose body fails to decode, becomes
// an Unsupported placeholder instead of failing the whole lesson.
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var raw rawLesson
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode lesson: %w", err)
	}

	l.Title = raw.Title
	l.Steps = make([]Step, 0, len(raw.Steps))
	for _, rs := range raw.Steps {
		l.Steps = append(l.Steps, decodeStep(rs))
	}
	return nil
}

func decodeStep(data []byte) Step {
	var probe struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	// A malformed step object still yields a placeholder with whatever
	// fields did decode.
	_ = json.Unmarshal(data, &probe)

	base := Base{ID: probe.ID, Title: probe.Title}
	placeholder := &Unsupported{Base: base, RawType: probe.Type}

	resolved, ok := ResolveType(probe.Type)
	if !ok {
		return placeholder
	}

	var (
		step Step
		err  error
	)
	switch resolved {
	case TypeExplanation:
		v := &Explanation{}
		err = json.Unmarshal(data, v)
		step = v
	case TypeFlashcards:
		v := &Flashcards{}
		err = json.Unmarshal(data, v)
		step = v
	case TypeQuiz:
		v := &Quiz{}
		err = json.Unmarshal(data, v)
		step = v
	case TypeMatching:
		v := &Matching{}
		err = json.Unmarshal(data, v)
		step = v
	case TypeFillInTheBlank:
		v := &FillInTheBlank{}
		err = json.Unmarshal(data, v)
		step = v
	case TypeShortAnswer:
		v := &ShortAnswer{}
		err = json.Unmarshal(data, v)
		step = v
	default:
		return placeholder
	}
	if err != nil {
		return placeholder
	}
	return step
}

// MarshalJSON emits the canonical wire form with a "type" tag per step.
func (l Lesson) MarshalJSON() ([]byte, error) {
	out := struct {
		Title string `json:"title"`
		Steps []Step `json:"steps"`
	}{Title: l.Title, Steps: l.Steps}
	if out.Steps == nil {
		out.Steps = []Step{}
	}
	return json.Marshal(out)
}

func marshalTagged(t StepType, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	m["type"] = tag
	return json.Marshal(m)
}

func (s Explanation) MarshalJSON() ([]byte, error) {
	type plain Explanation
	return marshalTagged(TypeExplanation, plain(s))
}

func (s Flashcards) MarshalJSON() ([]byte, error) {
	type plain Flashcards
	return marshalTagged(TypeFlashcards, plain(s))
}

func (s Quiz) MarshalJSON() ([]byte, error) {
	type plain Quiz
	return marshalTagged(TypeQuiz, plain(s))
}

func (s Matching) MarshalJSON() ([]byte, error) {
	type plain Matching
	return marshalTagged(TypeMatching, plain(s))
}

func (s FillInTheBlank) MarshalJSON() ([]byte, error) {
	type plain FillInTheBlank
	return marshalTagged(TypeFillInTheBlank, plain(s))
}

func (s ShortAnswer) MarshalJSON() ([]byte, error) {
	type plain ShortAnswer
	return marshalTagged(TypeShortAnswer, plain(s))
}
