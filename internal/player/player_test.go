package player

import (
	"math/rand"
	"testing"

	"github.com/felixgeelhaar/lectern/internal/lesson"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestForStepDispatch(t *testing.T) {
	tests := []struct {
		name string
		step lesson.Step
		want string
	}{
		{"explanation", &lesson.Explanation{}, "*player.Explanation"},
		{"flashcards", &lesson.Flashcards{}, "*player.Flashcards"},
		{"quiz", &lesson.Quiz{}, "*player.Quiz"},
		{"matching", &lesson.Matching{}, "*player.Matching"},
		{"fill-in-the-blank", &lesson.FillInTheBlank{}, "*player.FillInTheBlank"},
		{"short-answer", &lesson.ShortAnswer{}, "*player.ShortAnswer"},
		{"unsupported", &lesson.Unsupported{RawType: "interpretive-dance"}, "*player.Unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForStep(tt.step, nil, testRand())
			got := typeName(p)
			if got != tt.want {
				t.Errorf("ForStep() = %s, want %s", got, tt.want)
			}
			if p.Completed() {
				t.Error("player completed before any interaction")
			}
		})
	}
}

func typeName(p Player) string {
	switch p.(type) {
	case *Explanation:
		return "*player.Explanation"
	case *Flashcards:
		return "*player.Flashcards"
	case *Quiz:
		return "*player.Quiz"
	case *Matching:
		return "*player.Matching"
	case *FillInTheBlank:
		return "*player.FillInTheBlank"
	case *ShortAnswer:
		return "*player.ShortAnswer"
	case *Unsupported:
		return "*player.Unsupported"
	default:
		return "unknown"
	}
}

func TestExplanationContinue(t *testing.T) {
	fired := 0
	p := NewExplanation(&lesson.Explanation{Content: "body"}, func() { fired++ })

	p.Continue()
	p.Continue()

	if !p.Completed() {
		t.Error("not completed after Continue")
	}
	if fired != 1 {
		t.Errorf("completion fired %d times, want 1", fired)
	}
}

func TestFlashcardsAgainAndDone(t *testing.T) {
	deck := []lesson.Card{
		{Front: "a", Back: "1"},
		{Front: "b", Back: "2"},
	}
	fired := 0
	p := NewFlashcards(&lesson.Flashcards{Deck: deck}, func() { fired++ })

	// Done before flip is a no-op.
	p.Done()
	if p.Remaining() != 2 {
		t.Fatalf("Remaining() = %d after unflipped Done, want 2", p.Remaining())
	}

	// Again on card "a" keeps it in rotation and moves to "b".
	p.Flip()
	p.Again()
	if got := p.Current().Front; got != "b" {
		t.Fatalf("Current() = %q after Again, want b", got)
	}
	if p.Flipped() {
		t.Error("card still flipped after Again")
	}

	// Master "b", then "a".
	p.Flip()
	p.Done()
	if p.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", p.Remaining())
	}
	if got := p.Current().Front; got != "a" {
		t.Fatalf("Current() = %q, want a", got)
	}

	p.Flip()
	p.Done()
	if !p.Completed() || fired != 1 {
		t.Errorf("Completed() = %v, fired = %d; want true, 1", p.Completed(), fired)
	}
}

func TestFlashcardsEmptyDeck(t *testing.T) {
	fired := 0
	p := NewFlashcards(&lesson.Flashcards{}, func() { fired++ })

	if p.Current() != nil {
		t.Error("Current() non-nil on empty deck")
	}
	p.Done()
	if !p.Completed() || fired != 1 {
		t.Errorf("empty deck: Completed() = %v, fired = %d", p.Completed(), fired)
	}
}

func TestQuizSubmitAndContinue(t *testing.T) {
	step := &lesson.Quiz{
		Question:           "2+2?",
		Options:            []string{"3", "4", "5"},
		CorrectAnswerIndex: 1,
	}
	fired := 0
	p := NewQuiz(step, func() { fired++ })

	// Continue before submission is a no-op.
	p.Continue()
	if p.Completed() {
		t.Fatal("completed before submission")
	}

	// Submit without a selection fails.
	if p.Submit() {
		t.Error("Submit() succeeded with no selection")
	}

	p.Select(5) // out of range, ignored
	p.Select(2)
	p.Select(1)
	if !p.Submit() {
		t.Fatal("Submit() failed with a valid selection")
	}
	if !p.Correct() {
		t.Error("Correct() = false for the right answer")
	}

	// Selection is locked after submission.
	p.Select(0)
	if p.Selected() != 1 {
		t.Errorf("Selected() = %d after post-submit Select, want 1", p.Selected())
	}

	p.Continue()
	if !p.Completed() || fired != 1 {
		t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
	}
}

func TestMatchingTruncatesToMaxPairs(t *testing.T) {
	step := &lesson.Matching{Pairs: []lesson.Pair{
		{Left: "a", Right: "1"},
		{Left: "b", Right: "2"},
		{Left: "c", Right: "3"},
		{Left: "d", Right: "4"},
		{Left: "e", Right: "5"},
		{Left: "f", Right: "6"},
	}}
	p := NewMatching(step, nil, testRand())

	if got := len(p.Tiles()); got != MaxPairs*2 {
		t.Fatalf("len(Tiles()) = %d, want %d", got, MaxPairs*2)
	}
	for _, tile := range p.Tiles() {
		if tile.Pair >= MaxPairs {
			t.Errorf("tile %q references truncated pair %d", tile.Text, tile.Pair)
		}
	}
}

func TestMatchingSelect(t *testing.T) {
	step := &lesson.Matching{Pairs: []lesson.Pair{
		{Left: "a", Right: "1"},
		{Left: "b", Right: "2"},
	}}
	fired := 0
	p := NewMatching(step, func() { fired++ }, testRand())

	find := func(text string) int {
		for i, tile := range p.Tiles() {
			if tile.Text == text {
				return i
			}
		}
		t.Fatalf("tile %q not found", text)
		return -1
	}

	// Mismatched pair resets the selection.
	if got := p.Select(find("a")); got != SelectFirst {
		t.Fatalf("first select = %v, want SelectFirst", got)
	}
	if got := p.Select(find("2")); got != SelectMismatch {
		t.Fatalf("mismatched select = %v, want SelectMismatch", got)
	}
	if p.Selected() != -1 {
		t.Error("selection not reset after mismatch")
	}

	// Two same-side tiles never match.
	p.Select(find("a"))
	if got := p.Select(find("b")); got != SelectMismatch {
		t.Errorf("same-side select = %v, want SelectMismatch", got)
	}

	// Match both pairs.
	p.Select(find("a"))
	if got := p.Select(find("1")); got != SelectMatched {
		t.Fatalf("matching select = %v, want SelectMatched", got)
	}

	// Matched tiles are dead.
	if got := p.Select(find("a")); got != SelectIgnored {
		t.Errorf("select on matched tile = %v, want SelectIgnored", got)
	}

	p.Select(find("b"))
	p.Select(find("2"))
	if !p.Completed() || fired != 1 {
		t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
	}
}

func TestFillInTheBlank(t *testing.T) {
	step := &lesson.FillInTheBlank{
		Sentence:      "Go compiles to ___BLANK___ code.",
		CorrectAnswer: "native",
		Options:       []string{"native", "bytecode", "interpreted"},
	}
	fired := 0
	p := NewFillInTheBlank(step, func() { fired++ }, testRand())

	parts := p.SentenceParts()
	if len(parts) != 2 || parts[0] != "Go compiles to " || parts[1] != " code." {
		t.Errorf("SentenceParts() = %q", parts)
	}

	if len(p.Options()) != 3 {
		t.Fatalf("len(Options()) = %d, want 3", len(p.Options()))
	}

	// Source options are untouched by the shuffle.
	if step.Options[0] != "native" || step.Options[1] != "bytecode" {
		t.Error("construction mutated the step's option list")
	}

	correct := -1
	for i, o := range p.Options() {
		if o == "native" {
			correct = i
		}
	}

	if p.Submit() {
		t.Error("Submit() succeeded with no selection")
	}
	p.Select(correct)
	if !p.Submit() {
		t.Fatal("Submit() failed")
	}
	if !p.Correct() {
		t.Error("Correct() = false for the right option")
	}
	p.Continue()
	if !p.Completed() || fired != 1 {
		t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
	}
}

func TestFillInTheBlankBareUnderscores(t *testing.T) {
	p := NewFillInTheBlank(&lesson.FillInTheBlank{
		Sentence: "Channels are _____ by default.",
	}, nil, testRand())

	parts := p.SentenceParts()
	if len(parts) != 2 || parts[0] != "Channels are " || parts[1] != " by default." {
		t.Errorf("SentenceParts() = %q", parts)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		keyPoints []lesson.KeyPoint
		total     int
		answer    string
		wantScore int
		wantTotal int
	}{
		{
			name:      "partial keyword overlap matches",
			keyPoints: []lesson.KeyPoint{{Point: "promotes code reuse", Marks: 1}},
			total:     1,
			answer:    "It promotes reuse across packages.",
			wantScore: 1,
			wantTotal: 1,
		},
		{
			name:      "no overlap scores zero",
			keyPoints: []lesson.KeyPoint{{Point: "promotes code reuse", Marks: 1}},
			total:     1,
			answer:    "something unrelated entirely",
			wantScore: 0,
			wantTotal: 1,
		},
		{
			name: "stop words and short words are not keywords",
			// Only "interfaces" survives extraction, so matching it alone
			// is enough.
			keyPoints: []lesson.KeyPoint{{Point: "this is about interfaces", Marks: 2}},
			total:     2,
			answer:    "Go interfaces are implicit.",
			wantScore: 2,
			wantTotal: 2,
		},
		{
			name: "missing totalMarks falls back to the marks sum",
			keyPoints: []lesson.KeyPoint{
				{Point: "goroutines scheduling", Marks: 2},
				{Point: "channel communication", Marks: 3},
			},
			answer:    "goroutines use channel communication for scheduling",
			wantScore: 5,
			wantTotal: 5,
		},
		{
			name:      "point with only stop words never matches",
			keyPoints: []lesson.KeyPoint{{Point: "this that with", Marks: 1}},
			total:     1,
			answer:    "this that with",
			wantScore: 0,
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := &lesson.ShortAnswer{KeyPoints: tt.keyPoints, TotalMarks: tt.total}
			got := Grade(step, tt.answer)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestShortAnswerSubmitAndSkip(t *testing.T) {
	step := &lesson.ShortAnswer{
		Question:    "Why interfaces?",
		ModelAnswer: "Decoupling.",
		KeyPoints:   []lesson.KeyPoint{{Point: "promotes code reuse", Marks: 1}},
		TotalMarks:  1,
	}

	t.Run("submit grades and reveals", func(t *testing.T) {
		fired := 0
		p := NewShortAnswer(step, func() { fired++ })

		// Blank answers are ignored.
		if p.Submit("   ") != nil {
			t.Error("blank Submit returned a result")
		}
		if p.Revealed() {
			t.Fatal("revealed after blank submit")
		}

		r := p.Submit("It promotes reuse.")
		if r == nil || r.Score != 1 {
			t.Fatalf("Submit result = %+v, want score 1", r)
		}
		if !p.Revealed() {
			t.Error("not revealed after submit")
		}

		// A second submission does not regrade.
		again := p.Submit("different answer")
		if again != r {
			t.Error("repeat Submit regraded the answer")
		}

		p.Continue()
		if !p.Completed() || fired != 1 {
			t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
		}
	})

	t.Run("skip reveals without grading", func(t *testing.T) {
		fired := 0
		p := NewShortAnswer(step, func() { fired++ })

		// Continue before reveal is a no-op.
		p.Continue()
		if p.Completed() {
			t.Fatal("completed before reveal")
		}

		p.Skip()
		if !p.Revealed() {
			t.Error("not revealed after skip")
		}
		if p.Result() != nil {
			t.Error("skip produced a grading result")
		}
		p.Continue()
		if !p.Completed() || fired != 1 {
			t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
		}
	})
}

func TestUnsupportedSkip(t *testing.T) {
	fired := 0
	p := NewUnsupported(&lesson.Unsupported{RawType: "interpretive-dance"}, func() { fired++ })

	if got := p.RawType(); got != "interpretive-dance" {
		t.Errorf("RawType() = %q", got)
	}
	p.Skip()
	p.Skip()
	if !p.Completed() || fired != 1 {
		t.Errorf("Completed() = %v, fired = %d", p.Completed(), fired)
	}
}
