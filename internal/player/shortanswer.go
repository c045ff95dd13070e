package player

import (
	"math"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/lesson"
)

// stopWords are filler terms excluded from key-point keyword extraction.
var stopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "they": {},
	"their": {}, "have": {}, "been": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "which": {}, "where": {}, "when": {},
	"than": {}, "then": {}, "also": {}, "into": {}, "each": {},
	"both": {}, "some": {}, "such": {}, "these": {}, "those": {},
	"about": {}, "more": {}, "most": {}, "between": {},
}

// PointResult is the grading outcome for one key point.
type PointResult struct {
	Point   lesson.KeyPoint
	Matched bool
}

// GradeResult is the aggregate grading outcome for a short answer.
type GradeResult struct {
	Points []PointResult
	Score  int
	Total  int
}

// Grade scores a free-text answer against the step's key points by keyword
// overlap. A point is matched when the answer contains at least 40% of the
// point's keywords (always at least one). Keywords are the point's words
// longer than three characters, minus stop words.
func Grade(step *lesson.ShortAnswer, answer string) GradeResult {
	result := GradeResult{Total: step.TotalMarks}
	if result.Total == 0 {
		for _, kp := range step.KeyPoints {
			result.Total += kp.Marks
		}
	}

	lowered := strings.ToLower(answer)
	for _, kp := range step.KeyPoints {
		matched := matchPoint(kp.Point, lowered)
		result.Points = append(result.Points, PointResult{Point: kp, Matched: matched})
		if matched {
			result.Score += kp.Marks
		}
	}
	return result
}

func matchPoint(point, loweredAnswer string) bool {
	keywords := extractKeywords(point)
	if len(keywords) == 0 {
		return false
	}

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(loweredAnswer, kw) {
			hits++
		}
	}
	threshold := int(math.Ceil(0.4 * float64(len(keywords))))
	if threshold < 1 {
		threshold = 1
	}
	return hits >= threshold
}

func extractKeywords(point string) []string {
	fields := strings.FieldsFunc(strings.ToLower(point), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == ';'
	})
	var keywords []string
	for _, f := range fields {
		if len(f) <= 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		keywords = append(keywords, f)
	}
	return keywords
}

// ShortAnswer collects a typed answer, grades it against the key points,
// and reveals the model answer. The learner may also skip straight to the
// reveal without being scored.
type ShortAnswer struct {
	completion
	step     *lesson.ShortAnswer
	answer   string
	result   *GradeResult
	revealed bool
}

// NewShortAnswer creates the short-answer player.
func NewShortAnswer(step *lesson.ShortAnswer, onComplete func()) *ShortAnswer {
	return &ShortAnswer{completion: completion{fn: onComplete}, step: step}
}

// Step returns the underlying step.
func (p *ShortAnswer) Step() *lesson.ShortAnswer { return p.step }

// Submit grades the answer and reveals the model answer. Empty answers and
// repeat submissions are ignored.
func (p *ShortAnswer) Submit(answer string) *GradeResult {
	if p.revealed || strings.TrimSpace(answer) == "" {
		return p.result
	}
	p.answer = answer
	r := Grade(p.step, answer)
	p.result = &r
	p.revealed = true
	return p.result
}

// Skip reveals the model answer without grading.
func (p *ShortAnswer) Skip() {
	p.revealed = true
}

// Revealed reports whether the model answer is showing.
func (p *ShortAnswer) Revealed() bool { return p.revealed }

// Result returns the grading outcome, or nil if the learner skipped.
func (p *ShortAnswer) Result() *GradeResult { return p.result }

// Continue finishes the step; only legal after the reveal.
func (p *ShortAnswer) Continue() {
	if !p.revealed {
		return
	}
	p.fire()
}
