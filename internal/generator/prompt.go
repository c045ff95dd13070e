package generator

import "fmt"

// maxSourceChars caps how much lecture text goes into the prompt.
const maxSourceChars = 80_000

const systemInstruction = "You are a JSON generator. Output ONLY valid JSON. " +
	"Your goal is to create the most thorough, exhaustive lesson possible. " +
	"Never summarize, always teach in full detail. The lesson MUST have 40+ steps."

const promptTemplate = `
You are an elite university-level curriculum designer. Your job is to create an EXHAUSTIVE, COMPREHENSIVE interactive lesson that covers EVERY SINGLE TOPIC, SUBTOPIC, CONCEPT, DEFINITION, EXAMPLE, AND DETAIL from the lecture material below.

## CRITICAL RULES:
1. DO NOT SKIP ANYTHING. Every paragraph, every concept, every definition, every example in the source text must be covered.
2. The lesson must have MANY steps (aim for 40-60+ steps). A short lesson is a FAILURE.
3. Follow this pattern for EACH major concept:
   - First, an "explanation" step teaching the concept thoroughly
   - Then, a "flashcards" step with ALL key terms from that section (5-10 cards per deck)
   - Then, a "quiz" step testing understanding (4 options each)
   - Optionally, a "matching" step to reinforce connections (4-6 pairs)
   - Optionally, a "fill-in-the-blank" or "short-answer" step for recall practice
4. After covering all individual topics, add a FINAL REVIEW section with:
   - A comprehensive flashcard deck of ALL major terms
   - Multiple challenging quiz questions that test cross-topic understanding
   - A matching exercise connecting concepts from different sections
5. Explanation content should be DETAILED markdown. Use bullet points, bold terms, examples. Do NOT summarize; teach in full depth.
6. Quiz questions should have 4 options, not 2. Make wrong options plausible.
7. Flashcard decks should have at minimum 5 cards each.

## JSON FORMAT:
{
  "title": "Lesson Title",
  "steps": [
    { "id": "1", "type": "explanation", "title": "Section Title", "content": "Detailed markdown explanation..." },
    { "id": "2", "type": "flashcards", "title": "Key Terms", "deck": [{ "front": "Term", "back": "Full definition" }, ...] },
    { "id": "3", "type": "quiz", "title": "Check Understanding", "question": "Question text", "options": ["A", "B", "C", "D"], "correctAnswerIndex": 0, "explanation": "Why this is correct..." },
    { "id": "4", "type": "matching", "title": "Match Concepts", "pairs": [{ "left": "Term", "right": "Definition" }, ...] },
    { "id": "5", "type": "fill-in-the-blank", "title": "Complete the Sentence", "sentence": "A sentence with a ___BLANK___ in it.", "correctAnswer": "word", "options": ["word", "other", "wrong"], "explanation": "Why this fits..." },
    { "id": "6", "type": "short-answer", "title": "Explain It", "question": "Open question", "modelAnswer": "A full model answer.", "keyPoints": [{ "point": "key idea to mention", "marks": 1 }, ...], "totalMarks": 3 }
  ]
}

## FULL LECTURE CONTENT (cover ALL of this):
%s
`

func buildPrompt(sourceText string) string {
	if len(sourceText) > maxSourceChars {
		sourceText = sourceText[:maxSourceChars]
	}
	return fmt.Sprintf(promptTemplate, sourceText)
}
