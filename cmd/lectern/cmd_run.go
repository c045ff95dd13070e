package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/player"
	"github.com/felixgeelhaar/lectern/internal/runner"
)

// cmdRun studies a lesson interactively, resuming from saved progress
func cmdRun(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("lesson ID required (see 'lectern list')")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	saved, err := a.lib.Lesson(args[0])
	if err != nil {
		return err
	}

	session := &runSession{
		app:   a,
		id:    saved.ID,
		input: bufio.NewScanner(os.Stdin),
	}

	session.runner = runner.New(saved.Lesson,
		runner.WithInitialStep(saved.CurrentStepIndex),
		runner.WithProgressFunc(func(index int) {
			if err := a.lib.UpdateProgress(saved.ID, index); err != nil {
				a.logger.Warn("persist progress", "error", err)
			}
		}),
		runner.WithCompleteFunc(func() {
			if err := a.lib.MarkComplete(saved.ID); err != nil {
				a.logger.Warn("mark complete", "error", err)
			}
		}),
	)

	fmt.Printf("\n=== %s ===\n", saved.Lesson.Title)
	if saved.CurrentStepIndex > 0 && !saved.IsComplete {
		fmt.Printf("Resuming at step %d of %d\n", saved.CurrentStepIndex+1, session.runner.Len())
	}

	return session.loop()
}

type runSession struct {
	app    *app
	id     string
	runner *runner.Runner
	input  *bufio.Scanner
	quit   bool
}

func (s *runSession) loop() error {
	for !s.quit && !s.runner.Done() {
		step := s.runner.Step()
		if step == nil {
			s.runner.Advance()
			continue
		}
		fmt.Printf("\n--- Step %d/%d: %s ---\n", s.runner.Index()+1, s.runner.Len(), step.StepTitle())

		advanced := false
		p := player.ForStep(step, func() { advanced = true }, nil)
		s.drive(p)
		if advanced {
			s.runner.Advance()
		}
	}

	if s.runner.Done() {
		fmt.Println("\nLesson complete! Nice work.")
	} else {
		fmt.Println("\nProgress saved. Pick up where you left off with 'lectern run'.")
	}
	return nil
}

// drive runs one player until it completes or the learner backs out.
func (s *runSession) drive(p player.Player) {
	switch pl := p.(type) {
	case *player.Explanation:
		s.driveExplanation(pl)
	case *player.Flashcards:
		s.driveFlashcards(pl)
	case *player.Quiz:
		s.driveQuiz(pl)
	case *player.Matching:
		s.driveMatching(pl)
	case *player.FillInTheBlank:
		s.driveFillInTheBlank(pl)
	case *player.ShortAnswer:
		s.driveShortAnswer(pl)
	case *player.Unsupported:
		s.driveUnsupported(pl)
	}
}

// prompt reads one line; it handles the global back/quit keys and reports
// whether the caller should keep driving the current step.
func (s *runSession) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !s.input.Scan() {
		s.quit = true
		return "", false
	}
	line := strings.TrimSpace(s.input.Text())

	switch strings.ToLower(line) {
	case "q", "quit":
		s.quit = true
		return "", false
	case "b", "back":
		s.runner.Retreat()
		return "", false
	}
	return line, true
}

func (s *runSession) driveExplanation(p *player.Explanation) {
	fmt.Println()
	fmt.Println(p.Step().Content)
	for !p.Completed() && !s.quit {
		if _, ok := s.prompt("\n[enter] continue  [b] back  [q] quit > "); !ok {
			return
		}
		p.Continue()
	}
}

func (s *runSession) driveFlashcards(p *player.Flashcards) {
	if p.Step() != nil && len(p.Step().Deck) == 0 {
		p.Done()
		return
	}

	for !p.Completed() && !s.quit {
		card := p.Current()
		if card == nil {
			p.Done()
			return
		}

		fmt.Printf("\n(%d cards left)\n", p.Remaining())
		fmt.Printf("Front: %s\n", card.Front)
		if p.Flipped() {
			fmt.Printf("Back:  %s\n", card.Back)
			line, ok := s.prompt("[1] again  [2] done  [b] back  [q] quit > ")
			if !ok {
				return
			}
			switch line {
			case "1":
				p.Again()
			case "2":
				p.Done()
			}
		} else {
			if _, ok := s.prompt("[enter] flip  [b] back  [q] quit > "); !ok {
				return
			}
			p.Flip()
		}
	}
}

func (s *runSession) driveQuiz(p *player.Quiz) {
	step := p.Step()
	fmt.Printf("\n%s\n\n", step.Question)
	for i, opt := range step.Options {
		fmt.Printf("  [%d] %s\n", i+1, opt)
	}

	for !p.Submitted() && !s.quit {
		line, ok := s.prompt("\nAnswer number > ")
		if !ok {
			return
		}
		if n, err := strconv.Atoi(line); err == nil {
			p.Select(n - 1)
			p.Submit()
		}
	}
	if s.quit {
		return
	}

	if p.Correct() {
		fmt.Println("\nCorrect!")
	} else {
		fmt.Printf("\nNot quite. The answer was: %s\n", step.Options[step.CorrectAnswerIndex])
	}
	if step.Explanation != "" {
		fmt.Println(step.Explanation)
	}

	for !p.Completed() && !s.quit {
		if _, ok := s.prompt("\n[enter] continue  [b] back  [q] quit > "); !ok {
			return
		}
		p.Continue()
	}
}

func (s *runSession) driveMatching(p *player.Matching) {
	if len(p.Tiles()) == 0 {
		p.Select(0)
		return
	}

	for !p.Completed() && !s.quit {
		fmt.Println("\nMatch the pairs:")
		for i, tile := range p.Tiles() {
			if tile.Matched {
				fmt.Printf("  [%d] --- matched ---\n", i+1)
				continue
			}
			marker := " "
			if p.Selected() == i {
				marker = "*"
			}
			fmt.Printf("  [%d]%s %s\n", i+1, marker, tile.Text)
		}

		line, ok := s.prompt("\nTile number > ")
		if !ok {
			return
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		if p.Select(n-1) == player.SelectMismatch {
			fmt.Println("Not a match, try again.")
		}
	}
}

func (s *runSession) driveFillInTheBlank(p *player.FillInTheBlank) {
	step := p.Step()
	parts := p.SentenceParts()
	fmt.Printf("\n%s\n\n", strings.Join(parts, "_____"))
	for i, opt := range p.Options() {
		fmt.Printf("  [%d] %s\n", i+1, opt)
	}

	for !p.Submitted() && !s.quit {
		line, ok := s.prompt("\nAnswer number > ")
		if !ok {
			return
		}
		if n, err := strconv.Atoi(line); err == nil {
			p.Select(n - 1)
			p.Submit()
		}
	}
	if s.quit {
		return
	}

	if p.Correct() {
		fmt.Println("\nCorrect!")
	} else {
		fmt.Printf("\nNot quite. The answer was: %s\n", step.CorrectAnswer)
	}
	if step.Explanation != "" {
		fmt.Println(step.Explanation)
	}

	for !p.Completed() && !s.quit {
		if _, ok := s.prompt("\n[enter] continue  [b] back  [q] quit > "); !ok {
			return
		}
		p.Continue()
	}
}

func (s *runSession) driveShortAnswer(p *player.ShortAnswer) {
	step := p.Step()
	fmt.Printf("\n%s\n", step.Question)

	for !p.Revealed() && !s.quit {
		line, ok := s.prompt("\nYour answer (or [s] to skip) > ")
		if !ok {
			return
		}
		if strings.EqualFold(line, "s") {
			p.Skip()
			break
		}
		if result := p.Submit(line); result != nil {
			fmt.Printf("\nScore: %d/%d\n", result.Score, result.Total)
			for _, pr := range result.Points {
				mark := "✗"
				if pr.Matched {
					mark = "✓"
				}
				fmt.Printf("  %s %s (%d marks)\n", mark, pr.Point.Point, pr.Point.Marks)
			}
		}
	}
	if s.quit {
		return
	}

	fmt.Printf("\nModel answer:\n%s\n", step.ModelAnswer)

	for !p.Completed() && !s.quit {
		if _, ok := s.prompt("\n[enter] continue  [b] back  [q] quit > "); !ok {
			return
		}
		p.Continue()
	}
}

func (s *runSession) driveUnsupported(p *player.Unsupported) {
	fmt.Printf("\nThis step type (%q) isn't supported yet.\n", p.RawType())
	for !p.Completed() && !s.quit {
		if _, ok := s.prompt("[enter] skip  [b] back  [q] quit > "); !ok {
			return
		}
		p.Skip()
	}
}
