package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/extract"
	"github.com/felixgeelhaar/lectern/internal/generator"
)

// cmdGenerate extracts a PDF and generates a lesson from it
func cmdGenerate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("PDF file required (e.g., lectern generate week3.pdf)")
	}
	path := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("Extracting text from %s...\n", path)
	text, err := extract.PDF(path)
	if errors.Is(err, extract.ErrNotPDF) {
		return fmt.Errorf("%s is not a PDF file", path)
	}
	if errors.Is(err, extract.ErrNoText) {
		return fmt.Errorf("no text found in %s (it may be a scanned or image-only document)", path)
	}
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	fmt.Printf("Extracted %d characters\n", len(text))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		err := generateOnce(ctx, a, text, path)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}

		// Each attempt is a fresh, explicit decision; nothing retries
		// behind the user's back.
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		if !askYesNo("Try again? This will make another API call. [y/N] ") {
			return fmt.Errorf("generation aborted")
		}
	}
}

func generateOnce(ctx context.Context, a *app, text, path string) error {
	provider, err := a.openaiProvider()
	if err != nil {
		return err
	}

	gen := generator.New(provider, a.lib, a.logger,
		generator.WithModel(a.cfg.LLM.GenerationModel),
		generator.WithRates(generator.Rates{
			InputPer1M:  a.cfg.LLM.InputCostPer1M,
			OutputPer1M: a.cfg.LLM.OutputCostPer1M,
		}))

	fmt.Println("Generating lesson (this can take a minute)...")
	saved, err := gen.Generate(ctx, text, path)
	if err != nil {
		return err
	}

	fmt.Printf("\nLesson ready: %s\n", saved.Lesson.Title)
	fmt.Printf("  ID:    %s\n", saved.ID)
	fmt.Printf("  Steps: %d\n", len(saved.Lesson.Steps))
	if saved.Cost != nil {
		fmt.Printf("  Cost:  %s\n", formatCost(*saved.Cost))
	}
	fmt.Printf("\nStart studying with: lectern run %s\n", saved.ID)
	return nil
}

func askYesNo(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
