package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/chat"
	"github.com/felixgeelhaar/lectern/internal/llm"
)

// cmdChat answers questions about a lesson's lecture material
func cmdChat(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("lesson ID required (see 'lectern list')")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	lectureText, err := a.lib.LectureText(args[0])
	if err != nil {
		return err
	}
	if lectureText == "" {
		return fmt.Errorf("this lesson has no stored lecture text to chat about")
	}

	provider, err := a.openaiProvider()
	if err != nil {
		return err
	}

	// Chat reads are cheap and safe to retry, unlike generation.
	resilient := llm.NewResilientProvider(provider, llm.ResilientConfig{
		EnableCircuitBreaker: true,
		EnableRetry:          true,
		EnableRateLimit:      true,
		RatePerSecond:        2,
		Logger:               a.logger,
	})
	defer resilient.Close()

	assistant := chat.New(resilient, lectureText, a.logger,
		chat.WithModel(a.cfg.LLM.ChatModel),
		chat.WithTranscriber(provider))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Ask questions about the lecture material. Type 'exit' to leave.")
	fmt.Println("Use '/voice <recording.wav>' to ask with an audio file.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nyou > ")
		if !scanner.Scan() {
			return nil
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		if path, ok := strings.CutPrefix(question, "/voice "); ok {
			if err := askVoice(ctx, assistant, strings.TrimSpace(path)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		reply, err := assistant.Ask(ctx, question)
		if errors.Is(err, chat.ErrEmptyQuestion) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n", reply)
	}
}

func askVoice(ctx context.Context, assistant *chat.Assistant, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	transcript, reply, err := assistant.AskVoice(ctx, filepath.Base(path), f)
	if errors.Is(err, chat.ErrEmptyQuestion) {
		fmt.Println("Nothing heard in the recording.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n(heard: %s)\n\n%s\n", transcript, reply)
	return nil
}
