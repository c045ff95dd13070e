// Package generator turns extracted lecture text into a structured lesson
// through a single LLM completion. Generation is billed work: there is no
// automatic retry, and each Generator instance performs at most one call.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/lectern/internal/lesson"
	"github.com/felixgeelhaar/lectern/internal/library"
	"github.com/felixgeelhaar/lectern/internal/llm"
)

var (
	// ErrAlreadyGenerated is returned when a Generator is reused. Callers
	// wanting another attempt must construct a fresh Generator, which keeps
	// repeat billing an explicit decision.
	ErrAlreadyGenerated = errors.New("generator: lesson already generated, create a new generator to retry")

	// ErrEmptySource is returned when there is no lecture text to teach from.
	ErrEmptySource = errors.New("generator: source text is empty")
)

const defaultMaxTokens = 16384

// Rates are the per-million-token prices used for cost estimates, in USD.
type Rates struct {
	InputPer1M  float64
	OutputPer1M float64
}

// DefaultRates matches gpt-4o pricing.
var DefaultRates = Rates{InputPer1M: 2.50, OutputPer1M: 10.00}

// Generator produces and persists one lesson.
type Generator struct {
	provider llm.Provider
	library  *library.Library
	logger   *slog.Logger
	model    string
	rates    Rates

	mu   sync.Mutex
	used bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithRates overrides the cost-estimate pricing.
func WithRates(r Rates) Option {
	return func(g *Generator) { g.rates = r }
}

// New creates a single-use Generator.
func New(provider llm.Provider, lib *library.Library, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{
		provider: provider,
		library:  lib,
		logger:   logger,
		rates:    DefaultRates,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the one completion call, validates and decodes the result,
// persists it, and returns the saved lesson. Any failure after the call is
// terminal for this Generator; it never re-spends the tokens.
func (g *Generator) Generate(ctx context.Context, sourceText, filename string) (*library.SavedLesson, error) {
	g.mu.Lock()
	if g.used {
		g.mu.Unlock()
		return nil, ErrAlreadyGenerated
	}
	g.used = true
	g.mu.Unlock()

	if sourceText == "" {
		return nil, ErrEmptySource
	}

	resp, err := g.provider.Generate(ctx, &llm.Request{
		Model:     g.model,
		System:    systemInstruction,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: buildPrompt(sourceText)}},
		MaxTokens: defaultMaxTokens,
		JSONOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate lesson: %w", err)
	}

	payload := []byte(resp.Content)
	if err := validateLessonJSON(payload); err != nil {
		return nil, fmt.Errorf("generate lesson: %w", err)
	}

	var les lesson.Lesson
	if err := json.Unmarshal(payload, &les); err != nil {
		return nil, fmt.Errorf("generate lesson: decode: %w", err)
	}

	for _, u := range les.Unsupported() {
		g.logger.Warn("step type not supported, will render as skippable",
			"rawType", u.RawType, "stepID", u.ID, "title", u.Title)
	}

	cost := g.estimateCost(resp.Usage)

	id, err := g.library.SaveLesson(les, filename, cost, sourceText)
	if err != nil {
		return nil, fmt.Errorf("save lesson: %w", err)
	}

	saved, err := g.library.Lesson(id)
	if err != nil {
		return nil, fmt.Errorf("load saved lesson: %w", err)
	}

	g.logger.Info("lesson generated",
		"id", id, "title", les.Title, "steps", len(les.Steps), "cost", cost)
	return saved, nil
}

func (g *Generator) estimateCost(usage *llm.Usage) *float64 {
	if usage == nil {
		return nil
	}
	cost := float64(usage.InputTokens)/1_000_000*g.rates.InputPer1M +
		float64(usage.OutputTokens)/1_000_000*g.rates.OutputPer1M
	return &cost
}
