// Package chat answers learner questions grounded in a lesson's stored
// lecture text. Conversation history lives on the Assistant instance only;
// nothing is persisted between sessions.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/lectern/internal/llm"
)

// maxContextChars caps how much lecture text goes into the system prompt.
const maxContextChars = 60_000

const defaultMaxTokens = 1024

const systemPromptTemplate = `You are a helpful study assistant. You ONLY answer questions using the lecture material provided below. If a question is not covered by the lecture material, say "This topic isn't covered in the lecture material." Be concise but thorough. Use markdown formatting when helpful.

## LECTURE MATERIAL:
%s`

// ErrEmptyQuestion is returned for blank input, including an empty voice
// transcript.
var ErrEmptyQuestion = errors.New("chat: question is empty")

// Assistant is a per-session Q&A helper over one lesson's lecture text.
type Assistant struct {
	provider    llm.Provider
	transcriber llm.Transcriber
	logger      *slog.Logger
	model       string
	system      string
	history     []llm.Message
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(a *Assistant) {
		if model != "" {
			a.model = model
		}
	}
}

// WithTranscriber enables voice questions.
func WithTranscriber(t llm.Transcriber) Option {
	return func(a *Assistant) { a.transcriber = t }
}

// New creates an Assistant over the given lecture text.
func New(provider llm.Provider, lectureText string, logger *slog.Logger, opts ...Option) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	if len(lectureText) > maxContextChars {
		lectureText = lectureText[:maxContextChars]
	}
	a := &Assistant{
		provider: provider,
		logger:   logger,
		system:   fmt.Sprintf(systemPromptTemplate, lectureText),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// History returns the conversation so far.
func (a *Assistant) History() []llm.Message { return a.history }

// Ask sends a question with the full conversation history and returns the
// reply. Both sides of the exchange are appended to the history.
func (a *Assistant) Ask(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyQuestion
	}

	messages := make([]llm.Message, 0, len(a.history)+1)
	messages = append(messages, a.history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := a.provider.Generate(ctx, &llm.Request{
		Model:     a.model,
		System:    a.system,
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	a.history = append(a.history,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
	)
	return resp.Content, nil
}

// AskVoice transcribes recorded audio and asks the transcript as a question.
// It returns the transcript alongside the reply.
func (a *Assistant) AskVoice(ctx context.Context, filename string, audio io.Reader) (transcript, reply string, err error) {
	if a.transcriber == nil {
		return "", "", errors.New("chat: no transcriber configured")
	}

	transcript, err = a.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", "", fmt.Errorf("chat: transcribe: %w", err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", "", ErrEmptyQuestion
	}

	a.logger.Debug("voice question transcribed", "chars", len(transcript))
	reply, err = a.Ask(ctx, transcript)
	return transcript, reply, err
}
