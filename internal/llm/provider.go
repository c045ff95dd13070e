package llm

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrEmptyResponse is returned when the API produced no content.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("missing API key")
)

// Provider defines the interface for LLM chat-completion providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate performs a completion request
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	// Transcribe sends an audio stream to the transcription endpoint and
	// returns the recognized text.
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Request represents an LLM request
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	System      string // System prompt
	JSONOnly    bool   // request a JSON-object response
}

// Message represents a chat message
type Message struct {
	Role    Role
	Content string
}

// Role represents the role of a message sender
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response represents an LLM response
type Response struct {
	Content      string
	FinishReason string
	Usage        *Usage // nil when the API omitted usage metadata
}

// Usage tracks token usage
type Usage struct {
	InputTokens  int
	OutputTokens int
}
