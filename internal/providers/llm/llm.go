package llm

import (
	"context"
	"errors"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string // user|assistant
	Content string
}

type Options struct {
	Temperature float64
	MaxTokens   int
}

// Provider is a chat-completion backend.
type Provider interface {
	// Name is used in upstream error messages, e.g. "Groq".
	Name() string
	Complete(ctx context.Context, system string, msgs []Message, opts Options) (string, error)
	Close() error
}

// Embedder turns text into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

var ErrEmptyCompletion = errors.New("completion returned no choices")
