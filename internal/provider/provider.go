package provider

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options are per-request generation parameters. Zero values mean provider
// defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
}

type ModelInfo struct {
	Provider string
	Model    string
	BaseURL  string // set for local providers only
	Local    bool
}

// Provider is an external LLM backend. Chat sends the full transcript and
// returns the next assistant message; it performs no retries and no
// fallback between providers.
type Provider interface {
	// Init verifies the backend is reachable and authorized. Failures wrap
	// ErrUnavailable.
	Init(ctx context.Context) error
	Chat(ctx context.Context, msgs []Message, opts Options) (string, error)
	ModelInfo() ModelInfo
}
