package provider

import (
	"fmt"

	"github.com/jfellows/tend/internal/config"
)

// New builds the provider named in the config. Unknown names are rejected
// here rather than at first use.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Ollama.BaseURL, cfg.Ollama.Model), nil
	case "openai":
		return NewOpenAI("", cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "gemini":
		return NewGemini("", cfg.Gemini.APIKey, cfg.Gemini.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected ollama, openai, or gemini)", cfg.Provider)
	}
}
