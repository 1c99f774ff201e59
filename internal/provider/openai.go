package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type OpenAIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewOpenAI creates a provider against the OpenAI chat completions API. An
// empty baseURL targets api.openai.com; tests override it.
func NewOpenAI(baseURL, apiKey, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

func (o *OpenAIProvider) ModelInfo() ModelInfo {
	return ModelInfo{Provider: "openai", Model: o.model}
}

// Init verifies the API key by listing models.
func (o *OpenAIProvider) Init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: openai: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: openai: %s", ErrUnavailable, parseAPIError(resp.StatusCode, body))
	}
	return nil
}

type oaiRequest struct {
	Model       string       `json:"model"`
	Messages    []oaiMessage `json:"messages"`
	Temperature *float64     `json:"temperature,omitempty"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiResponse struct {
	Choices []struct {
		Message oaiMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAIProvider) Chat(ctx context.Context, msgs []Message, opts Options) (string, error) {
	reqBody := oaiRequest{
		Model:     o.model,
		Messages:  make([]oaiMessage, len(msgs)),
		MaxTokens: opts.MaxTokens,
	}
	for i, m := range msgs {
		reqBody.Messages[i] = oaiMessage{Role: string(m.Role), Content: m.Content}
	}
	if opts.Temperature != 0 {
		temp := opts.Temperature
		reqBody.Temperature = &temp
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai: %s", parseAPIError(resp.StatusCode, body))
	}

	var result oaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices")
	}

	return result.Choices[0].Message.Content, nil
}
