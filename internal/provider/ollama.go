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

type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllama(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (o *OllamaProvider) ModelInfo() ModelInfo {
	return ModelInfo{Provider: "ollama", Model: o.model, BaseURL: o.baseURL, Local: true}
}

// Init checks the local server is up by listing installed models.
func (o *OllamaProvider) Init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ollama: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: ollama: %s", ErrUnavailable, parseAPIError(resp.StatusCode, body))
	}
	return nil
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  map[string]any  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (o *OllamaProvider) Chat(ctx context.Context, msgs []Message, opts Options) (string, error) {
	reqBody := ollamaRequest{
		Model:    o.model,
		Messages: make([]ollamaMessage, len(msgs)),
		Stream:   false,
	}
	for i, m := range msgs {
		reqBody.Messages[i] = ollamaMessage{Role: string(m.Role), Content: m.Content}
	}
	if opts.Temperature != 0 || opts.MaxTokens != 0 {
		reqBody.Options = map[string]any{}
		if opts.Temperature != 0 {
			reqBody.Options["temperature"] = opts.Temperature
		}
		if opts.MaxTokens != 0 {
			reqBody.Options["num_predict"] = opts.MaxTokens
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: ollama: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama: %s", parseAPIError(resp.StatusCode, body))
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ollama: failed to decode response: %w", err)
	}

	return result.Message.Content, nil
}
