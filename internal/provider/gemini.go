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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGemini(baseURL, apiKey, model string) *GeminiProvider {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

func (g *GeminiProvider) ModelInfo() ModelInfo {
	return ModelInfo{Provider: "gemini", Model: g.model}
}

func (g *GeminiProvider) Init(ctx context.Context) error {
	if g.apiKey == "" {
		return fmt.Errorf("%w: gemini: api key not set", ErrUnavailable)
	}

	url := fmt.Sprintf("%s/v1beta/models?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: gemini: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: gemini: %s", ErrUnavailable, parseAPIError(resp.StatusCode, body))
	}
	return nil
}

type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiProvider) Chat(ctx context.Context, msgs []Message, opts Options) (string, error) {
	var contents []geminiContent
	var sysInstruction *geminiContent

	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			// Gemini takes the system prompt out of band.
			sysInstruction = &geminiContent{Parts: []geminiPart{{Text: m.Content}}}
		case RoleAssistant:
			contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}

	reqBody := geminiRequest{
		Contents:          contents,
		SystemInstruction: sysInstruction,
	}
	if opts.Temperature != 0 || opts.MaxTokens != 0 {
		cfg := &geminiGenConfig{MaxOutputTokens: opts.MaxTokens}
		if opts.Temperature != 0 {
			temp := opts.Temperature
			cfg.Temperature = &temp
		}
		reqBody.GenerationConfig = cfg
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %s", ErrUnavailable, friendlyNetError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini: %s", parseAPIError(resp.StatusCode, body))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("gemini: failed to decode response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: response contained no candidates")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
