// Package llm calls the Gemini generateContent REST API to produce assistant
// replies over a bounded conversation window.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clarity/internal/model"
)

const (
	systemInstruction = "You are an AI Agent developed to help you complete tasks and help you analyze how your AI Skills. " +
		"Provide concise, actionable guidance. Use Markdown formatting with short paragraphs and bullet points. " +
		"Keep responses brief but informative."

	// maxHistoryMessages bounds the context window sent upstream.
	maxHistoryMessages = 20

	defaultBaseURL = "https://generativelanguage.googleapis.com"

	temperature = 0.7
	topP        = 0.9
)

// Client is a Gemini generateContent client.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given model, e.g. "gemini-2.5-flash".
func NewClient(apiKey, modelName string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      modelName,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithBaseURL is NewClient with an endpoint override for tests.
func NewClientWithBaseURL(apiKey, modelName, baseURL string) *Client {
	c := NewClient(apiKey, modelName)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate produces a markdown reply for the conversation so far. The context
// holds a fixed leading instruction plus the most recent messages; assistant
// turns map to the model role, everything else to the user role, and
// empty-content messages are skipped.
func (c *Client) Generate(ctx context.Context, history []model.Message) (string, error) {
	payload := generateRequest{
		Contents:         buildContents(history),
		GenerationConfig: generationConfig{Temperature: temperature, TopP: topP},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, candidate := range parsed.Candidates {
		for _, p := range candidate.Content.Parts {
			text.WriteString(p.Text)
		}
		break
	}
	return strings.TrimSpace(text.String()), nil
}

func buildContents(history []model.Message) []content {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	compiled := []content{{
		Role:  "user",
		Parts: []part{{Text: systemInstruction}},
	}}
	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		compiled = append(compiled, content{Role: role, Parts: []part{{Text: msg.Content}}})
	}
	return compiled
}
