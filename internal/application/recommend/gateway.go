package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway failures surfaced to the caller without retry: rate-limit and
// billing conditions belong to the external service, not this system.
var (
	ErrPaymentRequired = errors.New("AI gateway payment required")
	ErrRateLimited     = errors.New("AI gateway rate limited")
	ErrNotConfigured   = errors.New("AI gateway not configured")
)

// Gateway abstracts the chat-completions call for testability.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPGateway talks to an OpenAI-compatible chat-completions endpoint.
type HTTPGateway struct {
	URL    string
	APIKey string
	Model  string
	Client *http.Client
}

const gatewayTimeout = 30 * time.Second

const systemPrompt = "You are an energy investment advisor. Respond ONLY with compact JSON, no prose."

func (g *HTTPGateway) Complete(ctx context.Context, prompt string) (string, error) {
	if g.URL == "" || g.APIKey == "" {
		return "", ErrNotConfigured
	}
	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: gatewayTimeout}
	}

	body := map[string]any{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.URL, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrPaymentRequired
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode >= 300:
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ai gateway http %d: %s", resp.StatusCode, string(b))
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("ai gateway returned no choices")
	}
	return r.Choices[0].Message.Content, nil
}
