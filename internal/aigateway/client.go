package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uglybaby/memo-engine/pkg/config"
)

// Client handles requests to the external AI gateway
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

// Message is a single chat message in a completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a chat-completions request
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// CompletionResponse represents the gateway response
type CompletionResponse struct {
	Choices []Choice       `json:"choices"`
	Error   *gatewayError  `json:"error,omitempty"`
}

// Choice is a single completion choice
type Choice struct {
	Message Message `json:"message"`
}

type gatewayError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewClient creates a new gateway client from config
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // memo generation prompts run long
		},
		endpoint: cfg.AIGatewayURL,
		apiKey:   cfg.AIGatewayKey,
		model:    cfg.AIGatewayModel,
	}
}

// Complete sends a system+user prompt pair and returns the raw choice content
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	request := CompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("gateway rate limited: %s", string(respBody))
	}
	if resp.StatusCode == http.StatusPaymentRequired {
		return "", fmt.Errorf("gateway credits exhausted: %s", string(respBody))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}

	var completion CompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("gateway error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from gateway")
	}

	return completion.Choices[0].Message.Content, nil
}

// CompleteJSON sends a prompt pair and unmarshals the JSON payload in the
// choice content into out, stripping markdown code fences first.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, out interface{}) error {
	content, err := c.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return err
	}

	cleaned := StripCodeFences(content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}

	return nil
}

// StripCodeFences removes markdown code fences the model wraps around JSON
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	return trimmed
}

// Health checks if the gateway is reachable and credentials are accepted
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Complete(ctx, "You are a health check.", "Reply with the single word ok.")
	if err != nil {
		return fmt.Errorf("gateway health check failed: %w", err)
	}
	return nil
}

// Close cleans up client resources
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
