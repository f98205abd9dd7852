package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"sales-assistant/internal/llm"
	"sales-assistant/internal/shared/telemetry"
)

const defaultMaxTokens = 1000

// Client implements llm.Analyzer using OpenAI vision chat completions.
type Client struct {
	api       *goopenai.Client
	model     string
	maxTokens int
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, maxTokens int, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return NewClientWithConfig(cfg, model, maxTokens)
}

// NewClientWithConfig builds a client from an explicit go-openai config.
func NewClientWithConfig(cfg goopenai.ClientConfig, model string, maxTokens int) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		api:       goopenai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// AnalyzeMenuImage sends the image as a data URL and parses the menu items.
// Output that is not valid JSON gets one repair round-trip.
func (c *Client) AnalyzeMenuImage(ctx context.Context, image []byte, mimeType string) ([]llm.MenuItem, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("menu image is empty")
	}

	content, err := c.complete(ctx, visionMessages(image, mimeType))
	if err != nil {
		return nil, err
	}
	items, err := llm.ParseMenuItems(content)
	if err == nil {
		return items, nil
	}
	if !errors.Is(err, llm.ErrUnparseable) {
		return nil, err
	}

	telemetry.Warn("llm.fix_json", map[string]any{"model": c.model, "err": err.Error()})
	content, err = c.complete(ctx, fixMessages(content))
	if err != nil {
		return nil, err
	}
	return llm.ParseMenuItems(content)
}

func (c *Client) complete(ctx context.Context, messages []goopenai.ChatCompletionMessage) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if isReasoningModel(c.model) {
		req.MaxCompletionTokens = c.maxTokens
	} else {
		req.MaxTokens = c.maxTokens
		// temperature 0 is dropped by omitempty
		req.Temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai error: %s (%v)", apiErr.Message, apiErr.Type)
		}
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	logUsage(c.model, resp.Usage)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	return content, nil
}

func visionMessages(image []byte, mimeType string) []goopenai.ChatCompletionMessage {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	return []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: llm.SystemPrompt()},
		{
			Role: goopenai.ChatMessageRoleUser,
			MultiContent: []goopenai.ChatMessagePart{
				{Type: goopenai.ChatMessagePartTypeText, Text: llm.UserPrompt()},
				{
					Type: goopenai.ChatMessagePartTypeImageURL,
					ImageURL: &goopenai.ChatMessageImageURL{
						URL:    dataURL,
						Detail: goopenai.ImageURLDetailAuto,
					},
				},
			},
		},
	}
}

func fixMessages(raw string) []goopenai.ChatCompletionMessage {
	return []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleSystem, Content: "You are a JSON repair tool. Return only valid JSON."},
		{Role: goopenai.ChatMessageRoleUser, Content: llm.FixJSONPrompt(raw)},
	}
}

func logUsage(model string, usage goopenai.Usage) {
	telemetry.Info("llm.response", map[string]any{
		"model":             model,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
	})
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

var _ llm.Analyzer = (*Client)(nil)
