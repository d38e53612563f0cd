// Package llm wraps the chat-completion model used to triage new issues.
package llm

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("model returned no choices")

// Client sends one system+user exchange and returns the model's text reply.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(client *openai.Client, model string) *OpenAIClient {
	return &OpenAIClient{client: client, model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// a literal 0 is omitted from the request body
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Unavailable is used when no model is configured; every call fails so callers take
// their fallback path.
type Unavailable struct{}

func (Unavailable) Complete(ctx context.Context, system, user string) (string, error) {
	return "", errors.New("language model is not configured")
}
