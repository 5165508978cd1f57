// Package llm wraps the OpenAI-compatible chat-completion backend used to
// generate documentation text.
package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a technical documentation writer. You write precise, idiomatic " +
	"documentation comments for source code and output nothing but the comment."

// sharedPoolBaseURL is the rate-limited vendor proxy used when no personal
// API key is configured.
const sharedPoolBaseURL = "https://pool.docwriter.dev/v1"

// sharedPoolToken authenticates against the shared pool proxy. The proxy
// enforces its own per-client limits on top of the local daily quota.
const sharedPoolToken = "docwriter-shared-pool"

// Options configures a Client. Zero values fall back to the shared pool and
// the default model.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client is the text-generation collaborator.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a generation client. A missing API key routes the client
// through the shared pool endpoint.
func NewClient(opts Options) *Client {
	apiKey := opts.APIKey
	baseURL := opts.BaseURL
	if apiKey == "" {
		apiKey = sharedPoolToken
		if baseURL == "" {
			baseURL = sharedPoolBaseURL
		}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends the prompt and returns the raw generated text. Failures are
// classified into the auth/quota/other taxonomy.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}
