package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer defines the AI summary interface used by the synopsis builder.
type Summarizer interface {
	// Summarize creates a very short, casual summary of a post and its
	// discussion. Callers must enforce their own length bound on the result.
	Summarize(ctx context.Context, title, corpus string) (string, error)
}

// OpenAIClient implements Summarizer using OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) Summarize(ctx context.Context, title, corpus string) (string, error) {
	// set timeout to 120s for a single synopsis
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	// Trim inputs to keep tokens reasonable
	corpus = strings.TrimSpace(corpus)
	if corpus == "" {
		corpus = title
	}
	if len([]rune(corpus)) > 4000 {
		corpus = string([]rune(corpus)[:4000])
	}

	sys := "You are a helpful assistant that writes very concise summaries."
	user := fmt.Sprintf(`Write a very brief 1-2 sentence summary (max 250 characters) of this post and its comments.
Add 1-2 relevant emojis at the end. Keep it casual and engaging.
Don't mention reddit or subreddits.

Title: %s

Comments: %s`, title, corpus)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// Cap token count to keep the response short.
		MaxTokens:   100,
		Temperature: 0.4,
	})
	if err != nil {
		slog.Error("openai: summarize error", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
