package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LangChainClient implements Client on any OpenAI-compatible endpoint.
type LangChainClient struct {
	llm llms.Model
}

type LangChainConfig struct {
	Model   string // e.g. "gpt-4.1", "llama-3.1-70b-versatile"
	BaseURL string // optional: for Groq or other OpenAI-compatible APIs
	APIKey  string // if not set, it'll fall back to env
}

func NewLangChainClient(cfg LangChainConfig) (*LangChainClient, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain openai client: %w", err)
	}

	return &LangChainClient{llm: llm}, nil
}

func chatMessages(systemMessage, prompt string) []llms.MessageContent {
	msgs := make([]llms.MessageContent, 0, 2)
	if systemMessage != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, systemMessage))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, prompt))
	return msgs
}

func (c *LangChainClient) Generate(ctx context.Context, systemMessage string, prompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, chatMessages(systemMessage, prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from LLM")
	}
	return resp.Choices[0].Content, nil
}

func (c *LangChainClient) GenerateStream(ctx context.Context, systemMessage string, prompt string, onChunk func(chunk string) error) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, chatMessages(systemMessage, prompt),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if onChunk == nil || len(chunk) == 0 {
				return nil
			}
			return onChunk(string(chunk))
		}),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from LLM")
	}
	return resp.Choices[0].Content, nil
}

// GenerateTimeline asks for JSON mode; OpenAI-compatible endpoints have no
// server-side schema enforcement, so the schema is restated in the prompt
// and the caller validates the parse.
func (c *LangChainClient) GenerateTimeline(ctx context.Context, systemMessage string, prompt string) (string, error) {
	constrained := prompt + "\n\nRespond ONLY with JSON of the form " +
		`{"data": [{"category": string, "items": [{"date": string, "label": string}]}]}`
	resp, err := c.llm.GenerateContent(ctx, chatMessages(systemMessage, constrained), llms.WithJSONMode())
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from LLM")
	}
	return resp.Choices[0].Content, nil
}
