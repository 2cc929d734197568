package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient implements Client via the Google AI API.
type GeminiClient struct {
	client  *genai.Client
	modelID string

	Temperature float32
	MaxTokens   int32
}

func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	modelID := os.Getenv("GEMINI_MODEL_ID")

	if apiKey == "" || modelID == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY and GEMINI_MODEL_ID must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &GeminiClient{
		client:      client,
		modelID:     modelID,
		Temperature: 0.2,
		MaxTokens:   2048,
	}, nil
}

func (g *GeminiClient) config(systemMessage string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     &g.Temperature,
		MaxOutputTokens: g.MaxTokens,
	}
	if systemMessage != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemMessage}},
		}
	}
	return cfg
}

func promptContents(prompt string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}

func (g *GeminiClient) Generate(ctx context.Context, systemMessage string, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.modelID, promptContents(prompt), g.config(systemMessage))
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return collectText(resp), nil
}

func (g *GeminiClient) GenerateStream(ctx context.Context, systemMessage string, prompt string, onChunk func(chunk string) error) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	var sb strings.Builder
	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.modelID, promptContents(prompt), g.config(systemMessage)) {
		if err != nil {
			return "", fmt.Errorf("gemini GenerateContentStream: %w", err)
		}
		chunk := collectText(resp)
		if chunk == "" {
			continue
		}
		sb.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return "", err
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}
	return sb.String(), nil
}

// timelineSchema constrains timeline extraction output.
var timelineSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"data": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {
						Type:        genai.TypeString,
						Description: "Group the entry belongs to (e.g. Main Stage, General)",
					},
					"items": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"date": {
									Type:        genai.TypeString,
									Description: "Readable format, e.g. 14:00 or 30 Nov 14:00",
								},
								"label": {
									Type:        genai.TypeString,
									Description: "Name or short description of the entry",
								},
							},
							Required: []string{"date", "label"},
						},
					},
				},
				Required: []string{"category", "items"},
			},
		},
	},
	Required: []string{"data"},
}

func (g *GeminiClient) GenerateTimeline(ctx context.Context, systemMessage string, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	cfg := g.config(systemMessage)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = timelineSchema

	resp, err := g.client.Models.GenerateContent(ctx, g.modelID, promptContents(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return collectText(resp), nil
}
