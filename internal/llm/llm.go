package llm

import (
	"context"
)

// Client is the generative model behind the chat and timeline engines.
type Client interface {
	// Generate returns the full answer for a grounded prompt.
	Generate(ctx context.Context, systemMessage string, prompt string) (string, error)

	// GenerateStream delivers the answer incrementally through onChunk and
	// returns the accumulated full text.
	GenerateStream(ctx context.Context, systemMessage string, prompt string, onChunk func(chunk string) error) (string, error)

	// GenerateTimeline returns raw JSON constrained to the timeline schema:
	// {"data": [{"category": string, "items": [{"date": string, "label": string}]}]}
	GenerateTimeline(ctx context.Context, systemMessage string, prompt string) (string, error)
}
