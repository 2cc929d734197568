package chat

import (
	"context"
	"fmt"
	"strings"

	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/prompts"

	"github.com/google/uuid"
)

// EnvelopeType discriminates the streamed chat envelopes.
type EnvelopeType string

const (
	EnvelopeUserMessage EnvelopeType = "user_message"
	EnvelopeChunk       EnvelopeType = "chunk"
	EnvelopeDone        EnvelopeType = "done"
	EnvelopeError       EnvelopeType = "error"
)

// Envelope is one frame of the streamed chat response, encoded as
// newline-delimited JSON on the wire.
type Envelope struct {
	Type    EnvelopeType        `json:"type"`
	Message *models.ChatMessage `json:"message,omitempty"`
	Content string              `json:"content,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// AnswerStream runs one chat turn, pushing envelopes through emit: the
// persisted user message first, then model output chunks, then a final
// "done" frame carrying the persisted assistant message so the client ends
// up with a stable identity rather than only streaming fragments. Model
// failures surface as a terminal "error" frame.
func (e *Engine) AnswerStream(ctx context.Context, userID, eventID uuid.UUID, question string, emit func(Envelope) error) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyMessage
	}

	docs, err := e.corpus.Load(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	userMsg := e.persistMessage(userID, eventID, models.MessageRoleUser, question, docs)
	if err := emit(Envelope{Type: EnvelopeUserMessage, Message: userMsg}); err != nil {
		return err
	}

	if docs.Empty() {
		if err := emit(Envelope{Type: EnvelopeChunk, Content: prompts.NoDocumentsFallback}); err != nil {
			return err
		}
		return emit(Envelope{Type: EnvelopeDone, Content: prompts.NoDocumentsFallback})
	}

	answer, err := e.model.GenerateStream(ctx, prompts.ChatSystemInstruction, buildPrompt(docs.Assemble(), question),
		func(chunk string) error {
			return emit(Envelope{Type: EnvelopeChunk, Content: chunk})
		},
	)
	if err != nil {
		// The stream already carries a status code; the failure is
		// delivered in-band as a terminal frame.
		return emit(Envelope{Type: EnvelopeError, Error: "Failed to generate a response"})
	}

	assistantMsg := e.persistMessage(userID, eventID, models.MessageRoleAssistant, answer, docs)
	return emit(Envelope{Type: EnvelopeDone, Message: assistantMsg, Content: answer})
}
