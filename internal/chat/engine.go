package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"backstage-brain-backend/internal/corpus"
	"backstage-brain-backend/internal/llm"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/prompts"
	"backstage-brain-backend/internal/repo"

	"github.com/google/uuid"
)

// ErrEmptyMessage rejects blank questions before any side effect.
var ErrEmptyMessage = errors.New("message is required")

// CorpusLoader yields an event's document corpus.
type CorpusLoader interface {
	Load(ctx context.Context, eventID uuid.UUID) (corpus.Corpus, error)
}

// Turn is the outcome of one chat exchange. AssistantMessage is nil when
// the fixed no-documents fallback was returned without invoking the model.
type Turn struct {
	UserMessage      *models.ChatMessage `json:"userMessage"`
	AssistantMessage *models.ChatMessage `json:"assistantMessage,omitempty"`
	Response         string              `json:"response"`
}

// Engine grounds chat answers in an event's document corpus.
type Engine struct {
	corpus CorpusLoader
	chats  repo.ChatRepoInterface
	model  llm.Client
}

func NewEngine(loader CorpusLoader, chats repo.ChatRepoInterface, model llm.Client) *Engine {
	return &Engine{corpus: loader, chats: chats, model: model}
}

func buildPrompt(context, question string) string {
	return fmt.Sprintf("EVENT CONTEXT:\n%s\n\nUSER QUESTION:\n%s", context, question)
}

// Answer runs one grounded chat turn: persist the user message, invoke the
// model against the assembled corpus, persist and return the assistant
// message. An empty corpus short-circuits to the fixed fallback text
// without calling the model.
func (e *Engine) Answer(ctx context.Context, userID, eventID uuid.UUID, question string) (*Turn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyMessage
	}

	docs, err := e.corpus.Load(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	userMsg := e.persistMessage(userID, eventID, models.MessageRoleUser, question, docs)

	if docs.Empty() {
		return &Turn{UserMessage: userMsg, Response: prompts.NoDocumentsFallback}, nil
	}

	answer, err := e.model.Generate(ctx, prompts.ChatSystemInstruction, buildPrompt(docs.Assemble(), question))
	if err != nil {
		// The user message stays persisted with no matching reply; that
		// gap is visible to the caller as an error, never papered over
		// with a fabricated assistant message.
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	assistantMsg := e.persistMessage(userID, eventID, models.MessageRoleAssistant, answer, docs)

	return &Turn{UserMessage: userMsg, AssistantMessage: assistantMsg, Response: answer}, nil
}

// persistMessage writes one chat message tagged with the corpus's first
// document. Persistence is best-effort: a write failure is logged and the
// turn continues, so a model answer is never lost to a storage error.
func (e *Engine) persistMessage(userID, eventID uuid.UUID, role models.MessageRole, content string, docs corpus.Corpus) *models.ChatMessage {
	msg := &models.ChatMessage{
		UUID:      uuid.New(),
		UserUUID:  userID,
		EventUUID: eventID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if first, ok := docs.First(); ok {
		id := first.ID
		msg.SourceFileUUID = &id
		msg.SourceDocumentName = first.Name
	}
	if err := e.chats.CreateMessage(msg); err != nil {
		log.Printf("Error saving %s message: %v", role, err)
	}
	return msg
}
