package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backstage-brain-backend/internal/corpus"
	"backstage-brain-backend/internal/llm"
	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/prompts"
	"backstage-brain-backend/internal/repo"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrNoDocuments: the event has no documents at all. Not-found class,
	// distinct from transient failures so clients can render "add
	// documents" instead of "retry".
	ErrNoDocuments = errors.New("no documents found for this event")
	// ErrNoReadableContent: documents exist but none yielded text.
	ErrNoReadableContent = errors.New("could not read content from any of the event files")
	// ErrParse: the model produced JSON that does not match the schema.
	// Never silently converted into an empty timeline.
	ErrParse = errors.New("failed to parse AI response")
	// ErrNoCache: no cached timeline exists for the event.
	ErrNoCache = errors.New("no cached timeline found for this event")
)

// Item is one extracted schedule entry.
type Item struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// Category groups extracted entries.
type Category struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// document is the wire shape the model is constrained to.
type document struct {
	Data []Category `json:"data"`
}

// CorpusLoader yields an event's document corpus.
type CorpusLoader interface {
	Load(ctx context.Context, eventID uuid.UUID) (corpus.Corpus, error)
}

// Engine extracts a categorized schedule from an event's corpus and keeps
// a single cached copy per event.
type Engine struct {
	corpus    CorpusLoader
	timelines repo.TimelineRepoInterface
	files     repo.FileRepoInterface
	model     llm.Client
}

func NewEngine(loader CorpusLoader, timelines repo.TimelineRepoInterface, files repo.FileRepoInterface, model llm.Client) *Engine {
	return &Engine{corpus: loader, timelines: timelines, files: files, model: model}
}

// Generate builds the corpus, runs schema-constrained extraction and
// replaces the event's cached timeline. Concurrent generations are
// last-writer-wins; no guard is taken against a slow generation
// overwriting a newer one.
func (e *Engine) Generate(ctx context.Context, eventID uuid.UUID) ([]Category, *models.EventTimeline, error) {
	docs, err := e.corpus.Load(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}
	if docs.TotalFiles == 0 {
		return nil, nil, ErrNoDocuments
	}
	if docs.Empty() {
		return nil, nil, ErrNoReadableContent
	}

	raw, err := e.model.GenerateTimeline(ctx, prompts.TimelineSystemInstruction, docs.Assemble())
	if err != nil {
		return nil, nil, fmt.Errorf("generate timeline: %w", err)
	}

	var parsed document
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, nil, ErrParse
	}
	for i := range parsed.Data {
		if parsed.Data[i].Category == "" {
			parsed.Data[i].Category = "General"
		}
	}

	payload, err := json.Marshal(parsed.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("encode timeline: %w", err)
	}

	row, err := e.timelines.ReplaceCache(eventID, datatypes.JSON(payload))
	if err != nil {
		return nil, nil, err
	}
	return parsed.Data, row, nil
}

// FetchCached returns the event's cached timeline. An event whose
// documents were all deleted is treated as having no timeline rather than
// serving stale data.
func (e *Engine) FetchCached(ctx context.Context, eventID uuid.UUID) (*models.EventTimeline, error) {
	count, err := e.files.CountByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("count event files: %w", err)
	}
	if count == 0 {
		return nil, ErrNoDocuments
	}

	row, err := e.timelines.GetCache(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoCache
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cached timeline: %w", err)
	}
	return row, nil
}
