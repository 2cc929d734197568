package corpus

import (
	"context"
	"fmt"
	"log"
	"strings"

	"backstage-brain-backend/internal/extract"
	"backstage-brain-backend/internal/repo"
	"backstage-brain-backend/internal/storage"

	"github.com/google/uuid"
)

// Document is one successfully read event document.
type Document struct {
	ID   uuid.UUID
	Name string
	Text string
}

// Corpus is the best-effort union of an event's readable documents, in
// upload order. TotalFiles counts every document the event has, readable
// or not.
type Corpus struct {
	Documents  []Document
	TotalFiles int
}

// Empty reports whether there is no usable context at all.
func (c Corpus) Empty() bool {
	return len(c.Documents) == 0
}

// First returns the first readable document. It is attached to chat turns
// as a provenance hint, not a claim about where the answer came from.
func (c Corpus) First() (Document, bool) {
	if len(c.Documents) == 0 {
		return Document{}, false
	}
	return c.Documents[0], true
}

// Assemble concatenates every document's text, each segment prefixed with a
// delimiter naming its source. No resorting, no dedup, no truncation.
func (c Corpus) Assemble() string {
	var sb strings.Builder
	for _, doc := range c.Documents {
		sb.WriteString(fmt.Sprintf("\n\n--- Document: %s ---\n%s", doc.Name, doc.Text))
	}
	return sb.String()
}

// Loader builds the corpus for an event from file metadata, the cached
// extracted text, and (as a fallback) the raw blobs.
type Loader struct {
	files repo.FileRepoInterface
	store storage.ObjectStore
}

func NewLoader(files repo.FileRepoInterface, store storage.ObjectStore) *Loader {
	return &Loader{files: files, store: store}
}

// Load gathers the event's readable documents. A document whose text cannot
// be obtained is skipped with a warning; only the listing query itself can
// fail the load.
func (l *Loader) Load(ctx context.Context, eventID uuid.UUID) (Corpus, error) {
	files, err := l.files.ListInUploadOrder(eventID)
	if err != nil {
		return Corpus{}, fmt.Errorf("list event files: %w", err)
	}

	corpus := Corpus{TotalFiles: len(files)}
	for _, f := range files {
		text := f.ExtractedText
		if text == "" {
			// Legacy document uploaded before extraction was cached:
			// fetch the blob and extract live.
			blob, err := l.store.Get(ctx, f.FilePath)
			if err != nil {
				log.Printf("Warning: failed to download %s: %v", f.FileName, err)
				continue
			}
			text, err = extract.Text(f.FileType, blob)
			if err != nil {
				log.Printf("Warning: failed to extract text from %s: %v", f.FileName, err)
				continue
			}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		corpus.Documents = append(corpus.Documents, Document{
			ID:   f.UUID,
			Name: f.FileName,
			Text: text,
		})
	}
	return corpus, nil
}
