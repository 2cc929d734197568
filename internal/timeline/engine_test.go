package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"backstage-brain-backend/internal/corpus"
	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeLoader struct {
	corpus corpus.Corpus
	err    error
}

func (f *fakeLoader) Load(context.Context, uuid.UUID) (corpus.Corpus, error) {
	return f.corpus, f.err
}

type fakeTimelineRepo struct {
	cache      *models.EventTimeline
	replaceErr error
	replaced   int
}

func (f *fakeTimelineRepo) ReplaceCache(eventID uuid.UUID, timeline datatypes.JSON) (*models.EventTimeline, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	f.replaced++
	f.cache = &models.EventTimeline{
		UUID:      uuid.New(),
		EventUUID: eventID,
		Timeline:  timeline,
		UpdatedAt: time.Now(),
	}
	return f.cache, nil
}

func (f *fakeTimelineRepo) GetCache(uuid.UUID) (*models.EventTimeline, error) {
	if f.cache == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cache, nil
}

func (f *fakeTimelineRepo) CreateEntry(*models.TimelineEntry) error { return nil }
func (f *fakeTimelineRepo) ListEntries(uuid.UUID) ([]models.TimelineEntry, error) {
	return nil, nil
}
func (f *fakeTimelineRepo) CountShowsBetween([]uuid.UUID, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type fakeFileRepo struct {
	count int64
}

func (f *fakeFileRepo) CreateFile(*models.EventFile) error                      { return nil }
func (f *fakeFileRepo) GetByID(uuid.UUID) (*models.EventFile, error)            { return nil, nil }
func (f *fakeFileRepo) ListByEvent(uuid.UUID) ([]models.EventFile, error)       { return nil, nil }
func (f *fakeFileRepo) ListInUploadOrder(uuid.UUID) ([]models.EventFile, error) { return nil, nil }
func (f *fakeFileRepo) DeleteFile(uuid.UUID) error                              { return nil }
func (f *fakeFileRepo) CountByEvent(uuid.UUID) (int64, error)                   { return f.count, nil }
func (f *fakeFileRepo) CountByEvents([]uuid.UUID) (int64, error)                { return f.count, nil }
func (f *fakeFileRepo) LatestUploadTime([]uuid.UUID) (*time.Time, error)        { return nil, nil }
func (f *fakeFileRepo) CountUploadedBetween([]uuid.UUID, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type fakeModel struct {
	timelineJSON string
	err          error
	calls        int
}

func (f *fakeModel) Generate(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeModel) GenerateStream(context.Context, string, string, func(string) error) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeModel) GenerateTimeline(context.Context, string, string) (string, error) {
	f.calls++
	return f.timelineJSON, f.err
}

func scheduleCorpus() corpus.Corpus {
	return corpus.Corpus{
		TotalFiles: 1,
		Documents: []corpus.Document{
			{ID: uuid.New(), Name: "Schedule.txt", Text: "Soundcheck at 16:30, doors at 19:00"},
		},
	}
}

func TestGenerateNoDocuments(t *testing.T) {
	engine := NewEngine(&fakeLoader{}, &fakeTimelineRepo{}, &fakeFileRepo{}, &fakeModel{})

	_, _, err := engine.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestGenerateNoReadableContent(t *testing.T) {
	loader := &fakeLoader{corpus: corpus.Corpus{TotalFiles: 2}}
	model := &fakeModel{}
	engine := NewEngine(loader, &fakeTimelineRepo{}, &fakeFileRepo{}, model)

	_, _, err := engine.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoReadableContent)
	assert.Equal(t, 0, model.calls)
}

func TestGenerateParseFailure(t *testing.T) {
	model := &fakeModel{timelineJSON: "not json at all"}
	repo := &fakeTimelineRepo{}
	engine := NewEngine(&fakeLoader{corpus: scheduleCorpus()}, repo, &fakeFileRepo{count: 1}, model)

	_, _, err := engine.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, 0, repo.replaced)
}

func TestGenerateReplacesCache(t *testing.T) {
	model := &fakeModel{timelineJSON: `{"data":[
		{"category":"Horarios","items":[{"date":"16:30","label":"Soundcheck"}]},
		{"category":"","items":[{"date":"19:00","label":"Doors"}]}
	]}`}
	repo := &fakeTimelineRepo{}
	engine := NewEngine(&fakeLoader{corpus: scheduleCorpus()}, repo, &fakeFileRepo{count: 1}, model)

	eventID := uuid.New()
	categories, row, err := engine.Generate(context.Background(), eventID)
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "Horarios", categories[0].Category)
	assert.Equal(t, "General", categories[1].Category)
	require.Len(t, categories[0].Items, 1)
	assert.Equal(t, "16:30", categories[0].Items[0].Date)
	assert.Equal(t, "Soundcheck", categories[0].Items[0].Label)

	require.NotNil(t, row)
	assert.Equal(t, eventID, row.EventUUID)
	assert.Equal(t, 1, repo.replaced)

	var stored []Category
	require.NoError(t, json.Unmarshal(row.Timeline, &stored))
	assert.Equal(t, categories, stored)
}

func TestGenerateTwiceKeepsSingleCache(t *testing.T) {
	model := &fakeModel{timelineJSON: `{"data":[{"category":"Horarios","items":[]}]}`}
	repo := &fakeTimelineRepo{}
	engine := NewEngine(&fakeLoader{corpus: scheduleCorpus()}, repo, &fakeFileRepo{count: 1}, model)

	eventID := uuid.New()
	_, first, err := engine.Generate(context.Background(), eventID)
	require.NoError(t, err)
	_, second, err := engine.Generate(context.Background(), eventID)
	require.NoError(t, err)

	assert.NotEqual(t, first.UUID, second.UUID)
	assert.Equal(t, 2, repo.replaced)

	cached, err := engine.FetchCached(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, second.UUID, cached.UUID)
}

func TestFetchCachedNoDocuments(t *testing.T) {
	repo := &fakeTimelineRepo{cache: &models.EventTimeline{}}
	engine := NewEngine(&fakeLoader{}, repo, &fakeFileRepo{count: 0}, &fakeModel{})

	_, err := engine.FetchCached(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestFetchCachedNoCache(t *testing.T) {
	engine := NewEngine(&fakeLoader{}, &fakeTimelineRepo{}, &fakeFileRepo{count: 1}, &fakeModel{})

	_, err := engine.FetchCached(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoCache)
}
