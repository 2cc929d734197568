package corpus

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileRepo struct {
	files   []models.EventFile
	listErr error
}

func (f *fakeFileRepo) CreateFile(*models.EventFile) error                  { return nil }
func (f *fakeFileRepo) GetByID(uuid.UUID) (*models.EventFile, error)        { return nil, nil }
func (f *fakeFileRepo) ListByEvent(uuid.UUID) ([]models.EventFile, error)   { return f.files, nil }
func (f *fakeFileRepo) DeleteFile(uuid.UUID) error                          { return nil }
func (f *fakeFileRepo) CountByEvent(uuid.UUID) (int64, error)               { return int64(len(f.files)), nil }
func (f *fakeFileRepo) CountByEvents([]uuid.UUID) (int64, error)            { return 0, nil }
func (f *fakeFileRepo) LatestUploadTime([]uuid.UUID) (*time.Time, error)    { return nil, nil }
func (f *fakeFileRepo) CountUploadedBetween([]uuid.UUID, time.Time, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeFileRepo) ListInUploadOrder(uuid.UUID) ([]models.EventFile, error) {
	return f.files, f.listErr
}

type fakeStore struct {
	blobs map[string][]byte
}

func (s *fakeStore) Put(context.Context, string, io.Reader, int64, string) error { return nil }
func (s *fakeStore) Delete(context.Context, string) error                        { return nil }
func (s *fakeStore) SignedURL(context.Context, string, time.Duration) (string, error) {
	return "", nil
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	blob, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return blob, nil
}

func TestAssembleDelimitsEachDocument(t *testing.T) {
	c := Corpus{Documents: []Document{
		{Name: "Rider.txt", Text: "Soundcheck at 16:30"},
		{Name: "Schedule.txt", Text: "Doors at 19:00"},
	}}

	got := c.Assemble()
	assert.Equal(t,
		"\n\n--- Document: Rider.txt ---\nSoundcheck at 16:30"+
			"\n\n--- Document: Schedule.txt ---\nDoors at 19:00",
		got)
}

func TestFirstIsUploadOrderProvenance(t *testing.T) {
	first := Document{ID: uuid.New(), Name: "Rider.txt", Text: "a"}
	c := Corpus{Documents: []Document{first, {Name: "Other.txt", Text: "b"}}}

	doc, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, first.ID, doc.ID)
	assert.Equal(t, "Rider.txt", doc.Name)

	_, ok = Corpus{}.First()
	assert.False(t, ok)
}

func TestLoadPrefersCachedText(t *testing.T) {
	fileID := uuid.New()
	repo := &fakeFileRepo{files: []models.EventFile{{
		UUID:          fileID,
		FileName:      "Rider.txt",
		FilePath:      "event/Rider.txt",
		FileType:      models.FileTypeText,
		ExtractedText: "Soundcheck at 16:30",
	}}}
	loader := NewLoader(repo, &fakeStore{})

	c, err := loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, c.Documents, 1)
	assert.Equal(t, "Soundcheck at 16:30", c.Documents[0].Text)
	assert.Equal(t, 1, c.TotalFiles)
}

func TestLoadFallsBackToBlob(t *testing.T) {
	repo := &fakeFileRepo{files: []models.EventFile{{
		UUID:     uuid.New(),
		FileName: "Rider.txt",
		FilePath: "event/Rider.txt",
		FileType: models.FileTypeText,
	}}}
	store := &fakeStore{blobs: map[string][]byte{
		"event/Rider.txt": []byte("Doors at 19:00"),
	}}
	loader := NewLoader(repo, store)

	c, err := loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, c.Documents, 1)
	assert.Equal(t, "Doors at 19:00", c.Documents[0].Text)
}

func TestLoadSkipsUnreadableDocuments(t *testing.T) {
	repo := &fakeFileRepo{files: []models.EventFile{
		{
			UUID:     uuid.New(),
			FileName: "Missing.txt",
			FilePath: "event/Missing.txt",
			FileType: models.FileTypeText,
		},
		{
			UUID:          uuid.New(),
			FileName:      "Rider.txt",
			FilePath:      "event/Rider.txt",
			FileType:      models.FileTypeText,
			ExtractedText: "Soundcheck at 16:30",
		},
	}}
	loader := NewLoader(repo, &fakeStore{})

	c, err := loader.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, c.Documents, 1)
	assert.Equal(t, "Rider.txt", c.Documents[0].Name)
	assert.Equal(t, 2, c.TotalFiles)
}

func TestLoadFailsWhenListingFails(t *testing.T) {
	loader := NewLoader(&fakeFileRepo{listErr: errors.New("db down")}, &fakeStore{})

	_, err := loader.Load(context.Background(), uuid.New())
	assert.Error(t, err)
}
