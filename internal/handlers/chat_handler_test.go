package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backstage-brain-backend/internal/chat"
	"backstage-brain-backend/internal/corpus"
	"backstage-brain-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCorpusLoader struct {
	corpus corpus.Corpus
}

func (f *fakeCorpusLoader) Load(context.Context, uuid.UUID) (corpus.Corpus, error) {
	return f.corpus, nil
}

type fakeChatRepo struct {
	saved []*models.ChatMessage
}

func (f *fakeChatRepo) CreateMessage(msg *models.ChatMessage) error {
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeChatRepo) ListForUserEvent(uuid.UUID, uuid.UUID) ([]models.ChatMessage, error) {
	return nil, nil
}

type fakeChatModel struct {
	answer string
	calls  int
}

func (f *fakeChatModel) Generate(context.Context, string, string) (string, error) {
	f.calls++
	return f.answer, nil
}

func (f *fakeChatModel) GenerateStream(_ context.Context, _, _ string, onChunk func(string) error) (string, error) {
	f.calls++
	if err := onChunk(f.answer); err != nil {
		return "", err
	}
	return f.answer, nil
}

func (f *fakeChatModel) GenerateTimeline(context.Context, string, string) (string, error) {
	return "", nil
}

func chatFixture(t *testing.T) (*fiber.App, *fakeChatRepo, *fakeChatModel, uuid.UUID) {
	t.Helper()
	events := newFakeEventRepo()
	event := &models.Event{Name: "Festival Opening", Date: time.Now()}
	require.NoError(t, events.CreateWithAdmin(event, uuid.New()))

	docs := corpus.Corpus{
		TotalFiles: 1,
		Documents: []corpus.Document{
			{ID: uuid.New(), Name: "Rider.txt", Text: "Soundcheck at 16:30"},
		},
	}
	chats := &fakeChatRepo{}
	model := &fakeChatModel{answer: "Soundcheck is at 16:30."}
	engine := chat.NewEngine(&fakeCorpusLoader{corpus: docs}, chats, model)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("callerID", uuid.New())
		return c.Next()
	})
	h := NewChatHandler(events, chats, engine, nil)
	app.Get("/events/:id/chat", h.GetHistory)
	app.Post("/events/:id/chat", h.PostMessage)
	return app, chats, model, event.UUID
}

func chatRequest(eventID uuid.UUID, query, message string) *http.Request {
	target := "/events/" + eventID.String() + "/chat" + query
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{"message":`+message+`}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestPostMessageBlankIs400(t *testing.T) {
	app, chats, model, eventID := chatFixture(t)

	resp, err := app.Test(chatRequest(eventID, "", `"   "`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, model.calls)
	assert.Empty(t, chats.saved)
}

func TestPostMessageStreamBlankIs400(t *testing.T) {
	app, chats, model, eventID := chatFixture(t)

	resp, err := app.Test(chatRequest(eventID, "?stream=1", `"   "`))
	require.NoError(t, err)

	// A blank message never reaches the stream writer: the client gets a
	// plain 400 JSON body, not a 200 NDJSON stream with an in-band error.
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotContains(t, resp.Header.Get(fiber.HeaderContentType), "ndjson")
	assert.Equal(t, 0, model.calls)
	assert.Empty(t, chats.saved)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Message is required", body.Error)
}

func TestPostMessageGroundedTurn(t *testing.T) {
	app, chats, _, eventID := chatFixture(t)

	resp, err := app.Test(chatRequest(eventID, "", `"When is soundcheck?"`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var turn chat.Turn
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&turn))
	assert.Equal(t, "Soundcheck is at 16:30.", turn.Response)
	require.NotNil(t, turn.AssistantMessage)
	assert.Equal(t, "Rider.txt", turn.AssistantMessage.SourceDocumentName)
	require.Len(t, chats.saved, 2)
}

func TestPostMessageStreamEmitsNDJSON(t *testing.T) {
	app, _, _, eventID := chatFixture(t)

	resp, err := app.Test(chatRequest(eventID, "?stream=1", `"When is soundcheck?"`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/x-ndjson")

	var types []chat.EnvelopeType
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var env chat.Envelope
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &env))
		types = append(types, env.Type)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []chat.EnvelopeType{
		chat.EnvelopeUserMessage,
		chat.EnvelopeChunk,
		chat.EnvelopeDone,
	}, types)
}
