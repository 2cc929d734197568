package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backstage-brain-backend/internal/models"
	"backstage-brain-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*models.Event
	roles  map[uuid.UUID]models.UserRole

	archived []uuid.UUID
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: map[uuid.UUID]*models.Event{},
		roles:  map[uuid.UUID]models.UserRole{},
	}
}

func (f *fakeEventRepo) CreateWithAdmin(event *models.Event, creator uuid.UUID) error {
	if event.UUID == uuid.Nil {
		event.UUID = uuid.New()
	}
	event.CreatedBy = creator
	f.events[event.UUID] = event
	f.roles[event.UUID] = models.RoleAdmin
	return nil
}

func (f *fakeEventRepo) ListForUser(uuid.UUID, string) ([]repo.EventWithRole, error) {
	out := []repo.EventWithRole{}
	for id, e := range f.events {
		if !e.IsArchived {
			out = append(out, repo.EventWithRole{Event: *e, UserRole: f.roles[id]})
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByID(eventID uuid.UUID) (*models.Event, error) {
	e, ok := f.events[eventID]
	if !ok || e.IsArchived {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) Update(event *models.Event) error {
	f.events[event.UUID] = event
	return nil
}

func (f *fakeEventRepo) Archive(eventID uuid.UUID) error {
	f.events[eventID].IsArchived = true
	f.archived = append(f.archived, eventID)
	return nil
}

func (f *fakeEventRepo) RoleFor(_, eventID uuid.UUID) (models.UserRole, bool, error) {
	role, ok := f.roles[eventID]
	return role, ok, nil
}

// eventTestApp mounts the event handler behind a stub identity middleware.
func eventTestApp(events repo.EventRepoInterface, callerID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if callerID != uuid.Nil {
			c.Locals("callerID", callerID)
		}
		return c.Next()
	})
	h := NewEventHandler(events)
	app.Get("/events", h.ListEvents)
	app.Post("/events", h.CreateEvent)
	app.Get("/events/:id", h.GetEvent)
	app.Put("/events/:id", h.UpdateEvent)
	app.Delete("/events/:id", h.ArchiveEvent)
	return app
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestCreateEventMakesCallerAdmin(t *testing.T) {
	events := newFakeEventRepo()
	app := eventTestApp(events, uuid.New())

	req := jsonRequest(t, http.MethodPost, "/events", fiber.Map{
		"name":     "Festival Opening",
		"date":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"location": "Main Hall",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Event repo.EventWithRole `json:"event"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Festival Opening", body.Event.Name)
	assert.Equal(t, models.RoleAdmin, body.Event.UserRole)
}

func TestCreateEventValidation(t *testing.T) {
	app := eventTestApp(newFakeEventRepo(), uuid.New())

	req := jsonRequest(t, http.MethodPost, "/events", fiber.Map{
		"name":     "",
		"date":     "not a date",
		"location": "Main Hall",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateEventRequiresAuth(t *testing.T) {
	app := eventTestApp(newFakeEventRepo(), uuid.Nil)

	req := jsonRequest(t, http.MethodPost, "/events", fiber.Map{
		"name":     "Festival Opening",
		"date":     time.Now().Format(time.RFC3339),
		"location": "Main Hall",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetEventDeniedWithoutMembership(t *testing.T) {
	events := newFakeEventRepo()
	event := &models.Event{Name: "Closed Show", Date: time.Now()}
	require.NoError(t, events.CreateWithAdmin(event, uuid.New()))
	// Strip the caller's assignment so the event exists but is off-limits.
	delete(events.roles, event.UUID)

	app := eventTestApp(events, uuid.New())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events/"+event.UUID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateEventRequiresManager(t *testing.T) {
	events := newFakeEventRepo()
	event := &models.Event{Name: "Closed Show", Date: time.Now()}
	require.NoError(t, events.CreateWithAdmin(event, uuid.New()))
	events.roles[event.UUID] = models.RoleStaff

	app := eventTestApp(events, uuid.New())
	req := jsonRequest(t, http.MethodPut, "/events/"+event.UUID.String(), fiber.Map{
		"name":     "Renamed",
		"date":     time.Now().Format(time.RFC3339),
		"location": "Main Hall",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestArchiveEventHidesIt(t *testing.T) {
	events := newFakeEventRepo()
	event := &models.Event{Name: "One Night Only", Date: time.Now()}
	require.NoError(t, events.CreateWithAdmin(event, uuid.New()))

	app := eventTestApp(events, uuid.New())
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/events/"+event.UUID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []uuid.UUID{event.UUID}, events.archived)

	// Archived events disappear from reads.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/events/"+event.UUID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidEventIDParam(t *testing.T) {
	app := eventTestApp(newFakeEventRepo(), uuid.New())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
