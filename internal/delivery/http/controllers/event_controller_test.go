package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"personalcalendar/internal/delivery/http/helpers"
	"personalcalendar/internal/delivery/http/middleware"
	"personalcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventStore implements domain.EventStore for handler tests.
type fakeEventStore struct {
	owner         string
	addErr        error
	addResult     *domain.Event
	updateErr     error
	updateResult  *domain.Event
	removeErr     error
	removeResult  bool
	queryResult   []domain.Event
	lastOwnerID   string
	lastAddDraft  *domain.Event
	lastUpdateID  string
	lastPatch     domain.EventPatch
	lastRemoveID  string
	lastQueryDate string
}

func (f *fakeEventStore) SetOwner(ownerID string) { f.owner = ownerID }

func (f *fakeEventStore) Add(_ context.Context, ownerID string, draft domain.Event) (*domain.Event, error) {
	f.lastOwnerID = ownerID
	f.lastAddDraft = &draft
	return f.addResult, f.addErr
}

func (f *fakeEventStore) Update(_ context.Context, ownerID, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastOwnerID = ownerID
	f.lastUpdateID = id
	f.lastPatch = patch
	return f.updateResult, f.updateErr
}

func (f *fakeEventStore) Remove(_ context.Context, ownerID, id string) (bool, error) {
	f.lastOwnerID = ownerID
	f.lastRemoveID = id
	return f.removeResult, f.removeErr
}

func (f *fakeEventStore) QueryByDate(_ context.Context, ownerID, date string) []domain.Event {
	f.lastOwnerID = ownerID
	f.lastQueryDate = date
	return f.queryResult
}

func (f *fakeEventStore) Events(_ context.Context, ownerID string) []domain.Event {
	f.lastOwnerID = ownerID
	return f.queryResult
}

func authedRequest(method, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.SetUserID(req.Context(), "u1"))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var body helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body.Error
}

func strPtr(v string) *string { return &v }

func TestEventController_CreateEvent(t *testing.T) {
	created := &domain.Event{
		ID: "ev-1", Title: "Standup", Date: "2024-03-05", Time: "09:30", OwnerID: "u1",
	}

	tests := []struct {
		name         string
		body         string
		store        *fakeEventStore
		authed       bool
		wantStatus   int
		wantBodyCode string
		wantTime     string
		wantTitle    string
	}{
		{
			name:       "success pads time and trims title",
			body:       `{"title":"  Standup  ","description":"","date":"2024-03-05","hours":9,"minutes":5}`,
			store:      &fakeEventStore{addResult: created},
			authed:     true,
			wantStatus: http.StatusCreated,
			wantTime:   "09:05",
			wantTitle:  "Standup",
		},
		{
			name:         "missing title",
			body:         `{"title":"   ","date":"2024-03-05","hours":9,"minutes":30}`,
			store:        &fakeEventStore{},
			authed:       true,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "missing minutes",
			body:         `{"title":"Standup","date":"2024-03-05","hours":9}`,
			store:        &fakeEventStore{},
			authed:       true,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "hours out of range",
			body:         `{"title":"Standup","date":"2024-03-05","hours":24,"minutes":0}`,
			store:        &fakeEventStore{},
			authed:       true,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "minutes out of range",
			body:         `{"title":"Standup","date":"2024-03-05","hours":9,"minutes":60}`,
			store:        &fakeEventStore{},
			authed:       true,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "bad date",
			body:         `{"title":"Standup","date":"05/03/2024","hours":9,"minutes":30}`,
			store:        &fakeEventStore{},
			authed:       true,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unauthenticated",
			body:         `{"title":"Standup","date":"2024-03-05","hours":9,"minutes":30}`,
			store:        &fakeEventStore{},
			authed:       false,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "store has no active owner",
			body:         `{"title":"Standup","date":"2024-03-05","hours":9,"minutes":30}`,
			store:        &fakeEventStore{addResult: nil},
			authed:       true,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "persistence failure",
			body:         `{"title":"Standup","date":"2024-03-05","hours":9,"minutes":30}`,
			store:        &fakeEventStore{addErr: errors.New("persist events: connection refused")},
			authed:       true,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.store)
			req := httptest.NewRequest(http.MethodPost, "http://test/events", bytes.NewReader([]byte(tt.body)))
			if tt.authed {
				req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
			}
			rec := httptest.NewRecorder()
			ctrl.CreateEvent(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, decodeError(t, rec).Code)
				return
			}
			require.NotNil(t, tt.store.lastAddDraft)
			assert.Equal(t, "u1", tt.store.lastOwnerID)
			assert.Equal(t, tt.wantTitle, tt.store.lastAddDraft.Title)
			assert.Equal(t, tt.wantTime, tt.store.lastAddDraft.Time)
		})
	}
}

func TestEventController_ListEventsByDate(t *testing.T) {
	store := &fakeEventStore{queryResult: []domain.Event{
		{ID: "ev-1", Title: "Standup", Date: "2024-03-05", Time: "09:30", OwnerID: "u1"},
	}}
	ctrl := NewEventController(testLogger, store)

	rec := httptest.NewRecorder()
	ctrl.ListEventsByDate(rec, authedRequest(http.MethodGet, "http://test/events?date=2024-03-05", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", store.lastOwnerID)
	assert.Equal(t, "2024-03-05", store.lastQueryDate)

	var body struct {
		Data []domain.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Standup", body.Data[0].Title)
}

func TestEventController_ListEventsByDate_BadDate(t *testing.T) {
	ctrl := NewEventController(testLogger, &fakeEventStore{})

	for _, target := range []string{"http://test/events", "http://test/events?date=tomorrow"} {
		rec := httptest.NewRecorder()
		ctrl.ListEventsByDate(rec, authedRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, helpers.ErrCodeBadRequest, decodeError(t, rec).Code)
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	updated := &domain.Event{
		ID: "ev-1", Title: "Planning", Date: "2024-03-05", Time: "09:30", OwnerID: "u1",
	}

	tests := []struct {
		name         string
		eventID      string
		body         string
		store        *fakeEventStore
		wantStatus   int
		wantBodyCode string
		wantPatch    *domain.EventPatch
	}{
		{
			name:       "success title only",
			eventID:    "ev-1",
			body:       `{"title":" Planning "}`,
			store:      &fakeEventStore{updateResult: updated},
			wantStatus: http.StatusOK,
			wantPatch:  &domain.EventPatch{Title: strPtr("Planning")},
		},
		{
			name:       "success reschedule",
			eventID:    "ev-1",
			body:       `{"date":"2024-03-07","hours":8,"minutes":0}`,
			store:      &fakeEventStore{updateResult: updated},
			wantStatus: http.StatusOK,
			wantPatch:  &domain.EventPatch{Date: strPtr("2024-03-07"), Time: strPtr("08:00")},
		},
		{
			name:         "hours without minutes",
			eventID:      "ev-1",
			body:         `{"hours":8}`,
			store:        &fakeEventStore{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "blank title",
			eventID:      "ev-1",
			body:         `{"title":"  "}`,
			store:        &fakeEventStore{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "not found or foreign owner",
			eventID:      "ev-9",
			body:         `{"title":"Planning"}`,
			store:        &fakeEventStore{updateResult: nil},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "persistence failure",
			eventID:      "ev-1",
			body:         `{"title":"Planning"}`,
			store:        &fakeEventStore{updateErr: errors.New("persist events: connection refused")},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.store)
			req := authedRequest(http.MethodPatch, "http://test/events/"+tt.eventID, []byte(tt.body))
			req.SetPathValue("eventID", tt.eventID)
			rec := httptest.NewRecorder()
			ctrl.UpdateEvent(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, decodeError(t, rec).Code)
				return
			}
			assert.Equal(t, "u1", tt.store.lastOwnerID)
			assert.Equal(t, tt.eventID, tt.store.lastUpdateID)
			require.NotNil(t, tt.wantPatch)
			assert.Equal(t, *tt.wantPatch, tt.store.lastPatch)
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name         string
		store        *fakeEventStore
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			store:      &fakeEventStore{removeResult: true},
			wantStatus: http.StatusNoContent,
		},
		{
			name:         "not found or foreign owner",
			store:        &fakeEventStore{removeResult: false},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "persistence failure",
			store:        &fakeEventStore{removeResult: true, removeErr: errors.New("persist events: connection refused")},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger, tt.store)
			req := authedRequest(http.MethodDelete, "http://test/events/ev-1", nil)
			req.SetPathValue("eventID", "ev-1")
			rec := httptest.NewRecorder()
			ctrl.DeleteEvent(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, decodeError(t, rec).Code)
				return
			}
			assert.Equal(t, "u1", tt.store.lastOwnerID)
			assert.Equal(t, "ev-1", tt.store.lastRemoveID)
		})
	}
}
