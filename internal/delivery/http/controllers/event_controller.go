package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"personalcalendar/internal/delivery/http/helpers"
	"personalcalendar/internal/delivery/http/middleware"
	"personalcalendar/internal/domain"
)

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// CreateEventRequest is the request body for POST /events. Hours and minutes
// are submitted separately, the way the event form collects them, and are
// stored as a single zero-padded HH:MM value.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Hours       *int   `json:"hours"`
	Minutes     *int   `json:"minutes"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if !validDate(c.Date) {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	errs = append(errs, validateTimeParts(c.Hours, c.Minutes, true)...)
	return errs
}

// validateTimeParts checks the hour/minute pair. Both must be present
// together; required forces presence (create), otherwise an absent pair is
// fine (update).
func validateTimeParts(hours, minutes *int, required bool) []string {
	var errs []string
	if hours == nil && minutes == nil {
		if required {
			errs = append(errs, "both hours and minutes are required")
		}
		return errs
	}
	if hours == nil || minutes == nil {
		return append(errs, "both hours and minutes are required")
	}
	if *hours < 0 || *hours > 23 {
		errs = append(errs, "hours must be between 00 and 23")
	}
	if *minutes < 0 || *minutes > 59 {
		errs = append(errs, "minutes must be between 00 and 59")
	}
	return errs
}

func formatTime(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// EventSuccessResponse is the success envelope for endpoints returning a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []domain.Event    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger *slog.Logger
	Store  domain.EventStore
}

func NewEventController(logger *slog.Logger, store domain.EventStore) *EventController {
	return &EventController{
		Logger: logger,
		Store:  store,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event for the authenticated user on the given day. The id and owner are server-assigned; title and description are trimmed; the time is stored zero-padded as HH:MM.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	draft := domain.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Time:        formatTime(*req.Hours, *req.Minutes),
	}
	created, err := c.Store.Add(r.Context(), userID, draft)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if created == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "no active user")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListEventsByDate godoc
// @Summary List events for a day
// @Description Returns the authenticated user's events in the given day bucket, in creation order.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param date query string true "Day bucket (YYYY-MM-DD)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the day's events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListEventsByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" || !validDate(date) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events := c.Store.QueryByDate(r.Context(), userID, date)
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged. Hours and minutes must
// be supplied together.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Hours       *int    `json:"hours"`
	Minutes     *int    `json:"minutes"`
}

// Validate implements Validator. Present fields follow the create rules.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title is required")
	}
	if u.Date != nil && !validDate(*u.Date) {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	errs = append(errs, validateTimeParts(u.Hours, u.Minutes, false)...)
	return errs
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update to one of the authenticated user's events. The id and owner never change. Updating another user's event reports not found.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	patch := domain.EventPatch{Date: req.Date}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		patch.Title = &trimmed
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		patch.Description = &trimmed
	}
	if req.Hours != nil && req.Minutes != nil {
		formatted := formatTime(*req.Hours, *req.Minutes)
		patch.Time = &formatted
	}

	updated, err := c.Store.Update(r.Context(), userID, eventID, patch)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if updated == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes one of the authenticated user's events. Deleting another user's event reports not found.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "event deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Store.Remove(r.Context(), userID, eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
