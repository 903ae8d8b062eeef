package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"personalcalendar/internal/delivery/http/helpers"
	"personalcalendar/internal/delivery/http/middleware"
	"personalcalendar/internal/domain"
)

// MonthGridSuccessResponse is the success envelope for GET /calendar/{year}/{month}.
type MonthGridSuccessResponse struct {
	Data  *domain.MonthGrid `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMonthGrid godoc
// @Summary Get the month grid
// @Description Returns the ordered day sequence for the month view: whole weeks (Sunday start) covering the month, each day tagged with month membership, today, and its events (up to 3 visible plus a more_count).
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} controllers.MonthGridSuccessResponse "data contains the month grid"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/{year}/{month} [get]
func (c *CalendarController) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "month must be an integer")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	grid, err := c.Service.MonthGrid(r.Context(), userID, year, time.Month(month))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, grid)
}

// ExportICS godoc
// @Summary Export the calendar as ICS
// @Description Returns the authenticated user's events as an iCalendar document.
// @Tags calendar
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "text/calendar document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/export.ics [get]
func (c *CalendarController) ExportICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	doc, err := c.Service.ExportICS(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
