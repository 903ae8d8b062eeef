package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"personalcalendar/internal/delivery/http/controllers"
	"personalcalendar/internal/delivery/http/middleware"
	"personalcalendar/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Every calendar route runs behind RequireAuth, which also activates the
// token subject on the identity provider.
func NewRouter(
	eventController *controllers.EventController,
	calendarController *controllers.CalendarController,
	verifier domain.TokenVerifier,
	provider domain.IdentityProvider,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, provider)

	// Events
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEventsByDate))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Calendar
	mux.HandleFunc("GET /calendar/export.ics", requireAuth(calendarController.ExportICS))
	mux.HandleFunc("GET /calendar/{year}/{month}", requireAuth(calendarController.GetMonthGrid))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
