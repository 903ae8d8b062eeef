package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"personalcalendar/config"
	_ "personalcalendar/docs"
	"personalcalendar/internal/adapters/auth"
	delivery "personalcalendar/internal/delivery/http"
	"personalcalendar/internal/delivery/http/controllers"
	"personalcalendar/internal/delivery/http/middleware"
	"personalcalendar/internal/identity"
	"personalcalendar/internal/repository/postgres"
	"personalcalendar/internal/services"
)

const contextTimeout = 5 * time.Second

// @title Personal Calendar API
// @version 1.0
// @description Single-user calendar service: owner-scoped events, month grid, ICS export.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	snapshotRepo := postgres.NewSnapshotRepository(db)

	provider := identity.NewProvider()
	store := services.NewEventStore(snapshotRepo, logger, contextTimeout)
	provider.Subscribe(store.SetOwner)

	calendarService := services.NewCalendarService(store)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	eventController := controllers.NewEventController(logger, store)
	calendarController := controllers.NewCalendarController(logger, calendarService)

	mux := delivery.NewRouter(eventController, calendarController, verifier, provider)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
