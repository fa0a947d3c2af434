package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/quizdeck/backend/internal/api"
	"github.com/quizdeck/backend/internal/infrastructure/config"
	"github.com/quizdeck/backend/internal/media"
	"github.com/quizdeck/backend/internal/player"
	"github.com/quizdeck/backend/internal/service"
	"github.com/quizdeck/backend/internal/store"

	_ "github.com/quizdeck/backend/docs" // generated swagger docs
)

// @title           QuizDeck API
// @version         1.0
// @description     Quiz pack authoring and live presentation — build rounds of questions, then run them on the big screen with timers and music cues.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	mediaStore, err := media.NewStorage(cfg.MediaDir)
	if err != nil {
		logger.Error("failed to prepare media directory", "error", err)
		os.Exit(1)
	}

	suggestSvc := service.NewSuggestService(cfg.OpenAIKey, logger)
	players := player.NewManager(logger)
	cookies := sessions.NewCookieStore([]byte(cfg.SessionKey))
	handler := api.NewHandler(db, mediaStore, suggestSvc, players, cookies, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Presenter websockets are hijacked and not subject to these.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		players.CloseAll()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
