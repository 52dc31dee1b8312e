package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/stadtaev/citychase/internal/game"
)

func addRoutes(r chi.Router, logger *slog.Logger, mgr *game.Manager, store Store, db *sql.DB, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("CityChase API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Player routes, one session per Bearer token.
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/", handleCreateSession(logger, mgr))
		r.Get("/state", handleSessionState(mgr))
		r.Post("/start", handleStart(mgr))
		r.Post("/clues", handleClues(mgr, broker))
		r.Post("/travel", handleTravel(mgr))
		r.Post("/guess", handleGuess(mgr, broker))
		r.Post("/continue", handleContinue(mgr, broker))
		r.Post("/reset", handleReset(logger, mgr, broker))
		r.Get("/events", handleEvents(mgr, broker))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	// Admin inspection, behind the session cookie.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))
		r.Get("/catalog", handleAdminCatalog(mgr))
		r.Get("/sessions", handleAdminSessions(store))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
