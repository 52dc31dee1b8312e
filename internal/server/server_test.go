package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/stadtaev/citychase/internal/catalog"
	"github.com/stadtaev/citychase/internal/database"
	"github.com/stadtaev/citychase/internal/game"
	"github.com/stadtaev/citychase/internal/migrations"
)

type testEnv struct {
	router *chi.Mux
	mgr    *game.Manager
	store  *SQLiteStore
	db     *sql.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cat, err := catalog.Load(ctx, catalog.Embedded(), 0, logger)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	store := NewSQLiteStore(db)
	mgr := game.NewManager(store, cat, game.NewSeededSource(42), logger)

	if err := SeedAdmin(ctx, logger, store, "ops@citychase.dev", "changeme"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, logger, mgr, store, db, "")

	return &testEnv{router: r, mgr: mgr, store: store, db: db}
}

// do performs one request against the test router. A non-empty token is
// sent as a Bearer header; a non-nil body is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createSession(t *testing.T) (string, Snapshot) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/session", "", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("create session: expected a token")
	}
	return resp.Token, resp.Snapshot
}

// routeOf reads the persisted route directly from the manager. The HTTP
// surface never exposes it, so tests that need to make a correct guess
// peek at the stored state instead.
func (e *testEnv) routeOf(t *testing.T, token string) game.Route {
	t.Helper()
	state, err := e.mgr.Restore(context.Background(), token)
	if err != nil {
		t.Fatalf("restore session: %v", err)
	}
	if state == nil {
		t.Fatalf("restore session: no state for token %q", token)
	}
	return state.Route
}

// wrongCityFor picks a catalog city that is a guaranteed miss: not the
// expected next stop, not current, not visited, not final.
func (e *testEnv) wrongCityFor(t *testing.T, token string) string {
	t.Helper()
	state, err := e.mgr.Restore(context.Background(), token)
	if err != nil || state == nil {
		t.Fatalf("restore session: %v", err)
	}
	expected := ""
	if state.RouteIndex+1 < len(state.Route) {
		expected = state.Route[state.RouteIndex+1]
	}
	for _, c := range e.mgr.Catalog().NonFinalCities() {
		if c.ID == expected || c.ID == state.CurrentCityID() || state.HasVisited(c.ID) {
			continue
		}
		return c.ID
	}
	t.Fatal("no wrong city available")
	return ""
}
