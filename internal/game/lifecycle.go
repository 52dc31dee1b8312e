package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the durable-store contract the lifecycle manager persists
// through: an opaque string-keyed blob store. Any key-value or file-backed
// store satisfies it.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ErrBlobNotFound is returned by BlobStore.Get for missing keys.
var ErrBlobNotFound = errors.New("blob not found")

// ErrSessionNotFound means no valid session exists under the given token.
var ErrSessionNotFound = errors.New("session not found")

// persistVersion is the schema version stamped on every persisted record.
// Records with any other version are rejected on restore.
const persistVersion = 1

type persistedSession struct {
	SessionState
	SavedAt time.Time `json:"savedAt"`
	Version int       `json:"version"`
}

// Manager owns session initialization, reset, persistence, and isolation
// validation. It serializes gameplay actions per token so SessionState
// stays single-writer even under a concurrent HTTP host.
type Manager struct {
	store  BlobStore
	cat    *Catalog
	rnd    RandomSource
	logger *slog.Logger

	// startTracker spans sessions so future route draws avoid recent
	// starting cities.
	startTracker *FairnessTracker

	mu       sync.Mutex
	sessions map[string]*sessionHandle
}

type sessionHandle struct {
	mu          sync.Mutex
	clueTracker *FairnessTracker
}

// NewManager returns a lifecycle manager over the given store and catalog.
func NewManager(store BlobStore, cat *Catalog, rnd RandomSource, logger *slog.Logger) *Manager {
	return &Manager{
		store:        store,
		cat:          cat,
		rnd:          rnd,
		logger:       logger,
		startTracker: NewFairnessTracker(),
		sessions:     make(map[string]*sessionHandle),
	}
}

// Catalog returns the city catalog the manager was built over.
func (m *Manager) Catalog() *Catalog {
	return m.cat
}

func (m *Manager) handle(token string) *sessionHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.sessions[token]
	if !ok {
		h = &sessionHandle{clueTracker: NewFairnessTracker()}
		m.sessions[token] = h
	}
	return h
}

// ClueEngine returns the per-session clue progression engine for token. The
// engine's fairness history is discarded alongside session reset.
func (m *Manager) ClueEngine(token string) *ClueProgressionEngine {
	return NewClueEngine(m.handle(token).clueTracker, m.rnd)
}

// Initialize creates a brand-new session: fresh token and session id, all
// fields at defaults, a freshly generated route, and the state persisted.
// Fails loudly if route generation exhausts its retry bound.
func (m *Manager) Initialize(ctx context.Context) (string, *SessionState, error) {
	token := uuid.NewString()
	state, err := m.newState()
	if err != nil {
		return "", nil, err
	}
	if err := m.Persist(ctx, token, state); err != nil {
		return "", nil, err
	}
	return token, state, nil
}

func (m *Manager) newState() (*SessionState, error) {
	state := NewSessionState()

	route, warnings, err := GenerateRoute(m.cat, m.startTracker, m.rnd)
	if err != nil {
		return nil, fmt.Errorf("initializing session: %w", err)
	}
	for _, w := range warnings {
		m.logger.Warn("route warning", "warning", w, "session_id", state.SessionID)
	}
	state.Route = route
	return state, nil
}

// Reset discards the session under token and replaces it with a fresh one,
// keeping the token stable for the client. Idempotent: consecutive resets
// yield distinct session ids with identical empty shape. The post-reset
// isolation check runs every time; if it ever fails the state object is
// hard-replaced wholesale rather than patched.
func (m *Manager) Reset(ctx context.Context, token string) (*SessionState, error) {
	h := m.handle(token)
	h.mu.Lock()
	defer h.mu.Unlock()

	var oldID string
	if old, err := m.Restore(ctx, token); err != nil {
		return nil, err
	} else if old != nil {
		oldID = old.SessionID
	}

	state, err := m.newState()
	if err != nil {
		return nil, err
	}
	if err := ValidateSessionReset(oldID, state); err != nil {
		m.logger.Error("reset isolation check failed, forcing hard replacement", "error", err)
		state, err = m.newState()
		if err != nil {
			return nil, err
		}
		if err := ValidateSessionReset(oldID, state); err != nil {
			return nil, err
		}
	}

	h.clueTracker = NewFairnessTracker()

	if err := m.persistLocked(ctx, token, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Persist writes the state for token to the durable store, stamped with
// the schema version and save time.
func (m *Manager) Persist(ctx context.Context, token string, state *SessionState) error {
	h := m.handle(token)
	h.mu.Lock()
	defer h.mu.Unlock()
	return m.persistLocked(ctx, token, state)
}

func (m *Manager) persistLocked(ctx context.Context, token string, state *SessionState) error {
	rec := persistedSession{
		SessionState: *state,
		SavedAt:      time.Now().UTC(),
		Version:      persistVersion,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, sessionKey(token), string(data)); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// Restore loads and validates the state persisted under token. It returns
// (nil, nil) when no record exists or the record fails validation. An
// invalid record is never partially adopted; the caller initializes a
// fresh session instead.
func (m *Manager) Restore(ctx context.Context, token string) (*SessionState, error) {
	raw, err := m.store.Get(ctx, sessionKey(token))
	if errors.Is(err, ErrBlobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var rec persistedSession
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		m.logger.Warn("discarding undecodable session record", "error", err)
		return nil, nil
	}
	if rec.Version != persistVersion {
		m.logger.Warn("discarding session record with unknown version", "version", rec.Version)
		return nil, nil
	}
	state := rec.SessionState
	if err := ValidateState(&state, m.cat); err != nil {
		m.logger.Warn("discarding invalid session record", "error", err)
		return nil, nil
	}
	return &state, nil
}

// Do runs one gameplay action against the session under token, serialized
// with every other action on the same session, and persists the state
// afterwards. When fn returns an error nothing is persisted; rejected
// actions must not mutate state.
func (m *Manager) Do(ctx context.Context, token string, fn func(*SessionState) error) (*SessionState, error) {
	h := m.handle(token)
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := m.Restore(ctx, token)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	if err := fn(state); err != nil {
		return state, err
	}
	if err := m.persistLocked(ctx, token, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Remove deletes the persisted session and its in-memory handle.
func (m *Manager) Remove(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return m.store.Remove(ctx, sessionKey(token))
}

func sessionKey(token string) string {
	return "session:" + token
}
