package webfront

import (
	"fmt"
	"sync"
)

// SessionState is a point-in-time copy of a visitor's auth state.
type SessionState struct {
	Authenticated bool
	User          *User
	Token         string
	Loading       bool
	Err           string
}

// SessionStore is the single source of truth for one visitor's auth state.
// Invariant: Authenticated is true iff Token and User were both set by a
// successful login, register or restore. All mutation goes through Begin,
// ApplySuccess, ApplyFailure, Clear and ClearError; nothing else writes
// these fields.
//
// Every in-flight operation captures a generation from Begin. Clear bumps
// the generation, so a response that resolves after a logout carries a stale
// generation and is discarded instead of resurrecting cleared state.
type SessionStore struct {
	mu      sync.Mutex
	sid     string
	storage SessionStorage
	logger  Logger

	state      SessionState
	generation uint64
}

type SessionStoreOption func(*SessionStore) *SessionStore

func WithSessionLogger(logger Logger) SessionStoreOption {
	return func(s *SessionStore) *SessionStore {
		if logger != nil {
			s.logger = logger
		}
		return s
	}
}

// NewSessionStore creates an empty store for the given visitor session id.
func NewSessionStore(sid string, storage SessionStorage, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{
		sid:     sid,
		storage: storage,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		s = opt(s)
	}

	return s
}

// SID returns the visitor session id this store belongs to.
func (s *SessionStore) SID() string {
	return s.sid
}

// Snapshot returns a copy of the current state.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the held credential, empty when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Authenticated reports whether a validated token/user pair is held.
func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// Generation returns the current generation without starting an operation.
func (s *SessionStore) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Begin marks an auth operation in flight: Loading set, previous error
// cleared. The returned generation must be handed back to ApplySuccess or
// ApplyFailure; a mismatch there means the operation went stale.
func (s *SessionStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state.Loading = true
	s.state.Err = ""
	return s.generation
}

// ApplySuccess installs a validated token/user pair and writes the durable
// record. Returns false when the generation went stale and nothing changed.
func (s *SessionStore) ApplySuccess(gen uint64, token string, user *User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("session %s: discarding stale success (gen %d != %d)", s.sid, gen, s.generation)
		return false
	}

	user.EnsureRole()

	s.state.Authenticated = true
	s.state.User = user
	s.state.Token = token
	s.state.Loading = false
	s.state.Err = ""

	if err := writeDurableRecord(s.storage, s.sid, DurableRecord{Token: token, User: user}); err != nil {
		s.logger.Error("session %s: persist durable record: %v", s.sid, err)
	}

	return true
}

// ApplyFailure records a failed auth operation: credentials dropped, error
// surfaced, durable record deleted. Returns false when the generation went
// stale and nothing changed.
func (s *SessionStore) ApplyFailure(gen uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("session %s: discarding stale failure (gen %d != %d)", s.sid, gen, s.generation)
		return false
	}

	if message == "" {
		message = "Authentication failed"
	}

	s.state.Authenticated = false
	s.state.User = nil
	s.state.Token = ""
	s.state.Loading = false
	s.state.Err = message

	if err := deleteDurableRecord(s.storage, s.sid); err != nil {
		s.logger.Error("session %s: delete durable record: %v", s.sid, err)
	}

	return true
}

// Settle ends the loading state without changing the outcome, for
// operations that resolve neither into a session nor into an error.
// Returns false when the generation went stale.
func (s *SessionStore) Settle(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}

	s.state.Loading = false
	return true
}

// Clear resets the store to its initial empty state and removes the durable
// record along with every legacy key. It bumps the generation so any
// still-pending operation resolves stale.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = SessionState{}

	if err := deleteDurableRecord(s.storage, s.sid); err != nil {
		s.logger.Error("session %s: delete durable record: %v", s.sid, err)
	}
}

// ClearError drops the surfaced error without touching anything else.
// Idempotent.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

// Restore pre-populates the store from the durable record without contacting
// the backend. The restored session is optimistic: the route guard
// revalidates it before any privileged content renders.
func (s *SessionStore) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Authenticated {
		return true
	}

	rec, ok, err := readDurableRecord(s.storage, s.sid)
	if err != nil {
		s.logger.Error("session %s: read durable record: %v", s.sid, err)
		return false
	}
	if !ok {
		return false
	}

	rec.User.EnsureRole()
	s.state.Authenticated = true
	s.state.User = rec.User
	s.state.Token = rec.Token
	return true
}

func (s *SessionStore) String() string {
	state := s.Snapshot()
	email := "<nil>"
	if state.User != nil {
		email = state.User.Email
	}
	return fmt.Sprintf(
		"sid=%s authenticated=%t user=%s loading=%t err=%q",
		s.sid,
		state.Authenticated,
		email,
		state.Loading,
		state.Err,
	)
}

// SessionManager owns one SessionStore per visitor session id. Stores are
// created lazily and restored from durable storage on first access.
type SessionManager struct {
	mu      sync.Mutex
	storage SessionStorage
	logger  Logger
	stores  map[string]*SessionStore
}

type SessionManagerOption func(*SessionManager) *SessionManager

func WithManagerLogger(logger Logger) SessionManagerOption {
	return func(m *SessionManager) *SessionManager {
		if logger != nil {
			m.logger = logger
		}
		return m
	}
}

func NewSessionManager(storage SessionStorage, opts ...SessionManagerOption) *SessionManager {
	if storage == nil {
		storage = NewMemoryStorage()
	}

	m := &SessionManager{
		storage: storage,
		logger:  defLogger{},
		stores:  map[string]*SessionStore{},
	}

	for _, opt := range opts {
		m = opt(m)
	}

	return m
}

// Get returns the store for sid, creating and restoring it if needed.
func (m *SessionManager) Get(sid string) *SessionStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sid]; ok {
		return store
	}

	store := NewSessionStore(sid, m.storage, WithSessionLogger(m.logger))
	store.Restore()
	m.stores[sid] = store
	return store
}

// Lookup returns the store for sid without creating one.
func (m *SessionManager) Lookup(sid string) (*SessionStore, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[sid]
	return store, ok
}

// Evict drops the in-memory store for sid. The durable record, if any, is
// untouched; callers clear the store first on logout.
func (m *SessionManager) Evict(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sid)
}
