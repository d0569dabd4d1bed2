package webfront

import (
	"encoding/json"
	"sync"
)

// Durable session record keys. TokenKey and UserKey are the canonical pair;
// the legacy keys are still written because older template fragments read
// them directly. All six are cleared together on logout.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"

	LegacyTokenKey = "token"
	LegacyEmailKey = "userEmail"
	LegacyRoleKey  = "userRole"
	LegacyIDKey    = "userId"
)

func sessionRecordKeys() []string {
	return []string{TokenKey, UserKey, LegacyTokenKey, LegacyEmailKey, LegacyRoleKey, LegacyIDKey}
}

// SessionStorage persists the durable session record across front-end
// restarts, keyed by visitor session id.
type SessionStorage interface {
	Set(sid, key, value string) error
	Get(sid, key string) (string, bool, error)
	Delete(sid string, keys ...string) error
	DeleteAll(sid string) error
}

// DurableRecord is the persisted subset of session state.
type DurableRecord struct {
	Token string
	User  *User
}

func writeDurableRecord(storage SessionStorage, sid string, rec DurableRecord) error {
	if rec.Token == "" || rec.User == nil {
		return nil
	}

	encoded, err := json.Marshal(rec.User)
	if err != nil {
		return err
	}

	if err := storage.Set(sid, TokenKey, rec.Token); err != nil {
		return err
	}
	if err := storage.Set(sid, UserKey, string(encoded)); err != nil {
		return err
	}

	// legacy mirrors
	if err := storage.Set(sid, LegacyTokenKey, rec.Token); err != nil {
		return err
	}
	if err := storage.Set(sid, LegacyEmailKey, rec.User.Email); err != nil {
		return err
	}
	if err := storage.Set(sid, LegacyRoleKey, string(rec.User.Role)); err != nil {
		return err
	}
	return storage.Set(sid, LegacyIDKey, rec.User.ID)
}

func readDurableRecord(storage SessionStorage, sid string) (DurableRecord, bool, error) {
	token, ok, err := storage.Get(sid, TokenKey)
	if err != nil || !ok || token == "" {
		return DurableRecord{}, false, err
	}

	encoded, ok, err := storage.Get(sid, UserKey)
	if err != nil || !ok || encoded == "" {
		return DurableRecord{}, false, err
	}

	user := &User{}
	if err := json.Unmarshal([]byte(encoded), user); err != nil {
		return DurableRecord{}, false, nil
	}

	return DurableRecord{Token: token, User: user}, true, nil
}

func deleteDurableRecord(storage SessionStorage, sid string) error {
	return storage.Delete(sid, sessionRecordKeys()...)
}

// MemoryStorage is the in-process SessionStorage, used as the default and in
// tests. Safe for concurrent use.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]map[string]string{}}
}

func (m *MemoryStorage) Set(sid, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[sid]
	if !ok {
		bucket = map[string]string{}
		m.data[sid] = bucket
	}
	bucket[key] = value
	return nil
}

func (m *MemoryStorage) Get(sid, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bucket, ok := m.data[sid]
	if !ok {
		return "", false, nil
	}
	value, ok := bucket[key]
	return value, ok, nil
}

func (m *MemoryStorage) Delete(sid string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[sid]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(bucket, key)
	}
	if len(bucket) == 0 {
		delete(m.data, sid)
	}
	return nil
}

func (m *MemoryStorage) DeleteAll(sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, sid)
	return nil
}
