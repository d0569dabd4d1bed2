package webfront

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltStorage persists durable session records in a local BoltDB file so a
// restarted front-end restores visitor sessions without a backend round trip.
// Each visitor session id maps to a nested bucket of record keys.
type BoltStorage struct {
	db   *bolt.DB
	root []byte
}

// OpenBoltStorage initializes the BoltDB file and ensures the root bucket exists.
func OpenBoltStorage(path string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	root := []byte("sessions")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(root)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStorage{db: db, root: root}, nil
}

func (s *BoltStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStorage) Set(sid, key, value string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.Bucket(s.root).CreateBucketIfNotExists([]byte(sid))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (s *BoltStorage) Get(sid, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, bolt.ErrDatabaseNotOpen
	}

	var value string
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.root).Bucket([]byte(sid))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		value = string(append([]byte(nil), raw...))
		found = true
		return nil
	})
	return value, found, err
}

func (s *BoltStorage) Delete(sid string, keys ...string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.root).Bucket([]byte(sid))
		if bucket == nil {
			return nil
		}
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStorage) DeleteAll(sid string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(s.root)
		if root.Bucket([]byte(sid)) == nil {
			return nil
		}
		return root.DeleteBucket([]byte(sid))
	})
}
