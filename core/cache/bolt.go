package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("cache")

// BoltBackend persists cache records in a single bbolt file. It is the
// default backend: no external service, safe across restarts, and a
// single file to back up.
type BoltBackend struct {
	db *bolt.DB
}

// NewBoltBackend opens (or creates) the database file at path, creating
// parent directories as needed.
func NewBoltBackend(path string) (*BoltBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltBackend{db: db}, nil
}

func boltKey(kind Kind, username string) []byte {
	return []byte(string(kind) + "|" + username)
}

func (b *BoltBackend) Get(_ context.Context, kind Kind, username string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(boltBucket).Get(boltKey(kind, username))
		if data != nil {
			out = make([]byte, len(data))
			copy(out, data)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoltBackend) Put(_ context.Context, kind Kind, username string, data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(boltKey(kind, username), data)
	})
}

func (b *BoltBackend) Delete(_ context.Context, kind Kind, username string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(boltKey(kind, username))
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
