package cache

import (
	"context"
	"fmt"

	"storygrabber/core/storage"

	"go.uber.org/zap"
)

// Backend is the persistence medium behind the cache store. It holds
// one opaque record per (kind, username) pair; the Store owns all
// timestamp and staleness semantics.
type Backend interface {
	// Get returns the raw record, or nil if no record exists.
	Get(ctx context.Context, kind Kind, username string) ([]byte, error)
	// Put replaces the record wholesale.
	Put(ctx context.Context, kind Kind, username string, data []byte) error
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, kind Kind, username string) error
	// Close releases backend resources.
	Close() error
}

// Backend selector values for Config.Backend.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendObject = "s3"
)

// Open constructs the backend selected by the configuration.
// The storage client is only required for the s3 backend and may be
// nil otherwise.
func Open(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (Backend, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryBackend(cfg.Capacity), nil
	case BackendBolt, "":
		return NewBoltBackend(cfg.Path)
	case BackendObject:
		if client == nil {
			return nil, fmt.Errorf("cache backend %q requires a storage client", cfg.Backend)
		}
		return NewObjectBackend(client, bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
