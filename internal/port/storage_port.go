package port

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Storage.Get for a key that was never set or
// was deleted.
var ErrKeyNotFound = errors.New("key not found")

// Storage is a durable local key-value slot: get/set/delete on opaque byte
// values, surviving process restarts. Implementations are single-writer;
// two processes sharing a slot clobber each other last-writer-wins.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
