package storage

import (
	"context"
	"slices"

	"github.com/altmart/gocart/internal/port"
)

// Memory is a map-backed Storage. Nothing survives the process; it exists
// for tests and for running with persistence disabled.
type Memory struct {
	data map[string][]byte
}

var _ port.Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, port.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
