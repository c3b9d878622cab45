package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Collection, used by tests and dry runs.
type Memory[T any] struct {
	mu    sync.Mutex
	items []T
}

func NewMemory[T any](items ...T) *Memory[T] {
	return &Memory[T]{items: slices.Clone(items)}
}

func (m *Memory[T]) All(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *Memory[T]) Replace(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
	return nil
}

func (m *Memory[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(m.snapshot())
	if err != nil {
		return err
	}
	m.items = slices.Clone(next)
	return nil
}

func (m *Memory[T]) snapshot() []T {
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}
