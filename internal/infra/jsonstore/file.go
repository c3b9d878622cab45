// Package jsonstore keeps a collection as one JSON array in a file. Every
// write rewrites the whole file.
package jsonstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gallery-admin/internal/store"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// wrapperKeys are the object keys older data files nest their array under.
var wrapperKeys = []string{"submissions", "users", "artworks", "categories", "reports"}

type File[T any] struct {
	path     string
	required bool
	log      *zap.Logger

	// mu serializes read-modify-write cycles within this process only.
	mu sync.Mutex
}

type Option func(*config)

type config struct {
	required bool
	log      *zap.Logger
}

// Required makes a missing file an error (store.ErrUnavailable) instead of
// an empty collection.
func Required() Option {
	return func(c *config) { c.required = true }
}

// WithLogger reports entries that had to be skipped while reading.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

func New[T any](path string, opts ...Option) *File[T] {
	cfg := config{log: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	return &File[T]{path: path, required: cfg.required, log: cfg.log}
}

func (f *File[T]) Path() string { return f.path }

func (f *File[T]) All(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, _, err := f.load()
	return items, err
}

func (f *File[T]) Replace(ctx context.Context, items []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(items, nil)
}

func (f *File[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, skipped, err := f.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	// entries that could not be read are written back untouched
	return f.save(next, skipped)
}

func (f *File[T]) load() ([]T, []json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		if f.required {
			return nil, nil, fmt.Errorf("%s: %w", f.path, store.ErrUnavailable)
		}
		return []T{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	items, skipped, err := Decode[T](raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if len(skipped) > 0 {
		f.log.Warn("skipped unreadable entries", zap.String("path", f.path), zap.Int("count", len(skipped)))
	}
	return items, skipped, nil
}

func (f *File[T]) save(items []T, skipped []json.RawMessage) error {
	out := make([]any, 0, len(items)+len(skipped))
	for _, it := range items {
		out = append(out, it)
	}
	for _, raw := range skipped {
		out = append(out, raw)
	}
	body, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// Decode accepts a bare JSON array, an object wrapping the array under one of
// the known keys, or an empty/null document. Entries that do not decode as a
// T are returned in skipped instead of failing the whole collection.
func Decode[T any](raw []byte) (items []T, skipped []json.RawMessage, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil, nil
	}

	if raw[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, nil, err
		}
		for _, key := range wrapperKeys {
			if inner, ok := wrapped[key]; ok {
				return Decode[T](inner)
			}
		}
		return nil, nil, errors.New("object has no known collection key")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, err
	}
	items = make([]T, 0, len(entries))
	for _, e := range entries {
		if bytes.Equal(bytes.TrimSpace(e), []byte("null")) {
			skipped = append(skipped, e)
			continue
		}
		var item T
		if err := json.Unmarshal(e, &item); err != nil {
			skipped = append(skipped, e)
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}
