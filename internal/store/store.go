// Package store defines the whole-collection persistence contract shared by
// the flat JSON files and the postgres tables.
package store

import (
	"context"
	"errors"

	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/domain/reports"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/domain/works"
)

var (
	// ErrUnavailable means the backing data could not be found at all.
	ErrUnavailable = errors.New("data file not found")
	ErrNotFound    = errors.New("record not found")
)

// Collection is read and rewritten as a unit. Update runs fn on a fresh
// snapshot and persists what it returns; an error from fn aborts the write
// and is returned as is.
type Collection[T any] interface {
	All(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, items []T) error
	Update(ctx context.Context, fn func([]T) ([]T, error)) error
}

type Stores struct {
	Artworks   Collection[works.Artwork]
	Users      Collection[users.User]
	Categories Collection[catalog.Category]
	Reports    Collection[reports.Report]
}
