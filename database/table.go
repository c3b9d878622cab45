package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 200

// Table gives a gorm model the same load-all / replace-all semantics as the
// flat files, ordered by id.
type Table[T any] struct {
	db *gorm.DB
}

func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{db: db}
}

func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := t.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (t *Table[T]) Replace(ctx context.Context, items []T) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAll(tx, items)
	})
}

// Update holds row locks on the current rows until the rewrite commits.
func (t *Table[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := []T{}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}
		return replaceAll(tx, next)
	})
}

func replaceAll[T any](tx *gorm.DB, items []T) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.CreateInBatches(&items, insertBatchSize).Error
}
