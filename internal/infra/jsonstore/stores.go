package jsonstore

import (
	"path/filepath"

	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/domain/reports"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"go.uber.org/zap"
)

const (
	SubmissionsFile = "submissions.json"
	UsersFile       = "users.json"
	CategoriesFile  = "categories.json"
	ReportsFile     = "reports.json"
)

// Open wires every collection to its file under dir. Only the submissions
// file must exist; the others start empty.
func Open(dir string, log *zap.Logger) store.Stores {
	logged := WithLogger(log)
	return store.Stores{
		Artworks:   New[works.Artwork](filepath.Join(dir, SubmissionsFile), Required(), logged),
		Users:      New[users.User](filepath.Join(dir, UsersFile), logged),
		Categories: New[catalog.Category](filepath.Join(dir, CategoriesFile), logged),
		Reports:    New[reports.Report](filepath.Join(dir, ReportsFile), logged),
	}
}
