package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 10, NextID([]Category{{ID: 3}, {ID: 9}, {ID: 2}}))
}

func TestNew(t *testing.T) {
	at := time.Date(2025, 2, 1, 9, 5, 3, 0, time.UTC)
	c := New([]Category{{ID: 4}}, "  Sculpture ", at)
	assert.Equal(t, Category{ID: 5, Name: "Sculpture", CreatedAt: "2025-02-01 09:05:03"}, c)
}
