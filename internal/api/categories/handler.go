package categories

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gallery-admin/internal/api/request"
	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	categories store.Collection[catalog.Category]
	log        *zap.Logger
	now        func() time.Time
}

func NewHandler(categories store.Collection[catalog.Category], log *zap.Logger) *Handler {
	return &Handler{categories: categories, log: log, now: time.Now}
}

// ------------------------------
// GET /admin/categories
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.categories.All(c.Request.Context())
	if err != nil {
		h.log.Error("load categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load categories"})
		return
	}
	if list == nil {
		list = []catalog.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": list})
}

// ------------------------------
// POST /admin/categories
// ------------------------------
func (h *Handler) Add(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Category name is required"})
		return
	}

	var created catalog.Category
	err := h.categories.Update(c.Request.Context(), func(list []catalog.Category) ([]catalog.Category, error) {
		created = catalog.New(list, input.Name, h.now())
		return append(list, created), nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("category added", zap.Int("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category added", "category": created})
}

// ------------------------------
// POST /admin/categories/update
// ------------------------------
func (h *Handler) Rename(c *gin.Context) {
	var input struct {
		ID   request.ID `json:"id"`
		Name string     `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "New category name is required"})
		return
	}

	err := h.categories.Update(c.Request.Context(), func(list []catalog.Category) ([]catalog.Category, error) {
		i := catalog.FindByID(list, input.ID.Int())
		if i < 0 {
			return nil, store.ErrNotFound
		}
		list[i].Name = strings.TrimSpace(input.Name)
		return list, nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated"})
}

// ------------------------------
// POST /admin/categories/delete
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var input struct {
		ID request.ID `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	err := h.categories.Update(c.Request.Context(), func(list []catalog.Category) ([]catalog.Category, error) {
		i := catalog.FindByID(list, input.ID.Int())
		if i < 0 {
			return nil, store.ErrNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("category deleted", zap.Int("id", input.ID.Int()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Category not found"})
		return
	}
	h.log.Error("update categories", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save categories"})
}
