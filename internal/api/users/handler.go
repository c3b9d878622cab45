package users

import (
	"errors"
	"net/http"

	"gallery-admin/internal/api/request"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	users    store.Collection[users.User]
	artworks store.Collection[works.Artwork]
	// protectedID is the main admin account, which can never be deleted.
	protectedID int
	log         *zap.Logger
}

func NewHandler(list store.Collection[users.User], artworks store.Collection[works.Artwork], protectedID int, log *zap.Logger) *Handler {
	return &Handler{users: list, artworks: artworks, protectedID: protectedID, log: log}
}

// ------------------------------
// GET /me
// ------------------------------
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	list, err := h.users.All(c.Request.Context())
	if err != nil {
		h.log.Error("load users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	i := users.FindByID(list, userID)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": list[i].Public()})
}

// ------------------------------
// GET /admin/users
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.users.All(c.Request.Context())
	if err != nil {
		h.log.Error("load users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load users"})
		return
	}

	safe := make([]users.User, 0, len(list))
	for _, u := range list {
		safe = append(safe, u.Public())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": safe})
}

// ------------------------------
// POST /admin/users/role
// ------------------------------
func (h *Handler) UpdateRole(c *gin.Context) {
	var input struct {
		UserID request.ID `json:"user_id"`
		Role   string     `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}
	if !users.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid role"})
		return
	}

	err := h.edit(c, input.UserID.Int(), func(u *users.User) {
		u.Role = input.Role
		u.AccountType = input.Role
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("user role updated", zap.Int("user_id", input.UserID.Int()), zap.String("role", input.Role))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated"})
}

// ------------------------------
// POST /admin/users/status
// ------------------------------
func (h *Handler) UpdateStatus(c *gin.Context) {
	var input struct {
		UserID request.ID `json:"user_id"`
		Status string     `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !users.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status"})
		return
	}

	err := h.edit(c, input.UserID.Int(), func(u *users.User) {
		u.Status = input.Status
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	action := "deactivated"
	if input.Status == users.StatusActive {
		action = "activated"
	}
	h.log.Info("user status updated", zap.Int("user_id", input.UserID.Int()), zap.String("status", input.Status))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User " + action + " successfully"})
}

// ------------------------------
// POST /admin/users/delete
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	var input struct {
		UserID request.ID `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}
	userID := input.UserID.Int()

	if userID == h.protectedID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Cannot delete main admin account"})
		return
	}

	ctx := c.Request.Context()
	err := h.users.Update(ctx, func(list []users.User) ([]users.User, error) {
		i := users.FindByID(list, userID)
		if i < 0 {
			return nil, store.ErrNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	removed := 0
	err = h.artworks.Update(ctx, func(list []works.Artwork) ([]works.Artwork, error) {
		kept := list[:0]
		for _, a := range list {
			if a.UserID == userID {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		return kept, nil
	})
	if err != nil && !errors.Is(err, store.ErrUnavailable) {
		h.log.Error("remove submissions of deleted user", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "User deleted but their submissions could not be removed"})
		return
	}

	h.log.Info("user deleted", zap.Int("user_id", userID), zap.Int("submissions_removed", removed))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User and their submissions deleted successfully"})
}

func (h *Handler) edit(c *gin.Context, id int, apply func(*users.User)) error {
	return h.users.Update(c.Request.Context(), func(list []users.User) ([]users.User, error) {
		i := users.FindByID(list, id)
		if i < 0 {
			return nil, store.ErrNotFound
		}
		apply(&list[i])
		return list, nil
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	h.log.Error("update users", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save users"})
}
