package admin

import (
	"errors"
	"net/http"
	"time"

	"gallery-admin/internal/api/request"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AdminStats struct {
	Pending  int `json:"pending"`
	Users    int `json:"users"`
	Artworks int `json:"artworks"`
}

// Handler serves the moderation queue and dashboard counters.
type Handler struct {
	artworks store.Collection[works.Artwork]
	users    store.Collection[users.User]
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(artworks store.Collection[works.Artwork], list store.Collection[users.User], log *zap.Logger) *Handler {
	return &Handler{artworks: artworks, users: list, log: log, now: time.Now}
}

// ------------------------------
// GET /admin/stats
// ------------------------------
func (h *Handler) Stats(c *gin.Context) {
	var (
		submissions []works.Artwork
		accounts    []users.User
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		submissions, err = h.artworks.All(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = h.users.All(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error("load stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stats"})
		return
	}

	stats := AdminStats{
		Users: len(accounts),
		// every submission, whatever its status
		Artworks: len(submissions),
	}
	for _, s := range submissions {
		if s.EffectiveStatus() == works.StatusPending {
			stats.Pending++
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ------------------------------
// GET /admin/pending
// ------------------------------
func (h *Handler) Pending(c *gin.Context) {
	all, err := h.artworks.All(c.Request.Context())
	if err != nil {
		h.log.Error("load submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load submissions"})
		return
	}

	pending := make([]works.Artwork, 0)
	for _, s := range all {
		if s.EffectiveStatus() == works.StatusPending {
			pending = append(pending, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": pending})
}

type moderateInput struct {
	ID request.ID `json:"id"`
}

// ------------------------------
// POST /admin/approve
// ------------------------------
func (h *Handler) Approve(c *gin.Context) {
	var input moderateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	adminID := c.GetInt("user_id")
	err := h.moderate(c, input.ID.Int(), func(a *works.Artwork) {
		a.Status = works.StatusApproved
		a.ApprovedAt = h.now().Format(time.RFC3339)
		a.ApprovedBy = adminID
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("artwork approved", zap.Int("id", input.ID.Int()), zap.Int("admin_id", adminID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Artwork approved"})
}

// ------------------------------
// POST /admin/reject
// ------------------------------
func (h *Handler) Reject(c *gin.Context) {
	var input moderateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}

	err := h.moderate(c, input.ID.Int(), func(a *works.Artwork) {
		a.Status = works.StatusRejected
		a.RejectedAt = h.now().Format(time.RFC3339)
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("artwork rejected", zap.Int("id", input.ID.Int()), zap.Int("admin_id", c.GetInt("user_id")))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission rejected"})
}

func (h *Handler) moderate(c *gin.Context, id int, apply func(*works.Artwork)) error {
	return h.artworks.Update(c.Request.Context(), func(list []works.Artwork) ([]works.Artwork, error) {
		for i := range list {
			if list[i].ID == id {
				apply(&list[i])
				return list, nil
			}
		}
		return nil, store.ErrNotFound
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Submission not found"})
		return
	}
	h.log.Error("update submissions", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save submissions"})
}
