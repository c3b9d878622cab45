package reports

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"gallery-admin/internal/api/request"
	"gallery-admin/internal/domain/reports"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxDetails caps the free-text part of a report.
const maxDetails = 2000

type Handler struct {
	reports  store.Collection[reports.Report]
	artworks store.Collection[works.Artwork]
	log      *zap.Logger
	now      func() time.Time
}

func NewHandler(list store.Collection[reports.Report], artworks store.Collection[works.Artwork], log *zap.Logger) *Handler {
	return &Handler{reports: list, artworks: artworks, log: log, now: time.Now}
}

// ------------------------------
// POST /reports
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var input struct {
		ArtworkID request.ID `json:"artwork_id"`
		Reason    string     `json:"reason"`
		Details   string     `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}
	details := strings.TrimSpace(input.Details)
	details = truncate(details, maxDetails)

	ctx := c.Request.Context()
	all, err := h.artworks.All(ctx)
	if err != nil {
		h.log.Error("load submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	published := false
	for _, a := range all {
		if a.ID == input.ArtworkID.Int() && a.IsApproved() {
			published = true
			break
		}
	}
	if !published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	var created reports.Report
	err = h.reports.Update(ctx, func(list []reports.Report) ([]reports.Report, error) {
		created = reports.Report{
			ID:        reports.NextID(list),
			ArtworkID: input.ArtworkID.Int(),
			UserID:    c.GetInt("user_id"),
			Reason:    reason,
			Details:   details,
			Status:    reports.StatusPending,
			CreatedAt: h.now().Format(time.RFC3339),
		}
		return append(list, created), nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("artwork reported", zap.Int("report_id", created.ID), zap.Int("artwork_id", created.ArtworkID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "report": created})
}

// ------------------------------
// GET /admin/reports
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	list, err := h.reports.All(c.Request.Context())
	if err != nil {
		h.log.Error("load reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load reports"})
		return
	}
	if list == nil {
		list = []reports.Report{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": list})
}

// ------------------------------
// POST /admin/reports/:id/resolve
// ------------------------------
func (h *Handler) Resolve(c *gin.Context) {
	id, ok := request.ParamID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid report id"})
		return
	}

	err := h.reports.Update(c.Request.Context(), func(list []reports.Report) ([]reports.Report, error) {
		i := reports.FindByID(list, id)
		if i < 0 {
			return nil, store.ErrNotFound
		}
		list[i].Status = reports.StatusResolved
		list[i].ResolvedAt = h.now().Format(time.RFC3339)
		return list, nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report resolved"})
}

// ------------------------------
// DELETE /admin/reports/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid report id"})
		return
	}

	err := h.reports.Update(c.Request.Context(), func(list []reports.Report) ([]reports.Report, error) {
		i := reports.FindByID(list, id)
		if i < 0 {
			return nil, store.ErrNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
		return
	}
	h.log.Error("update reports", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save reports"})
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
