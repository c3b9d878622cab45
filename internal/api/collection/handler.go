package collection

import (
	"errors"
	"net/http"

	"gallery-admin/internal/api/request"
	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/domain/mapview"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	artworks store.Collection[works.Artwork]
	opts     listing.Options
	log      *zap.Logger
}

func NewHandler(artworks store.Collection[works.Artwork], opts listing.Options, log *zap.Logger) *Handler {
	return &Handler{artworks: artworks, opts: opts, log: log}
}

// snapshot answers the error itself and returns ok=false when the
// submissions could not be read.
func (h *Handler) snapshot(c *gin.Context) ([]works.Artwork, bool) {
	all, err := h.artworks.All(c.Request.Context())
	if err == nil {
		return all, true
	}
	if errors.Is(err, store.ErrUnavailable) {
		h.log.Error("submissions unavailable", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Data file not found."})
		return nil, false
	}
	h.log.Error("load submissions", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
	return nil, false
}

// ------------------------------
// GET /artworks
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	all, ok := h.snapshot(c)
	if !ok {
		return
	}
	q := listing.ParseQuery(c.Request.URL.Query())
	c.JSON(http.StatusOK, listing.Run(all, q, h.opts))
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork id"})
		return
	}

	all, ok := h.snapshot(c)
	if !ok {
		return
	}
	for _, a := range all {
		if a.ID == id && a.IsApproved() {
			c.JSON(http.StatusOK, a)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
}

// ------------------------------
// GET /artworks/map
// ------------------------------
func (h *Handler) Map(c *gin.Context) {
	all, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"markers": mapview.Markers(all)})
}
