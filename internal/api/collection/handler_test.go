package collection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failing struct{ err error }

func (f failing) All(context.Context) ([]works.Artwork, error) { return nil, f.err }
func (f failing) Replace(context.Context, []works.Artwork) error { return f.err }
func (f failing) Update(context.Context, func([]works.Artwork) ([]works.Artwork, error)) error {
	return f.err
}

func fixture() []works.Artwork {
	return []works.Artwork{
		{ID: 1, Title: "Harbour", Type: "Painting", Status: works.StatusApproved, Location: "-33.86,151.21", ImageURL: "/img/1.jpg", CreatedAt: "2024-01-05"},
		{ID: 2, Title: "Dunes", Type: "Sculpture", Status: works.StatusApproved, Location: "-34.93,138.60", LocationSensitive: true, LocationNotes: "Near Adelaide", CreatedAt: "2024-03-01"},
		{ID: 3, Title: "Hidden", Status: works.StatusApproved, Location: "-31.95,115.86", LocationSensitive: true},
		{ID: 4, Title: "Queued", Status: works.StatusPending, Location: "-27.47,153.03"},
	}
}

func newRouter(artworks store.Collection[works.Artwork]) *gin.Engine {
	h := NewHandler(artworks, listing.DefaultOptions(), zap.NewNop())
	r := gin.New()
	r.GET("/artworks", h.List)
	r.GET("/artworks/map", h.Map)
	r.GET("/artworks/:id", h.Get)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestList(t *testing.T) {
	r := newRouter(store.NewMemory(fixture()...))

	w := get(r, "/artworks?sort=date-oldest&limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var res listing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	require.Len(t, res.Artworks, 2)
	assert.Equal(t, 3, res.Artworks[0].ID, "missing date sorts as the epoch")

	w = get(r, "/artworks?keyword=dun")
	var found listing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found.Artworks, 1)
	assert.Equal(t, 2, found.Artworks[0].ID)
}

func TestList_Empty(t *testing.T) {
	w := get(newRouter(store.NewMemory[works.Artwork]()), "/artworks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"total_pages":0,"current_page":1,"limit":8,"artworks":[]}`, w.Body.String())
}

func TestList_Unavailable(t *testing.T) {
	r := newRouter(failing{err: fmt.Errorf("open submissions: %w", store.ErrUnavailable)})
	w := get(r, "/artworks")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Data file not found."}`, w.Body.String())

	w = get(newRouter(failing{err: errors.New("disk on fire")}), "/artworks")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to load artworks"}`, w.Body.String())
}

func TestGet(t *testing.T) {
	r := newRouter(store.NewMemory(fixture()...))

	w := get(r, "/artworks/1")
	require.Equal(t, http.StatusOK, w.Code)
	var a works.Artwork
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, "Harbour", a.Title)

	assert.Equal(t, http.StatusNotFound, get(r, "/artworks/4").Code, "pending is hidden")
	assert.Equal(t, http.StatusNotFound, get(r, "/artworks/99").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/artworks/abc").Code)
}

func TestMap(t *testing.T) {
	w := get(newRouter(store.NewMemory(fixture()...)), "/artworks/map")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Markers []map[string]any `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Markers, 2)

	assert.Equal(t, "pin", body.Markers[0]["kind"])
	assert.Equal(t, "/img/1.jpg", body.Markers[0]["image_url"])

	assert.Equal(t, "area", body.Markers[1]["kind"])
	assert.Equal(t, "Near Adelaide", body.Markers[1]["general_area"])
	assert.EqualValues(t, 50000, body.Markers[1]["radius_m"])
	assert.NotContains(t, body.Markers[1], "image_url")
}
