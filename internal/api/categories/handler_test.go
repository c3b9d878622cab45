package categories

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(existing ...catalog.Category) (*gin.Engine, *store.Memory[catalog.Category]) {
	list := store.NewMemory(existing...)
	h := NewHandler(list, zap.NewNop())
	h.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/admin/categories", h.List)
	r.POST("/admin/categories", h.Add)
	r.POST("/admin/categories/update", h.Rename)
	r.POST("/admin/categories/delete", h.Delete)
	return r, list
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList_Empty(t *testing.T) {
	r, _ := setup()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"categories":[]}`, w.Body.String())
}

func TestAdd(t *testing.T) {
	r, list := setup(catalog.Category{ID: 4, Name: "Murals"})

	w := post(r, "/admin/categories", `{"name":"  Prints "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Category added",
		"category":{"id":5,"name":"Prints","created_at":"2025-06-01 09:30:00"}}`, w.Body.String())

	all, _ := list.All(context.Background())
	assert.Len(t, all, 2)

	w = post(r, "/admin/categories", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Category name is required"}`, w.Body.String())
}

func TestAdd_FirstGetsOne(t *testing.T) {
	r, _ := setup()
	w := post(r, "/admin/categories", `{"name":"Sculpture"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
}

func TestRename(t *testing.T) {
	r, list := setup(catalog.Category{ID: 1, Name: "Mural"})

	require.Equal(t, http.StatusOK, post(r, "/admin/categories/update", `{"id":"1","name":"Murals"}`).Code)
	all, _ := list.All(context.Background())
	assert.Equal(t, "Murals", all[0].Name)

	assert.Equal(t, http.StatusBadRequest, post(r, "/admin/categories/update", `{"id":1,"name":""}`).Code)
	assert.Equal(t, http.StatusNotFound, post(r, "/admin/categories/update", `{"id":7,"name":"X"}`).Code)
}

func TestDelete(t *testing.T) {
	r, list := setup(catalog.Category{ID: 1, Name: "A"}, catalog.Category{ID: 2, Name: "B"})

	require.Equal(t, http.StatusOK, post(r, "/admin/categories/delete", `{"id":1}`).Code)
	all, _ := list.All(context.Background())
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)

	w := post(r, "/admin/categories/delete", `{"id":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Category not found"}`, w.Body.String())
}
