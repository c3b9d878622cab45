package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	authapi "gallery-admin/internal/api/auth"
	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/infra/jsonstore"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const submissions = `{"submissions": [
	{"id": 1, "user_id": 2, "title": "Harbour Lights", "type": "Painting", "status": "approved",
	 "location": "-33.86,151.21", "location_notes": "Sydney", "created_at": "2024-02-01 10:00:00"},
	{"id": 2, "user_id": 2, "title": "Pending Piece", "status": "pending"},
	{"id": 3, "user_id": 3, "title": "Red Dunes", "type": "Sculpture", "status": "approved",
	 "location_notes": "Alice Springs", "created_at": "2024-03-01"}
]}`

type env struct {
	dir    string
	router *gin.Engine
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	usersJSON, err := json.Marshal([]map[string]any{
		{"id": 1, "email": "admin@gallery.test", "password": string(hash), "role": "admin", "status": "active"},
		{"id": 2, "email": "ana@gallery.test", "password": string(hash), "role": "artist", "status": "active"},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.SubmissionsFile), []byte(submissions), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.UsersFile), usersJSON, 0o644))

	r := gin.New()
	RegisterRoutes(r, Server{
		Stores:          jsonstore.Open(dir, zap.NewNop()),
		Tokens:          authapi.NewTokens("test-secret", time.Hour),
		Listing:         listing.DefaultOptions(),
		ProtectedUserID: 1,
		Log:             zap.NewNop(),
	})
	return env{dir: dir, router: r}
}

func (e env) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e env) write(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, name), []byte(body), 0o644))
}

func (e env) login(t *testing.T, email string) string {
	t.Helper()
	return e.loginWith(t, email, "hunter22")
}

func (e env) loginWith(t *testing.T, email, password string) string {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	w := e.do(http.MethodPost, "/auth/login", "", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func TestPublicCollection(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/artworks?location=nsw", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res listing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Harbour Lights", res.Artworks[0].Title)

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/artworks/3", "", "").Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/artworks/2", "", "").Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/artworks/map", "", "").Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/health", "", "").Code)
}

func TestMissingSubmissionsFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.Remove(filepath.Join(e.dir, jsonstore.SubmissionsFile)))

	w := e.do(http.MethodGet, "/artworks", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Data file not found."}`, w.Body.String())
}

func TestAdminRequiresAdmin(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/admin/stats", "", "").Code)

	artist := e.login(t, "ana@gallery.test")
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/admin/stats", artist, "").Code)

	w := e.do(http.MethodGet, "/admin/session", artist, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"logged_in":true,"user_id":2,"role":"artist"}`, w.Body.String())
}

func TestModerationFlow(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin@gallery.test")

	w := e.do(http.MethodGet, "/admin/stats", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"stats":{"pending":1,"users":2,"artworks":3}}`, w.Body.String())

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/approve", admin, `{"id":2}`).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/artworks/2", "", "").Code, "approved work is public")

	raw, err := os.ReadFile(filepath.Join(e.dir, jsonstore.SubmissionsFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"approved_by": 1`)
}

func TestRoleChangeAppliesImmediately(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin@gallery.test")
	artist := e.login(t, "ana@gallery.test")

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/role", admin, `{"user_id":2,"role":"admin"}`).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/admin/stats", artist, "").Code, "old token, new role")

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/status", admin, `{"user_id":2,"status":"inactive"}`).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/admin/stats", artist, "").Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/auth/login", "", `{"email":"ana@gallery.test","password":"hunter22"}`).Code)
}

func TestCategoriesAndReports(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin@gallery.test")
	artist := e.login(t, "ana@gallery.test")

	w := e.do(http.MethodPost, "/admin/categories", admin, `{"name":"<b>Murals</b>"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Murals"`, "markup is stripped")

	w = e.do(http.MethodPost, "/reports", artist, `{"artwork_id":3,"reason":"wrong location"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(http.MethodPost, "/admin/reports/1/resolve", admin, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/admin/reports", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"resolved"`)
}

func TestDeleteUserCascades(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin@gallery.test")

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/admin/users/delete", admin, `{"user_id":1}`).Code)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/delete", admin, `{"user_id":2}`).Code)

	w := e.do(http.MethodGet, "/artworks", "", "")
	var res listing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	assert.Equal(t, 3, res.Artworks[0].ID)
}

func TestLooseSubmissionStillListed(t *testing.T) {
	e := newEnv(t)
	e.write(t, jsonstore.SubmissionsFile, `[
		{"id": 1, "title": "Plain", "status": "approved"},
		{"id": "2", "title": "Loose", "status": "approved", "location_sensitive": "1"},
		{"id": 3, "title": "Broken", "status": "approved", "images": "nope"},
		"garbage"
	]`)

	w := e.do(http.MethodGet, "/artworks", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res listing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Total)

	w = e.do(http.MethodGet, "/artworks/2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"location_sensitive":true`)
}

func TestModerationKeepsUnknownKeys(t *testing.T) {
	e := newEnv(t)
	e.write(t, jsonstore.SubmissionsFile, `[
		{"id": 1, "title": "Kept", "status": "pending", "medium": "oil on linen", "user_email": "ana@gallery.test"}
	]`)
	admin := e.login(t, "admin@gallery.test")

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/approve", admin, `{"id":1}`).Code)

	raw, err := os.ReadFile(filepath.Join(e.dir, jsonstore.SubmissionsFile))
	require.NoError(t, err)
	var onDisk []map[string]any
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 1)
	assert.Equal(t, "approved", onDisk[0]["status"])
	assert.Equal(t, "oil on linen", onDisk[0]["medium"])
	assert.Equal(t, "ana@gallery.test", onDisk[0]["user_email"])
}

func TestLoginPasswordIsNotSanitized(t *testing.T) {
	e := newEnv(t)
	const password = "fish&chips<b>"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	usersJSON, err := json.Marshal([]map[string]any{
		{"id": 1, "email": "admin@gallery.test", "password": string(hash), "role": "admin", "status": "active"},
	})
	require.NoError(t, err)
	e.write(t, jsonstore.UsersFile, string(usersJSON))

	admin := e.loginWith(t, "admin@gallery.test", password)

	w := e.do(http.MethodPost, "/admin/categories", admin, `{"name":"Oil & Acrylic"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Category catalog.Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Oil & Acrylic", res.Category.Name, "stored as typed, not entity-escaped")
}

func TestSessionReportsStoredRole(t *testing.T) {
	e := newEnv(t)
	admin := e.login(t, "admin@gallery.test")

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/role", admin, `{"user_id":2,"role":"admin"}`).Code)
	promoted := e.login(t, "ana@gallery.test")
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/role", admin, `{"user_id":2,"role":"artist"}`).Code)

	w := e.do(http.MethodGet, "/admin/session", promoted, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"logged_in":true,"user_id":2,"role":"artist"}`, w.Body.String())

	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/admin/users/status", admin, `{"user_id":2,"status":"inactive"}`).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/admin/session", promoted, "").Code)
}
