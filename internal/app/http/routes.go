package routes

import (
	"net/http"

	adminapi "gallery-admin/internal/api/admin"
	authapi "gallery-admin/internal/api/auth"
	categoriesapi "gallery-admin/internal/api/categories"
	"gallery-admin/internal/api/collection"
	reportsapi "gallery-admin/internal/api/reports"
	usersapi "gallery-admin/internal/api/users"
	"gallery-admin/internal/app/http/middleware"
	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is everything the HTTP layer needs from main.
type Server struct {
	Stores  store.Stores
	Tokens  *authapi.Tokens
	Google  *authapi.Google // nil disables Google sign-in
	Listing listing.Options
	// ProtectedUserID can never be deleted through the admin API.
	ProtectedUserID int
	Log             *zap.Logger
}

func RegisterRoutes(r *gin.Engine, s Server) {
	var (
		auth       = authapi.NewHandler(s.Stores.Users, s.Tokens, s.Google, s.Log)
		artworks   = collection.NewHandler(s.Stores.Artworks, s.Listing, s.Log)
		moderation = adminapi.NewHandler(s.Stores.Artworks, s.Stores.Users, s.Log)
		accounts   = usersapi.NewHandler(s.Stores.Users, s.Stores.Artworks, s.ProtectedUserID, s.Log)
		categories = categoriesapi.NewHandler(s.Stores.Categories, s.Log)
		reports    = reportsapi.NewHandler(s.Stores.Reports, s.Stores.Artworks, s.Log)

		authenticate = middleware.AuthMiddleware(s.Tokens)
		activeOnly   = middleware.RequireActiveAccount(s.Stores.Users, s.Log)
		sanitize     = middleware.SanitizeAndCleanInputMiddleware()
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/artworks", artworks.List)
	r.GET("/artworks/map", artworks.Map)
	r.GET("/artworks/:id", artworks.Get)

	public := r.Group("/")
	public.Use(sanitize)
	public.POST("/auth/login", auth.Login)
	public.GET("/auth/google", auth.GoogleStart)
	public.GET("/auth/google/callback", auth.GoogleCallback)

	// Authenticated
	member := r.Group("/")
	member.Use(authenticate, activeOnly, sanitize)
	member.GET("/me", accounts.Me)
	member.POST("/reports", reports.Create)

	// The dashboard asks for the session before it knows the role. The role
	// comes from the stored account, not the token.
	r.GET("/admin/session", authenticate, activeOnly, auth.Session)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(authenticate, activeOnly, middleware.RequireRole(users.RoleAdmin), sanitize)
	admin.GET("/stats", moderation.Stats)
	admin.GET("/pending", moderation.Pending)
	admin.POST("/approve", moderation.Approve)
	admin.POST("/reject", moderation.Reject)

	admin.GET("/users", accounts.List)
	admin.POST("/users/role", accounts.UpdateRole)
	admin.POST("/users/status", accounts.UpdateStatus)
	admin.POST("/users/delete", accounts.Delete)

	admin.GET("/categories", categories.List)
	admin.POST("/categories", categories.Add)
	admin.POST("/categories/update", categories.Rename)
	admin.POST("/categories/delete", categories.Delete)

	admin.GET("/reports", reports.List)
	admin.POST("/reports/:id/resolve", reports.Resolve)
	admin.DELETE("/reports/:id", reports.Delete)
}
