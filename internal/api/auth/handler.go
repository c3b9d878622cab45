package auth

import (
	"net/http"

	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	users  store.Collection[users.User]
	tokens *Tokens
	google *Google
	log    *zap.Logger
}

// NewHandler wires login and session routes. google may be nil when Google
// sign-in is not configured.
func NewHandler(list store.Collection[users.User], tokens *Tokens, google *Google, log *zap.Logger) *Handler {
	return &Handler{users: list, tokens: tokens, google: google, log: log}
}

// ------------------------------
// POST /auth/login
// ------------------------------
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.users.All(c.Request.Context())
	if err != nil {
		h.log.Error("load users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var user *users.User
	for i := range list {
		if list[i].MatchesLogin(input.Email) {
			user = &list[i]
			break
		}
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	tokenString, err := h.tokens.Issue(*user)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	h.log.Info("login", zap.Int("user_id", user.ID), zap.String("role", user.EffectiveRole()))
	c.JSON(http.StatusOK, gin.H{
		"token":   tokenString,
		"user_id": user.ID,
		"role":    user.EffectiveRole(),
	})
}

// ------------------------------
// GET /admin/session
// ------------------------------
func (h *Handler) Session(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"user_id":   userID,
		"role":      c.GetString("role"),
	})
}

// GoogleStart and GoogleCallback answer 404 when Google sign-in is off.
func (h *Handler) GoogleStart(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not enabled"})
		return
	}
	h.google.Start(c)
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not enabled"})
		return
	}

	email, err := h.google.Callback(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	list, err := h.users.All(c.Request.Context())
	if err != nil {
		h.log.Error("load users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	// Accounts are created through the gallery sign-up, never here.
	var user *users.User
	for i := range list {
		if list[i].Email != "" && list[i].MatchesLogin(email) {
			user = &list[i]
			break
		}
	}
	if user == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No gallery account for this Google account"})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	tokenString, err := h.tokens.Issue(*user)
	if err != nil {
		h.log.Error("issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	if h.google.frontendRedirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, h.google.frontendRedirect+"?token="+tokenString)
}
