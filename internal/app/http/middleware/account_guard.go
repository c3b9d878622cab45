package middleware

import (
	"context"
	"net/http"

	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireActiveAccount re-reads the caller from the users collection so role
// changes and deactivations apply without waiting for the token to expire.
// It overwrites the "role" set from the token.
func RequireActiveAccount(list store.Collection[users.User], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		user, err := lookupUser(c.Request.Context(), list, userID)
		if err != nil {
			log.Error("load users", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
			return
		}
		if user == nil || !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Account not found or deactivated",
			})
			return
		}

		c.Set("role", user.EffectiveRole())
		c.Next()
	}
}

func lookupUser(ctx context.Context, list store.Collection[users.User], id int) (*users.User, error) {
	if id == 0 {
		return nil, nil
	}
	all, err := list.All(ctx)
	if err != nil {
		return nil, err
	}
	if i := users.FindByID(all, id); i >= 0 {
		return &all[i], nil
	}
	return nil, nil
}
