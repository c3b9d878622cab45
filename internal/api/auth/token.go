package auth

import (
	"errors"
	"fmt"
	"time"

	"gallery-admin/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what the middleware puts on the request context.
type Claims struct {
	UserID int
	Email  string
	Role   string
}

// Tokens issues and checks the HS256 bearer tokens handed out at login.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(u users.User) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.EffectiveRole(),
		"exp":     t.now().Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (Claims, error) {
	if len(t.secret) == 0 {
		return Claims{}, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	if id, ok := mc["user_id"].(float64); ok {
		c.UserID = int(id)
	}
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if c.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
