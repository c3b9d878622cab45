package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookieName = "oauth_state"
)

type Google struct {
	oauth            *oauth2.Config
	frontendRedirect string
}

func NewGoogle(clientID, clientSecret, redirectURL, frontendRedirect string) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		frontendRedirect: frontendRedirect,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (g *Google) Start(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetCookie(stateCookieName, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Callback checks the state cookie, exchanges the code and verifies the ID
// token signature. It returns the verified email address.
func (g *Google) Callback(c *gin.Context) (string, error) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		return "", errors.New("missing code/state")
	}

	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || cookieState != state {
		return "", errors.New("invalid oauth state")
	}

	ctx := c.Request.Context()
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", errors.New("failed to exchange code")
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("missing id_token")
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return "", errors.New("failed to init google oidc provider")
	}
	idToken, err := provider.Verifier(&oidc.Config{ClientID: g.oauth.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return "", errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return "", errors.New("failed to decode token claims")
	}
	if claims.Email == "" || !claims.EmailVerified {
		return "", errors.New("google account has no verified email")
	}
	return claims.Email, nil
}
