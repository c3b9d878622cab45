package middleware

import (
	"bytes"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
)

// verbatimFields are compared byte for byte later and must not be rewritten.
var verbatimFields = map[string]bool{"password": true}

// SanitizeAndCleanInputMiddleware strips markup from every top-level string
// field of a JSON body and stores the result as plain text. Empty bodies pass
// through untouched.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body map[string]interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			if str, ok := v.(string); ok && !verbatimFields[k] {
				body[k] = plainText(policy, str)
			}
		}

		newBody, err := json.Marshal(body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// plainText strips tags and undoes the entity escaping bluemonday applies, so
// "Oil & Acrylic" is stored as typed. Text that would turn back into markup
// keeps its escaped form.
func plainText(policy *bluemonday.Policy, s string) string {
	cleaned := policy.Sanitize(s)
	text := html.UnescapeString(cleaned)
	if strings.ContainsAny(text, "<>") {
		return cleaned
	}
	return text
}
