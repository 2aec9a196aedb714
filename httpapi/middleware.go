package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-catalog-sync/auth"
)

const identityKey = "httpapi.identity"

// bearerToken extracts the token from the Authorization header. A missing
// or malformed header yields an empty token, never a hard failure.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// resolveSession resolves the bearer token on every request and stashes the
// identity in the request context. Anonymous requests pass through; the
// per-route guards decide whether anonymity is acceptable.
func (r *Router) resolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		identity, ok, err := r.auth.Session(c.Request.Context(), token)
		if err != nil {
			r.writeError(c, err)
			c.Abort()
			return
		}
		if ok {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// identityFrom returns the resolved identity, if any.
func identityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

// requireSession rejects anonymous requests.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := identityFrom(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin rejects requests without an admin session.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if !identity.Admin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
