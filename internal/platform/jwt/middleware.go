// Package jwtmw provides JWT bearer-token authentication for gin routes.
package jwtmw

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSubject is the gin context key holding the token's "sub" claim as a string.
const ContextSubject = "subject"

// AuthRequired returns a Gin middleware that validates HMAC-signed bearer tokens
// against secret and restricts access to authenticated callers only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Server misconfiguration (JWT_SECRET not set)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature (only HMAC allowed)
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Extract the subject; numeric IDs are decoded as float64
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			switch sub := claims["sub"].(type) {
			case string:
				c.Set(ContextSubject, sub)
			case float64:
				c.Set(ContextSubject, strconv.FormatUint(uint64(sub), 10))
			}
		}
		c.Next()
	}
}

// Subject returns the authenticated subject set by AuthRequired, or "" if absent.
func Subject(c *gin.Context) string {
	return c.GetString(ContextSubject)
}
