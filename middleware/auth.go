// Package middleware contains any custom middleware used in the app
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vidshare/backend/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

func parseBearer(c *gin.Context, secret string) (userID, role string, err error) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "", errors.New("no token")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token")
	}

	userID, _ = claims["id"].(string)
	role, _ = claims["role"].(string)

	return userID, role, nil
}

// NewAuthMiddleware rejects requests without a valid bearer token and sets
// userID and role for the handlers downstream.
func NewAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication failed: No token was provided.",
			})
			return
		}

		userID, role, err := parseBearer(c, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication failed: Invalid token provided.",
			})

			zap.L().Debug("Rejected bearer token", zap.Error(err))
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// NewOptionalAuthMiddleware decodes a bearer token when one is present but
// never rejects the request. Reaction and view endpoints use it so that an
// authenticated identity wins over the (device, IP) fingerprint.
func NewOptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if userID, role, err := parseBearer(c, cfg.JWTSecret); err == nil {
				c.Set(CtxUserID, userID)
				c.Set(CtxRole, role)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after NewAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "You are not authorized to perform this action.",
			})
			return
		}
		c.Next()
	}
}
