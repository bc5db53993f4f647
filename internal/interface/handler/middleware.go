package handler

import (
	"net/http"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
	userKey         = "user"
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID when given
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog logs one line per request
func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"requestId", c.GetString(requestIDKey))
	}
}

// AuthRequired loads the user named by the session cookie or aborts with 401
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(h.opts.SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			return
		}

		user, ok := h.resolveUser(c, token)
		if !ok {
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth loads the session user when a valid cookie is present and never rejects
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(h.opts.SessionCookie); err == nil && token != "" {
			if claims, err := h.sessions.Verify(token); err == nil {
				if user, err := h.users.FindByID(c.Request.Context(), claims.UserID); err == nil && user != nil {
					c.Set(userKey, user)
				}
			}
		}
		c.Next()
	}
}

// resolveUser returns (nil, true) for an invalid token and (nil, false) after aborting on a store error
func (h *Handler) resolveUser(c *gin.Context, token string) (*entity.User, bool) {
	claims, err := h.sessions.Verify(token)
	if err != nil {
		return nil, true
	}

	user, err := h.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Failed to load session user", "userId", claims.UserID, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return nil, false
	}
	return user, true
}

// RequireRole aborts with 403 unless the session user has one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}
