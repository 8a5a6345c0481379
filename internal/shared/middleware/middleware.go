package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"flowdesk/internal/session"
	"flowdesk/internal/shared/config"
	"flowdesk/internal/shared/utils/response"
	"flowdesk/internal/users"
	"flowdesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	RequestIDHeader    = "X-Request-ID"
)

// SessionVerifier resolves the cookie pair into a session outcome
type SessionVerifier interface {
	Verify(ctx context.Context, accessToken, refreshToken string) (session.Outcome, error)
}

// SessionAuth resolves the session cookies on every request.
// Anonymous requests continue; route groups decide whether to admit them.
func SessionAuth(verifier SessionVerifier, cookies config.CookieConfig, accessTTL time.Duration, l *logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.GetDefault()
	}

	return func(c *gin.Context) {
		accessToken, _ := c.Cookie(AccessTokenCookie)
		refreshToken, _ := c.Cookie(RefreshTokenCookie)

		outcome, err := verifier.Verify(c.Request.Context(), accessToken, refreshToken)
		if err != nil {
			l.LogHTTPError(c, err, http.StatusInternalServerError)
			abortWithSessionError(c, err)
			return
		}

		if outcome.Reissue() {
			c.SetSameSite(cookies.SameSite)
			c.SetCookie(AccessTokenCookie, outcome.AccessToken, int(accessTTL.Seconds()),
				cookies.Path, cookies.Domain, cookies.Secure, true)
		}

		session.SetPrincipal(c, outcome.Principal)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401
func RequireAuth(l *logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.GetDefault()
	}

	return func(c *gin.Context) {
		p, _ := session.CurrentPrincipal(c)
		if err := session.Authenticate(p); err != nil {
			l.LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			abortWithSessionError(c, err)
			return
		}
		c.Next()
	}
}

// RequireRole runs the authorization gate; any denial is a 403
func RequireRole(requiredRole users.Role, l *logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.GetDefault()
	}

	return func(c *gin.Context) {
		p, _ := session.CurrentPrincipal(c)

		if err := session.Authorize(p, requiredRole).Err(); err != nil {
			userID := ""
			if p != nil {
				userID = p.ID
			}
			l.LogAccessDenied(c.Request.Context(), userID, string(requiredRole), c.FullPath())
			abortWithSessionError(c, err)
			return
		}

		c.Next()
	}
}

// RequireAdmin middleware that requires admin role
func RequireAdmin(l *logger.Logger) gin.HandlerFunc {
	return RequireRole(users.RoleAdmin, l)
}

// abortWithSessionError maps session sentinels onto their status codes
func abortWithSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		response.AbortWithError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, session.ErrForbidden):
		response.AbortWithError(c, http.StatusForbidden, "Not authorized")
	default:
		response.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// RequestID propagates X-Request-ID or assigns a new one. The ID is stored on
// both the gin context and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// SecurityHeaders sets the browser hardening headers on every response
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

// RequestLogger logs every request after it completes
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
