package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
	ContextTokenID   = "tokenID"
	ContextIsOwner   = "isOwner"
)

// SessionFinder confirms a token's session row still exists.
type SessionFinder interface {
	FindActive(ctx context.Context, tokenID string, now time.Time) (*models.Session, error)
}

func AuthMiddleware(cfg *config.Config, tokens *auth.TokenIssuer, sessions SessionFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c, cfg.SessionCookie)
		if raw == "" {
			httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", "Authentication required.")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			rejectToken(c)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			rejectToken(c)
			return
		}

		s, err := sessions.FindActive(c.Request.Context(), claims.ID, time.Now())
		if err != nil {
			if !httperr.IsBusiness(err, "session_not_found") {
				logger.Log.Error("session lookup failed", zap.Error(err))
			}
			rejectToken(c)
			return
		}
		if s.UserID != userID {
			rejectToken(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextIsOwner, claims.Role == models.RoleAdmin && cfg.IsOwner(claims.Email))

		c.Next()
	}
}

// tokenFromRequest prefers the Authorization header, then the session cookie.
func tokenFromRequest(c *gin.Context, cookie string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if v, err := c.Cookie(cookie); err == nil {
		return v
	}
	return ""
}

// RequireRole runs after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "You do not have access to this resource.")
	}
}

// Actor reads the authenticated caller set by AuthMiddleware.
func Actor(c *gin.Context) (actor.Actor, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return actor.Actor{}, false
	}
	userID, ok := id.(uint)
	if !ok {
		return actor.Actor{}, false
	}

	return actor.Actor{
		UserID:  userID,
		Role:    c.GetString(ContextUserRole),
		Email:   c.GetString(ContextUserEmail),
		IsOwner: c.GetBool(ContextIsOwner),
	}, true
}

func rejectToken(c *gin.Context) {
	httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Session is invalid or expired.")
}
