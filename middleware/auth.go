package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/auth"
	apperrors "github.com/yashrajoria/streetwear-backend/common/errors"
	"github.com/yashrajoria/streetwear-backend/common/logger"
)

const (
	ActorContextKey    = "actor"
	AdminSessionCookie = "admin_session"
)

// ResolveActor attaches the caller, if any, to the request. It never rejects:
// gating is left to RequireAdmin and RequireActor.
func ResolveActor(sessions auth.SessionManager, identity *auth.IdentityVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var actor *auth.Actor

		if cookie, err := c.Cookie(AdminSessionCookie); err == nil && cookie != "" {
			actor = resolveSession(c, sessions, cookie, log)
		}

		if actor == nil {
			if token := bearerToken(c); token != "" {
				if identity.Enabled() {
					if a, err := identity.Verify(ctx, token); err == nil {
						actor = a
					} else if !errors.Is(err, auth.ErrInvalidSession) {
						logger.For(ctx, log).Warn("Identity lookup failed", zap.Error(err))
					}
				}
				if actor == nil {
					actor = resolveSession(c, sessions, token, log)
				}
			}
		}

		if actor != nil {
			c.Set(ActorContextKey, actor)
			c.Request = c.Request.WithContext(auth.WithActor(ctx, actor))
		}
		c.Next()
	}
}

func resolveSession(c *gin.Context, sessions auth.SessionManager, token string, log *zap.Logger) *auth.Actor {
	actor, err := sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidSession) {
			logger.For(c.Request.Context(), log).Warn("Session lookup failed", zap.Error(err))
		}
		return nil
	}
	return actor
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// GetActor returns the resolved actor, or nil.
func GetActor(c *gin.Context) *auth.Actor {
	if val, ok := c.Get(ActorContextKey); ok {
		if a, ok := val.(*auth.Actor); ok {
			return a
		}
	}
	return nil
}

// RequireAdmin rejects the request with a generic 401 unless the actor is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).IsAdmin() {
			apperrors.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireActor rejects anonymous requests.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetActor(c) == nil {
			apperrors.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
