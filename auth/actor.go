package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/yashrajoria/streetwear-backend/models"
)

// Actor is the caller resolved once per request.
type Actor struct {
	UserID       uuid.UUID   `json:"user_id"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	SessionToken string      `json:"-"`
}

// IsAdmin reports whether the actor may use admin routes.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

type actorCtxKey struct{}

// WithActor stores the actor on ctx.
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, a)
}

// FromContext returns the actor stored on ctx, or nil.
func FromContext(ctx context.Context) *Actor {
	a, _ := ctx.Value(actorCtxKey{}).(*Actor)
	return a
}
