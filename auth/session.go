package auth

import (
	"context"
	"errors"
	"time"

	"github.com/yashrajoria/streetwear-backend/models"
)

// ErrInvalidSession is returned for any missing, expired, tampered or revoked
// session token. Callers must not expose which of these it was.
var ErrInvalidSession = errors.New("invalid session")

// SessionManager issues and resolves admin sessions.
type SessionManager interface {
	Issue(ctx context.Context, user *models.User) (token string, expiresAt time.Time, err error)
	Resolve(ctx context.Context, token string) (*Actor, error)
	Revoke(ctx context.Context, token string) error
}
