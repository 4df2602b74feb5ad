package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// IdentityVerifier resolves identity-provider bearer tokens to local users,
// creating the local user the first time a subject is seen.
type IdentityVerifier struct {
	secretKey []byte
	users     repository.UserRepository
	logger    *zap.Logger
}

func NewIdentityVerifier(secret string, users repository.UserRepository, logger *zap.Logger) *IdentityVerifier {
	return &IdentityVerifier{secretKey: []byte(secret), users: users, logger: logger}
}

// Enabled reports whether a signing secret was configured.
func (v *IdentityVerifier) Enabled() bool {
	return v != nil && len(v.secretKey) > 0
}

// Verify validates the token and returns the matching actor. Roles always come
// from the local user row, never from token claims.
func (v *IdentityVerifier) Verify(ctx context.Context, tokenStr string) (*Actor, error) {
	if !v.Enabled() {
		return nil, ErrInvalidSession
	}
	claims, err := parseHS256(tokenStr, v.secretKey)
	if err != nil {
		return nil, ErrInvalidSession
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, ErrInvalidSession
	}
	name, _ := claims["name"].(string)

	user, err := v.users.FindByExternalID(ctx, sub)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = v.upsert(ctx, sub, strings.ToLower(email), name)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity user: %w", err)
	}

	return &Actor{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (v *IdentityVerifier) upsert(ctx context.Context, externalID, email, name string) (*models.User, error) {
	// An account created locally (e.g. an admin) is linked on first login.
	user, err := v.users.FindByEmail(ctx, email)
	if err == nil {
		user.ExternalID = &externalID
		if err := v.users.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		ExternalID: &externalID,
		Email:      email,
		Name:       name,
		Role:       models.RoleCustomer,
	}
	if err := v.users.Create(ctx, user); err != nil {
		return nil, err
	}
	v.logger.Info("Created user from identity provider", zap.String("user_id", user.ID.String()))
	return user, nil
}
