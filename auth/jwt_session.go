package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yashrajoria/streetwear-backend/models"
)

const adminSessionType = "admin_session"

// UserLookup loads the current account behind a session.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// JWTSessionManager keeps sessions in HS256-signed tokens. With a UserLookup
// the role is re-read from the account on every Resolve, so a demoted admin
// loses access at once; without one the role in the token holds until exp.
type JWTSessionManager struct {
	secretKey []byte
	ttl       time.Duration
	users     UserLookup
	nowFunc   func() time.Time
}

func NewJWTSessionManager(secret string, ttl time.Duration) *JWTSessionManager {
	return &JWTSessionManager{secretKey: []byte(secret), ttl: ttl, nowFunc: time.Now}
}

// WithUserLookup enables the per-request account check.
func (m *JWTSessionManager) WithUserLookup(users UserLookup) *JWTSessionManager {
	m.users = users
	return m
}

func (m *JWTSessionManager) Issue(_ context.Context, user *models.User) (string, time.Time, error) {
	now := m.nowFunc()
	expiresAt := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"typ":   adminSessionType,
		"jti":   uuid.NewString(),
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *JWTSessionManager) Resolve(ctx context.Context, tokenStr string) (*Actor, error) {
	if tokenStr == "" {
		return nil, ErrInvalidSession
	}
	claims, err := parseHS256(tokenStr, m.secretKey)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if typ, _ := claims["typ"].(string); typ != adminSessionType {
		return nil, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidSession
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	if m.users != nil {
		user, err := m.users.FindByID(ctx, userID)
		if err != nil {
			return nil, ErrInvalidSession
		}
		email, role = user.Email, string(user.Role)
	}

	return &Actor{UserID: userID, Email: email, Role: models.Role(role), SessionToken: tokenStr}, nil
}

// Revoke is a no-op: a signed token stays valid until exp once issued.
// Logout clears the cookie; demotion is enforced through the UserLookup.
func (m *JWTSessionManager) Revoke(context.Context, string) error {
	return nil
}

func parseHS256(tokenStr string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
