package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/common/logger"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

// LoginResult is a freshly issued admin session.
type LoginResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// AdminAuthService handles admin login sessions and account creation.
type AdminAuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, *ServiceError)
	Logout(ctx context.Context, token string) *ServiceError
	Session(ctx context.Context, actor *auth.Actor) (*models.User, *ServiceError)
	CreateAdmin(ctx context.Context, email, name, password string) (*models.User, *ServiceError)
}

type adminAuthServiceImpl struct {
	users    repository.UserRepository
	sessions auth.SessionManager
	logger   *zap.Logger
}

func NewAdminAuthService(users repository.UserRepository, sessions auth.SessionManager, logger *zap.Logger) AdminAuthService {
	return &adminAuthServiceImpl{users: users, sessions: sessions, logger: logger}
}

func invalidCredentials() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
}

// Login answers every failure with the same message so accounts cannot be
// enumerated.
func (s *adminAuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, *ServiceError) {
	log := logger.For(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error("Failed to look up admin", zap.Error(err))
			return nil, internal(err)
		}
		metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
		return nil, invalidCredentials()
	}
	if user.Role != models.RoleAdmin || !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		log.Info("Admin login rejected", zap.String("user_id", user.ID.String()))
		return nil, invalidCredentials()
	}

	token, expiresAt, err := s.sessions.Issue(ctx, user)
	if err != nil {
		log.Error("Failed to issue admin session", zap.Error(err))
		return nil, internal(err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info("Admin logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *adminAuthServiceImpl) Logout(ctx context.Context, token string) *ServiceError {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return internal(err)
	}
	return nil
}

func (s *adminAuthServiceImpl) Session(ctx context.Context, actor *auth.Actor) (*models.User, *ServiceError) {
	if !actor.IsAdmin() {
		return nil, unauthorized()
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized()
		}
		return nil, internal(err)
	}
	return user, nil
}

// CreateAdmin creates an admin account, or promotes an existing user and
// resets their password.
func (s *adminAuthServiceImpl) CreateAdmin(ctx context.Context, email, name, password string) (*models.User, *ServiceError) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, badRequest("Email is required")
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return nil, badRequest(err.Error())
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, internal(err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user.Role = models.RoleAdmin
		user.PasswordHash = hash
		if name != "" {
			user.Name = name
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, internal(err)
		}
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{Email: email, Name: name, Role: models.RoleAdmin, PasswordHash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, internal(err)
		}
	default:
		return nil, internal(err)
	}
	return user, nil
}
