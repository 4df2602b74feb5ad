package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajoria/streetwear-backend/config"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AUTH_MODE", "")
	t.Setenv("ORDER_STATUS_POLICY", "")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com/, https://admin.example.com")
	t.Setenv("ADMIN_SESSION_TTL", "2h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.AuthModeJWT, cfg.AuthMode)
	assert.Equal(t, config.StatusPolicyPermissive, cfg.OrderStatusPolicy)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			PostgresUser:      "store",
			PostgresPassword:  "secret",
			PostgresDB:        "store",
			PostgresHost:      "localhost",
			AuthMode:          config.AuthModeJWT,
			JWTSecret:         "signing-key",
			OrderStatusPolicy: config.StatusPolicyStrict,
		}
	}

	assert.NoError(t, base().Validate())

	noDB := base()
	noDB.PostgresPassword = ""
	assert.EqualError(t, noDB.Validate(), "database config incomplete")

	noSecret := base()
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	session := base()
	session.AuthMode = config.AuthModeSession
	session.JWTSecret = ""
	assert.NoError(t, session.Validate())

	badPolicy := base()
	badPolicy.OrderStatusPolicy = "chaotic"
	assert.Error(t, badPolicy.Validate())
}

func TestApplySecrets(t *testing.T) {
	cfg := &config.Config{PostgresUser: "env-user", PostgresHost: "env-host", JWTSecret: "env-secret"}

	cfg.ApplySecrets(context.Background(), fakeSecrets{
		"streetwear/DB_CREDENTIALS": `{"POSTGRES_USER":"sm-user","POSTGRES_PASSWORD":"sm-pass"}`,
		"streetwear/JWT_SECRET":     " sm-secret\n",
	})

	assert.Equal(t, "sm-user", cfg.PostgresUser)
	assert.Equal(t, "sm-pass", cfg.PostgresPassword)
	assert.Equal(t, "env-host", cfg.PostgresHost)
	assert.Equal(t, "sm-secret", cfg.JWTSecret)
}
