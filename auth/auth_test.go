package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/auth"
	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

var admin = &models.User{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}

func TestJWTSessionManager_RoundTrip(t *testing.T) {
	m := auth.NewJWTSessionManager("test-secret", time.Hour)

	token, expiresAt, err := m.Issue(context.Background(), admin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	actor, err := m.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, actor.UserID)
	assert.True(t, actor.IsAdmin())
	assert.Equal(t, token, actor.SessionToken)
}

func TestJWTSessionManager_Rejects(t *testing.T) {
	m := auth.NewJWTSessionManager("test-secret", time.Hour)
	token, _, err := m.Issue(context.Background(), admin)
	require.NoError(t, err)

	other := auth.NewJWTSessionManager("other-secret", time.Hour)
	_, err = other.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	expired := auth.NewJWTSessionManager("test-secret", -time.Minute)
	old, _, err := expired.Issue(context.Background(), admin)
	require.NoError(t, err)
	_, err = m.Resolve(context.Background(), old)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": admin.ID.String(), "role": "admin", "typ": "access", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := wrongType.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Resolve(context.Background(), signed)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	_, err = m.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestJWTSessionManager_RechecksAccountRole(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	m := auth.NewJWTSessionManager("test-secret", time.Hour).WithUserLookup(users)

	token, _, err := m.Issue(ctx, admin)
	require.NoError(t, err)

	demoted := *admin
	demoted.Role = models.RoleCustomer
	users.On("FindByID", ctx, admin.ID).Return(admin, nil).Once()
	users.On("FindByID", ctx, admin.ID).Return(&demoted, nil).Once()
	users.On("FindByID", ctx, admin.ID).Return(nil, repository.ErrNotFound).Once()

	actor, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())

	actor, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, actor.IsAdmin())

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
	users.AssertExpectations(t)
}

type fakeSessionStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeSessionStore) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeSessionStore) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := value.([]byte); ok {
		f.data[key] = string(b)
	} else {
		f.data[key] = fmt.Sprint(value)
	}
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeSessionStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisSessionManager_IssueResolveRevoke(t *testing.T) {
	store := newFakeSessionStore()
	m := auth.NewRedisSessionManager(store, 2*time.Hour)
	ctx := context.Background()

	token, _, err := m.Issue(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, store.ttls["session:admin:"+token])

	actor, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, actor.Email)
	assert.True(t, actor.IsAdmin())

	require.NoError(t, m.Revoke(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	_, err = m.Resolve(ctx, "never-issued")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func identityToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIdentityVerifier_CreatesCustomerOnFirstSight(t *testing.T) {
	repo := new(MockUserRepository)
	v := auth.NewIdentityVerifier("idp-secret", repo, zap.NewNop())

	repo.On("FindByExternalID", mock.Anything, "idp|123").Return(nil, repository.ErrNotFound)
	repo.On("FindByEmail", mock.Anything, "riya@example.com").Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleCustomer && *u.ExternalID == "idp|123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = uuid.New()
	}).Return(nil)

	token := identityToken(t, "idp-secret", jwt.MapClaims{
		"sub": "idp|123", "email": "Riya@Example.com", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	actor, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, actor.Role)
	assert.False(t, actor.IsAdmin())
	repo.AssertExpectations(t)
}

func TestIdentityVerifier_UsesStoredRole(t *testing.T) {
	repo := new(MockUserRepository)
	v := auth.NewIdentityVerifier("idp-secret", repo, zap.NewNop())
	repo.On("FindByExternalID", mock.Anything, "idp|9").Return(admin, nil)

	token := identityToken(t, "idp-secret", jwt.MapClaims{
		"sub": "idp|9", "email": admin.Email, "exp": time.Now().Add(time.Hour).Unix(),
	})
	actor, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
}

func TestIdentityVerifier_DisabledWithoutSecret(t *testing.T) {
	v := auth.NewIdentityVerifier("", new(MockUserRepository), zap.NewNop())
	assert.False(t, v.Enabled())
	_, err := v.Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestPasswords(t *testing.T) {
	hash, err := auth.HashPassword("Str0ng!Passw0rd")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "Str0ng!Passw0rd"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
	assert.False(t, auth.CheckPassword("", "anything"))

	assert.NoError(t, auth.ValidatePasswordStrength("Str0ng!Passw0rd"))
	assert.ErrorIs(t, auth.ValidatePasswordStrength("short"), auth.ErrPasswordTooShort)
	assert.ErrorIs(t, auth.ValidatePasswordStrength("alllowercase123"), auth.ErrPasswordTooWeak)
}

func TestActorContext(t *testing.T) {
	assert.Nil(t, auth.FromContext(context.Background()))
	ctx := auth.WithActor(context.Background(), &auth.Actor{Role: models.RoleAdmin})
	assert.True(t, auth.FromContext(ctx).IsAdmin())
	var nilActor *auth.Actor
	assert.False(t, nilActor.IsAdmin())
}
