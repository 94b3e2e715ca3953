package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
	"github.com/dmitrijs2005/sellegate/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
}

func newUserService(m *fakeRepoManager) *UserService {
	return NewUserService(nil, m, testConfig())
}

func TestUserService_Register(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	user, pair, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, pair)

	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsEvaluator)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("s3cret")))

	ident, err := auth.IdentityFromToken(pair.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)
	assert.False(t, ident.IsEvaluator)

	stored, err := m.refreshTokens.Find(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestUserService_RegisterEvaluatorFlag(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)

	user, pair, err := s.Register(context.Background(), "eve", "eve@example.com", "s3cret", true)
	require.NoError(t, err)
	assert.True(t, user.IsEvaluator)

	ident, err := auth.IdentityFromToken(pair.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	assert.True(t, ident.IsEvaluator)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	_, _, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)

	_, _, err = s.Register(ctx, "alice2", "alice@example.com", "s3cret", false)
	assert.ErrorIs(t, err, common.ErrorEmailTaken)
}

func TestUserService_Login(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	registered, _, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "alice@example.com", "s3cret", nil},
		{"wrong password", "alice@example.com", "nope", common.ErrorUnauthorized},
		{"unknown email", "bob@example.com", "s3cret", common.ErrorUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, pair, err := s.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)
		})
	}
}

func TestUserService_RefreshTokenRotation(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	_, pair, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)

	fresh, err := s.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// the old token is gone after rotation
	_, err = m.refreshTokens.Find(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = m.refreshTokens.Find(ctx, fresh.RefreshToken)
	assert.NoError(t, err)

	_, err = s.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserService_RefreshTokenExpired(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)

	require.NoError(t, m.refreshTokens.Create(ctx, user.ID, "stale", -time.Minute))

	_, err = s.RefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestUserService_RefreshTokenUnknown(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)

	_, err := s.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserService_UpdateProfile(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", true)
	require.NoError(t, err)

	bio := "vintage dealer"
	updated, err := s.UpdateProfile(ctx, user.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)

	// untouched fields survive a partial update
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "vintage dealer", updated.Bio)
	assert.True(t, updated.IsEvaluator)

	stored, err := m.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "vintage dealer", stored.Bio)
}

func TestUserService_UpdateProfileUnknownUser(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)

	name := "ghost"
	_, err := s.UpdateProfile(context.Background(), "missing", ProfileUpdate{Username: &name})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_GetUser(t *testing.T) {
	stubTx(t)
	m := newFakeRepoManager()
	s := newUserService(m)
	ctx := context.Background()

	user, _, err := s.Register(ctx, "alice", "alice@example.com", "s3cret", false)
	require.NoError(t, err)

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
