package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/auth"
)

var admin = models.User{ID: "u-1", Name: "Admin User", Email: "admin@lockers.com", Role: models.RoleAdmin}

type fakeAuth struct {
	jwt       *auth.JWTService
	logouts   int
	logoutErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{jwt: auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "test"})}
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*dto.LoginResponse, error) {
	if email != admin.Email || password != "admin123" {
		return nil, apperrors.ErrInvalidCredentials
	}
	issued, err := f.jwt.GenerateToken(&admin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: issued.Token, TokenType: "Bearer", ExpiresAt: issued.ExpiresAt, User: admin}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestLoginPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "token"))
	h := NewHolder(newFakeAuth(), store, zerolog.Nop())

	user, err := h.Login(ctx, "admin@lockers.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", user.Name)
	assert.True(t, h.IsAuthenticated())
	assert.False(t, h.IsLoading())

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// a new process picks the session up without a server round trip
	restored := NewHolder(nil, store, zerolog.Nop())
	require.NoError(t, restored.Restore())
	require.NotNil(t, restored.CurrentUser())
	assert.Equal(t, admin.ID, restored.CurrentUser().ID)
	assert.Equal(t, models.RoleAdmin, restored.CurrentUser().Role)
	assert.Equal(t, h.Token(), restored.Token())
}

func TestLoginFailureKeepsLoggedOut(t *testing.T) {
	store := &MemoryStore{}
	h := NewHolder(newFakeAuth(), store, zerolog.Nop())

	_, err := h.Login(context.Background(), "admin@lockers.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.True(t, apperrors.IsAuthentication(err))
	assert.Nil(t, h.CurrentUser())
	assert.Empty(t, h.Token())

	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestLogoutAlwaysClears(t *testing.T) {
	ctx := context.Background()
	fa := newFakeAuth()
	fa.logoutErr = errors.New("network down")
	store := &MemoryStore{}
	h := NewHolder(fa, store, zerolog.Nop())

	_, err := h.Login(ctx, "admin@lockers.com", "admin123")
	require.NoError(t, err)

	h.Logout(ctx)
	assert.Equal(t, 1, fa.logouts)
	assert.False(t, h.IsAuthenticated())
	assert.Empty(t, h.Token())
	token, _ := store.Load()
	assert.Empty(t, token)

	// logging out twice does not bother the server
	h.Logout(ctx)
	assert.Equal(t, 1, fa.logouts)
}

func TestRestoreDiscardsGarbage(t *testing.T) {
	store := &MemoryStore{}
	require.NoError(t, store.Save("not-a-token"))

	h := NewHolder(nil, store, zerolog.Nop())
	require.NoError(t, h.Restore())
	assert.False(t, h.IsAuthenticated())
	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestFileStoreWithoutFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.NoError(t, store.Clear())
}
