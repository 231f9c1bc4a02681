package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/auth"
	"github.com/yigit/lockersys/internal/pkg/tokenstore"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "lockersys"})
	svc, err := NewAuthService(
		[]Account{{Name: "Admin User", Email: "admin@lockers.com", Password: "admin123"}},
		jwtService, tokenstore.NewMemoryRegistry(), zerolog.Nop(),
	)
	require.NoError(t, err)
	return svc
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "Admin@Lockers.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, "Admin User", resp.User.Name)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	me, err := svc.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, me.ID)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = svc.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@lockers.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@lockers.com", Password: "admin123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "", Password: "admin123"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	a, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@lockers.com", Password: "admin123"})
	require.NoError(t, err)
	b, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@lockers.com", Password: "admin123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, a.Token)
	require.NoError(t, err)
	require.NoError(t, svc.LogoutAll(ctx, claims))

	_, err = svc.ValidateToken(ctx, b.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
