package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "lockersys.test"})
}

var admin = &models.User{ID: "1", Name: "Admin User", Email: "admin@lockers.com", Role: models.RoleAdmin}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()

	issued, err := svc.GenerateToken(admin)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, "Admin User", claims.User().Name)
	assert.Equal(t, models.RoleAdmin, claims.User().Role)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	issued, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	other := NewJWTService(JWTConfig{SecretKey: "another-secret", TokenExp: time.Hour, TokenIssuer: "lockersys.test"})
	issued, err := other.GenerateToken(admin)
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = newTestService().ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestParseUnverifiedRestoresIdentity(t *testing.T) {
	issued, err := newTestService().GenerateToken(admin)
	require.NoError(t, err)

	claims, err := ParseUnverified(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@lockers.com", claims.User().Email)

	_, err = ParseUnverified("mock_jwt_token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = ExtractBearerToken("Basic Zm9vOmJhcg==")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = 12 })

	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
}
