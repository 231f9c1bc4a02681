package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/bootstrap"
	"github.com/yigit/lockersys/internal/config"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/lockersys/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	pkgAuth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type tokenBox struct{ token string }

func (b *tokenBox) Token() string { return b.token }

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageMemory
	cfg.Storage.Seed = true
	cfg.JWT.Secret = "client-test-secret"
	cfg.JWT.TokenExpiration = "1h"
	cfg.JWT.Issuer = "lockersys"
	cfg.Auth.AdminEmail = "admin@lockers.com"
	cfg.Auth.AdminName = "Admin User"
	cfg.Auth.AdminPassword = "admin123"
	cfg.Cache.StatsTTL = time.Minute

	app, err := bootstrap.Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return srv
}

func TestLoginAndBrowse(t *testing.T) {
	srv := newServer(t)
	box := &tokenBox{}
	c := New(srv.URL, WithTokenSource(box))
	ctx := context.Background()

	_, err := c.Login(ctx, "admin@lockers.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, "invalid credentials", apperrors.Message(err))

	_, err = c.Students().List(ctx, 1, 10)
	assert.True(t, apperrors.IsAuthentication(err))

	resp, err := c.Login(ctx, "ADMIN@lockers.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	box.token = resp.Token

	students, err := c.Students().List(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, students.TotalCount)

	rentals, err := c.Rentals().List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, rentals.Items, 1)
	require.NotNil(t, rentals.Items[0].Student)
	assert.Equal(t, "João Silva", rentals.Items[0].Student.Name)

	stats, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ActiveRentals)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@lockers.com", me.Email)

	require.NoError(t, c.Logout(ctx))
	_, err = c.Lockers().List(ctx, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestCrudErrorsAreClassified(t *testing.T) {
	srv := newServer(t)
	box := &tokenBox{}
	c := New(srv.URL, WithTokenSource(box))
	ctx := context.Background()

	resp, err := c.Login(ctx, "admin@lockers.com", "admin123")
	require.NoError(t, err)
	box.token = resp.Token

	locker, err := c.Lockers().Create(ctx, &dto.CreateLockerRequest{
		Number: "B010", Location: "Bloco B - Térreo", Size: models.LockerSmall, MonthlyPrice: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LockerAvailable, locker.Status)

	price := 175.0
	updated, err := c.Lockers().Update(ctx, locker.ID, &dto.UpdateLockerRequest{MonthlyPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 175.0, updated.MonthlyPrice)
	assert.Equal(t, "B010", updated.Number)

	require.NoError(t, c.Lockers().Delete(ctx, locker.ID))
	err = c.Lockers().Delete(ctx, locker.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = c.Lockers().Get(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = c.Students().Create(ctx, &dto.CreateStudentRequest{Name: "No Email"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = c.Students().Create(ctx, &dto.CreateStudentRequest{
		Name: "Clone", Email: "clone@university.edu", StudentID: "stu2024001", Course: "Direito", Semester: 1,
	})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestTransportFailures(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer broken.Close()

	_, err := New(broken.URL).DashboardStats(context.Background())
	assert.Equal(t, apperrors.KindService, apperrors.KindOf(err))

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	_, err = New(url).Me(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrServiceFailure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(broken.URL).Students().List(ctx, 1, 10)
	assert.True(t, apperrors.IsCanceled(err))
}
