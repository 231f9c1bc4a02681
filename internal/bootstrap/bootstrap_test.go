package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/yigit/lockersys/internal/config"
	pkgAuth "github.com/yigit/lockersys/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	pkgAuth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageMemory
	cfg.Storage.Seed = true
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TokenExpiration = "1h"
	cfg.JWT.Issuer = "lockersys"
	cfg.Auth.AdminEmail = "admin@lockers.com"
	cfg.Auth.AdminName = "Admin User"
	cfg.Auth.AdminPassword = "admin123"
	cfg.Cache.StatsTTL = 30 * time.Second
	cfg.CORS.AllowOrigins = []string{"http://localhost:5173"}
	return cfg
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type api struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	app, err := Build(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return &api{t: t, router: app.Router}
}

func (a *api) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (a *api) login() {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "admin@lockers.com", Password: "admin123"})
	require.Equal(a.t, http.StatusOK, code)
	var resp dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	a.token = resp.Token
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestEntityRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/v1/students", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)

	code, env = a.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "admin@lockers.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)
}

func TestStudentLifecycleOverHTTP(t *testing.T) {
	a := newAPI(t)
	a.login()

	code, env := a.do(http.MethodGet, "/api/v1/students?page=1&pageSize=10", nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[dto.Page[models.Student]](t, env)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, "STU2024002", page.Items[0].StudentID)

	code, env = a.do(http.MethodPost, "/api/v1/students", dto.CreateStudentRequest{
		Name: "Ana Costa", Email: "ana.costa@university.edu", StudentID: "STU2024003",
		Course: "Design", Semester: 2,
	})
	require.Equal(t, http.StatusCreated, code)
	created := decode[models.Student](t, env)

	code, env = a.do(http.MethodGet, "/api/v1/students?limit=1", nil)
	require.Equal(t, http.StatusOK, code)
	page = decode[dto.Page[models.Student]](t, env)
	assert.Equal(t, created.ID, page.Items[0].ID)
	assert.Equal(t, 3, page.TotalPages)

	code, env = a.do(http.MethodPatch, "/api/v1/students/"+created.ID, nil)
	require.Equal(t, http.StatusOK, code)
	same := decode[models.Student](t, env)
	assert.True(t, created.UpdatedAt.Equal(same.UpdatedAt))

	code, _ = a.do(http.MethodDelete, "/api/v1/students/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = a.do(http.MethodDelete, "/api/v1/students/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestValidationAndConflictErrors(t *testing.T) {
	a := newAPI(t)
	a.login()

	code, env := a.do(http.MethodGet, "/api/v1/lockers?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	code, env = a.do(http.MethodPost, "/api/v1/lockers", map[string]interface{}{"number": "B001", "location": "Bloco B", "size": "huge"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	code, env = a.do(http.MethodGet, "/api/v1/rentals", nil)
	require.Equal(t, http.StatusOK, code)
	rentals := decode[dto.Page[models.Rental]](t, env)
	require.Len(t, rentals.Items, 1)
	require.NotNil(t, rentals.Items[0].Locker)
	assert.Equal(t, "A001", rentals.Items[0].Locker.Number)

	code, env = a.do(http.MethodDelete, "/api/v1/lockers/"+rentals.Items[0].LockerID, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)
}

func TestStatsAndLogout(t *testing.T) {
	a := newAPI(t)
	a.login()

	code, env := a.do(http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[models.DashboardStats](t, env)
	assert.EqualValues(t, 2, stats.TotalLockers)
	assert.EqualValues(t, 2, stats.TotalStudents)
	assert.EqualValues(t, 1, stats.RentedLockers)

	code, env = a.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Admin User", decode[models.User](t, env).Name)

	code, _ = a.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/api/v1/dashboard/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, dto.ErrorCodeRevokedToken, env.Error.Code)
}
