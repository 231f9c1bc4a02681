// Package session tracks who is logged in on the client side and supplies
// the bearer token for every data service call.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/auth"
)

// Authenticator performs the server side of login and logout
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// Holder owns the session token and the identity it belongs to
type Holder struct {
	auth   Authenticator
	store  Store
	logger zerolog.Logger

	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool
}

// NewHolder creates an empty holder. Call Restore to pick up a persisted session.
func NewHolder(authenticator Authenticator, store Store, logger zerolog.Logger) *Holder {
	return &Holder{auth: authenticator, store: store, logger: logger}
}

// SetAuthenticator wires the authenticator after construction, for clients
// that read their token from this holder
func (h *Holder) SetAuthenticator(authenticator Authenticator) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.auth = authenticator
}

// Restore rebuilds the identity from a persisted token without asking the
// server. The token is trusted as-is; the first rejected call ends the session.
func (h *Holder) Restore() error {
	token, err := h.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	claims, err := auth.ParseUnverified(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Discarding unreadable session token")
		return h.store.Clear()
	}

	user := claims.User()
	h.mu.Lock()
	h.token = token
	h.user = &user
	h.mu.Unlock()
	return nil
}

// Login authenticates and persists the new token
func (h *Holder) Login(ctx context.Context, email, password string) (*models.User, error) {
	h.mu.Lock()
	h.loading = true
	authenticator := h.auth
	h.mu.Unlock()

	if authenticator == nil {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
		return nil, apperrors.NewServiceError("no authenticator configured")
	}
	resp, err := authenticator.Login(ctx, email, password)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = false
	if err != nil {
		return nil, err
	}

	user := resp.User
	h.token = resp.Token
	h.user = &user
	if err := h.store.Save(resp.Token); err != nil {
		h.logger.Warn().Err(err).Msg("Session token not persisted")
	}

	out := user
	return &out, nil
}

// Logout ends the session. The server is asked to revoke the token, but the
// local session is cleared whatever it answers.
func (h *Holder) Logout(ctx context.Context) {
	h.mu.RLock()
	authenticator, hasToken := h.auth, h.token != ""
	h.mu.RUnlock()

	if hasToken && authenticator != nil {
		if err := authenticator.Logout(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("Server-side logout failed")
		}
	}
	h.Expire()
}

// Expire drops the session locally, e.g. after the server rejected the token
func (h *Holder) Expire() {
	h.mu.Lock()
	h.token = ""
	h.user = nil
	h.mu.Unlock()

	if err := h.store.Clear(); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to clear persisted session token")
	}
}

// Token returns the bearer token, or "" when logged out
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// CurrentUser returns the logged in identity, or nil
func (h *Holder) CurrentUser() *models.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return nil
	}
	u := *h.user
	return &u
}

// IsAuthenticated reports whether a session is held
func (h *Holder) IsAuthenticated() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.user != nil
}

// IsLoading reports whether a login is in flight
func (h *Holder) IsLoading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}
