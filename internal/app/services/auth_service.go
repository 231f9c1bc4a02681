package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/pkg/apperrors"
	"github.com/yigit/lockersys/internal/pkg/auth"
	"github.com/yigit/lockersys/internal/pkg/tokenstore"
)

// AuthService handles authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	LogoutAll(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, claims *auth.Claims) (*models.User, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// Account is a configured login
type Account struct {
	Name     string
	Email    string
	Password string
	Role     models.RoleType
}

type authServiceImpl struct {
	users      map[string]*models.User // keyed by lower-case email
	jwtService *auth.JWTService
	registry   tokenstore.Registry
	logger     zerolog.Logger
	dummyHash  string
}

// NewAuthService hashes the configured accounts and returns the service
func NewAuthService(accounts []Account, jwtService *auth.JWTService, registry tokenstore.Registry, logger zerolog.Logger) (AuthService, error) {
	s := &authServiceImpl{
		users:      make(map[string]*models.User, len(accounts)),
		jwtService: jwtService,
		registry:   registry,
		logger:     logger,
	}

	dummy, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}
	s.dummyHash = dummy

	now := time.Now().UTC()
	for _, a := range accounts {
		email := strings.ToLower(strings.TrimSpace(a.Email))
		hash, err := auth.HashPassword(a.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", email, err)
		}
		role := a.Role
		if role == "" {
			role = models.RoleAdmin
		}
		s.users[email] = &models.User{
			// stable across restarts so persisted sessions keep their identity
			ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("lockersys:user:"+email)).String(),
			Name:         a.Name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return s, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("credentials are required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, ok := s.users[email]
	if !ok {
		auth.CheckPassword(s.dummyHash, req.Password)
		s.logger.Info().Str("email", email).Msg("Login attempt for unknown account")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Info().Str("email", email).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	issued, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrServiceFailure, err)
	}
	if err := s.registry.Register(ctx, issued.ID, user.ID, issued.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%w: failed to register session: %w", apperrors.ErrServiceFailure, err)
	}

	s.logger.Info().Str("userID", user.ID).Msg("User logged in")
	return &dto.LoginResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
		User:      *user,
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	if err := s.registry.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("%w: failed to revoke session: %w", apperrors.ErrServiceFailure, err)
	}
	s.logger.Info().Str("userID", claims.UserID).Msg("User logged out")
	return nil
}

// LogoutAll revokes every session issued to the caller
func (s *authServiceImpl) LogoutAll(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	if err := s.registry.RevokeAllForUser(ctx, claims.UserID); err != nil {
		return fmt.Errorf("%w: failed to revoke sessions: %w", apperrors.ErrServiceFailure, err)
	}
	s.logger.Info().Str("userID", claims.UserID).Msg("All sessions revoked")
	return nil
}

func (s *authServiceImpl) Me(_ context.Context, claims *auth.Claims) (*models.User, error) {
	if claims == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	user, ok := s.users[strings.ToLower(claims.Email)]
	if !ok || user.ID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}
	u := *user
	return &u, nil
}

func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	active, err := s.registry.IsActive(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check session: %w", apperrors.ErrServiceFailure, err)
	}
	if !active {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}
