package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AuthService manages registration, login, and profile updates.
type AuthService struct {
	profiles repository.ProfileRepository
	tokens   *auth.TokenManager
	cfg      config.AuthConfig
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, profiles repository.ProfileRepository) *AuthService {
	return &AuthService{
		profiles: profiles,
		tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:      cfg,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// RegisterInput describes registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Language string
}

// Session is returned after successful authentication.
type Session struct {
	Profile   *domain.Profile
	Token     string
	ExpiresAt time.Time
}

// Register creates an END_USER profile and issues a token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("name and valid email required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = "en"
	}

	profile := &domain.Profile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleEndUser,
		Language:     language,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	return s.issueSession(profile)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(profile.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issueSession(profile)
}

// UpdateProfileInput describes self-service profile updates.
type UpdateProfileInput struct {
	Name             *string
	Language         *string
	CategoryInterest *string
}

// UpdateProfile applies self-service changes. Role is never touched here:
// elevation goes through the role-upgrade workflow.
func (s *AuthService) UpdateProfile(ctx context.Context, profile *domain.Profile, input UpdateProfileInput) (*domain.Profile, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		profile.Name = name
	}
	if input.Language != nil && strings.TrimSpace(*input.Language) != "" {
		profile.Language = strings.TrimSpace(*input.Language)
	}
	if input.CategoryInterest != nil {
		if *input.CategoryInterest == "" {
			profile.CategoryInterest = nil
		} else {
			profile.CategoryInterest = input.CategoryInterest
		}
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

func (s *AuthService) issueSession(profile *domain.Profile) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Profile: profile, Token: token, ExpiresAt: expiresAt}, nil
}
