package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
)

// AuthService handles logins for every role
type AuthService struct {
	store  repositories.Store
	tokens TokenIssuer
	logger zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(store repositories.Store, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, logger: logger}
}

// principal is the role independent part of an account
type principal struct {
	id           string
	passwordHash string
	profile      interface{}
	// setHash stores a replacement password hash without touching the profile
	setHash func(ctx context.Context, hash string) error
}

// Login verifies the credentials of a user of the given role and issues a token
func (s *AuthService) Login(ctx context.Context, role models.RoleType, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("All Fields are required")
	}

	p, err := s.lookup(ctx, role, username)
	if err != nil {
		return nil, storeError(err, "User not found", "")
	}

	if !auth.CheckPassword(p.passwordHash, req.Password) {
		s.logger.Debug().Str("role", string(role)).Str("username", username).Msg("Password mismatch")
		return nil, apperrors.NewUnauthorizedError("Incorrect Password")
	}

	if auth.NeedsRehash(p.passwordHash) {
		s.upgradeHash(ctx, p, role, req.Password)
	}

	token, expiresIn, err := s.tokens.GenerateAccessToken(p.id, string(role))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to issue token", err)
	}

	return &dto.LoginResponse{
		Role: string(role),
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		Profile: p.profile,
	}, nil
}

// upgradeHash re-hashes a verified password at the current cost. Failures are
// logged and never block the login.
func (s *AuthService) upgradeHash(ctx context.Context, p *principal, role models.RoleType, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = p.setHash(ctx, hash)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("role", string(role)).Str("userId", p.id).Msg("Failed to upgrade password hash")
		return
	}
	s.logger.Info().Str("role", string(role)).Str("userId", p.id).Msg("Password hash upgraded")
}

func (s *AuthService) lookup(ctx context.Context, role models.RoleType, username string) (*principal, error) {
	switch role {
	case models.RoleAdmin:
		a, err := s.store.Admins().GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return &principal{
			id:           a.ID,
			passwordHash: a.PasswordHash,
			profile:      dto.AdminProfile{ID: a.ID, Name: a.Name, Username: a.Username},
			setHash: func(ctx context.Context, hash string) error {
				return s.store.Admins().UpdatePasswordHash(ctx, a.ID, hash)
			},
		}, nil
	case models.RoleTeacher:
		t, err := s.store.Teachers().GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return &principal{
			id:           t.ID,
			passwordHash: t.PasswordHash,
			profile:      dto.TeacherProfile{ID: t.ID, Name: t.Name, Department: t.DepartmentID},
			setHash: func(ctx context.Context, hash string) error {
				return s.store.Teachers().UpdatePasswordHash(ctx, t.ID, hash)
			},
		}, nil
	case models.RoleStudent:
		st, err := s.store.Students().GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		return &principal{
			id:           st.ID,
			passwordHash: st.PasswordHash,
			profile:      dto.StudentProfile{ID: st.ID, Name: st.Name, Semester: st.SemesterID},
			setHash: func(ctx context.Context, hash string) error {
				return s.store.Students().UpdatePasswordHash(ctx, st.ID, hash)
			},
		}, nil
	default:
		return nil, apperrors.NewValidationError("Unknown role")
	}
}
