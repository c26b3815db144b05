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
	"github.com/yigit/campuslink/internal/pkg/validation"
)

// AdminService handles administrator accounts
type AdminService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewAdminService creates a new admin service instance
func NewAdminService(store repositories.Store, logger zerolog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// CreateAdmin adds an administrator
func (s *AdminService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*models.Admin, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("Admin name is required")
	}
	username := strings.TrimSpace(req.Username)
	if err := validateCredentials(username, req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}
	admin := &models.Admin{
		ID:           newID(),
		Name:         strings.TrimSpace(req.Name),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.Admins().Create(ctx, admin); err != nil {
		return nil, storeError(err, "Admin not found", "Duplicate Username")
	}
	return admin, nil
}

// UpdateAdmin changes name and username, and the password when one is given
func (s *AdminService) UpdateAdmin(ctx context.Context, id string, req dto.UpdateAdminRequest) (*models.Admin, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("Admin name is required")
	}
	username := strings.TrimSpace(req.Username)
	if !validation.IsValidUsername(username) {
		return nil, apperrors.NewValidationError("Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}

	admin, err := s.store.Admins().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Admin not found", "")
	}
	admin.Name = strings.TrimSpace(req.Name)
	admin.Username = username
	if req.Password != "" {
		if !validation.IsValidPassword(req.Password) {
			return nil, apperrors.NewValidationError("Password must be between 4 and 72 characters")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to hash password", err)
		}
		admin.PasswordHash = hash
	}

	if err := s.store.Admins().Update(ctx, admin); err != nil {
		return nil, storeError(err, "Admin not found", "Duplicate Username")
	}
	return admin, nil
}

// GetAdmin retrieves an administrator by ID
func (s *AdminService) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.store.Admins().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Admin not found", "")
	}
	return admin, nil
}

// DeleteAdmin removes an administrator
func (s *AdminService) DeleteAdmin(ctx context.Context, id string) error {
	if err := s.store.Admins().Delete(ctx, id); err != nil {
		return storeError(err, "Admin not found", "")
	}
	return nil
}

// EnsureDefaultAdmin creates the given administrator when no administrator
// exists yet. It reports whether an account was created.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context, req dto.CreateAdminRequest) (bool, error) {
	n, err := s.store.Admins().Count(ctx)
	if err != nil {
		return false, internalError(err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateAdmin(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}
