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

// TeacherService handles teacher accounts
type TeacherService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(store repositories.Store, logger zerolog.Logger) *TeacherService {
	return &TeacherService{store: store, logger: logger}
}

// validateCredentials checks the login fields shared by every account type
func validateCredentials(username, password string) error {
	if !validation.IsValidUsername(username) {
		return apperrors.NewValidationError("Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	if !validation.IsValidPassword(password) {
		return apperrors.NewValidationError("Password must be between 4 and 72 characters")
	}
	return nil
}

// CreateTeacher registers a teacher in an existing department
func (s *TeacherService) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (*dto.TeacherView, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("Teacher name is required")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("A valid email is required")
	}
	username := strings.TrimSpace(req.Username)
	if err := validateCredentials(username, req.Password); err != nil {
		return nil, err
	}

	department, err := s.store.Departments().GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, storeError(err, "Department not found", "")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}

	teacher := &models.Teacher{
		ID:           newID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		DepartmentID: department.ID,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.Teachers().Create(ctx, teacher); err != nil {
		return nil, storeError(err, "Department not found", "Duplicate Username")
	}

	views := JoinTeachers([]*models.Teacher{teacher}, map[string]*models.Department{department.ID: department})
	return &views[0], nil
}

// UpdateTeacher applies the provided fields to a teacher
func (s *TeacherService) UpdateTeacher(ctx context.Context, id string, req dto.UpdateTeacherRequest) (*dto.TeacherView, error) {
	teacher, err := s.store.Teachers().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Teacher not found", "")
	}

	if nonBlank(req.Name) {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if nonBlank(req.Email) {
		if !validation.IsValidEmail(*req.Email) {
			return nil, apperrors.NewValidationError("A valid email is required")
		}
		teacher.Email = strings.TrimSpace(*req.Email)
	}
	if nonBlank(req.Username) {
		username := strings.TrimSpace(*req.Username)
		if !validation.IsValidUsername(username) {
			return nil, apperrors.NewValidationError("Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
		}
		teacher.Username = username
	}
	if nonBlank(req.DepartmentID) && *req.DepartmentID != teacher.DepartmentID {
		if _, err := s.store.Departments().GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, storeError(err, "Department not found", "")
		}
		teacher.DepartmentID = *req.DepartmentID
	}
	if req.Password != nil && *req.Password != "" {
		if !validation.IsValidPassword(*req.Password) {
			return nil, apperrors.NewValidationError("Password must be between 4 and 72 characters")
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to hash password", err)
		}
		teacher.PasswordHash = hash
	}

	if err := s.store.Teachers().Update(ctx, teacher); err != nil {
		return nil, storeError(err, "Teacher not found", "Duplicate Username")
	}
	return s.view(ctx, teacher)
}

// DeleteTeacher removes a teacher. Papers taught by the teacher are kept.
func (s *TeacherService) DeleteTeacher(ctx context.Context, id string) error {
	if err := s.store.Teachers().Delete(ctx, id); err != nil {
		return storeError(err, "Teacher not found", "")
	}
	return nil
}

// GetTeacher retrieves a teacher with its department
func (s *TeacherService) GetTeacher(ctx context.Context, id string) (*dto.TeacherView, error) {
	teacher, err := s.store.Teachers().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Teacher not found", "")
	}
	return s.view(ctx, teacher)
}

// ListTeachers retrieves every teacher with its department
func (s *TeacherService) ListTeachers(ctx context.Context) ([]dto.TeacherView, error) {
	teachers, err := s.store.Teachers().GetAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return s.join(ctx, teachers)
}

// CountTeachers returns the number of teachers
func (s *TeacherService) CountTeachers(ctx context.Context) (int64, error) {
	n, err := s.store.Teachers().Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

func (s *TeacherService) view(ctx context.Context, teacher *models.Teacher) (*dto.TeacherView, error) {
	views, err := s.join(ctx, []*models.Teacher{teacher})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TeacherService) join(ctx context.Context, teachers []*models.Teacher) ([]dto.TeacherView, error) {
	ids := make([]string, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.DepartmentID)
	}
	departments, err := s.store.Departments().GetByIDs(ctx, uniqueIDs(ids...))
	if err != nil {
		return nil, internalError(err)
	}
	return JoinTeachers(teachers, indexByID(departments, func(d *models.Department) string { return d.ID })), nil
}
