package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// MaxSemesterCount bounds the number of semesters a department may have
const MaxSemesterCount = 20

// DepartmentService handles department-related operations
type DepartmentService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(store repositories.Store, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{store: store, logger: logger}
}

// CreateDepartment creates a department together with its semesters 1..N.
// Either all rows are written or none.
func (s *DepartmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Department name is required")
	}
	if req.SemesterCount < 1 || req.SemesterCount > MaxSemesterCount {
		return nil, apperrors.NewValidationError("Semester count must be a positive number no greater than 20")
	}

	department := &models.Department{
		ID:            newID(),
		Name:          name,
		SemesterCount: req.SemesterCount,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Departments().Create(ctx, department); err != nil {
			return err
		}
		semesters := make([]*models.Semester, 0, department.SemesterCount)
		for n := 1; n <= department.SemesterCount; n++ {
			semesters = append(semesters, &models.Semester{
				ID:           newID(),
				Number:       n,
				DepartmentID: department.ID,
			})
		}
		return tx.Semesters().CreateBatch(ctx, semesters)
	})
	if err != nil {
		return nil, storeError(err, "Department not found", "Duplicate Department Name")
	}

	s.logger.Info().
		Str("departmentId", department.ID).
		Int("semesters", department.SemesterCount).
		Msg("Department created")
	return department, nil
}

// UpdateDepartment renames a department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, req dto.UpdateDepartmentRequest) (*models.Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Department name is required")
	}

	department, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Department not found", "")
	}

	department.Name = name
	if err := s.store.Departments().Update(ctx, department); err != nil {
		return nil, storeError(err, "Department not found", "Duplicate Department Name")
	}
	return department, nil
}

// DeleteDepartment removes a department with its semesters, its teachers and
// the students of its semesters. Papers, time schedules and internals that
// point at the removed rows are left in place.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) (*dto.CascadeSummary, error) {
	department, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Department not found", "")
	}

	summary := &dto.CascadeSummary{DepartmentID: department.ID, Name: department.Name}
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		semesters, err := tx.Semesters().GetByDepartment(ctx, id)
		if err != nil {
			return err
		}
		semesterIDs := make([]string, 0, len(semesters))
		for _, sem := range semesters {
			semesterIDs = append(semesterIDs, sem.ID)
		}

		if summary.TeacherIDs, err = tx.Teachers().DeleteByDepartment(ctx, id); err != nil {
			return err
		}
		if summary.StudentIDs, err = tx.Students().DeleteBySemesters(ctx, semesterIDs); err != nil {
			return err
		}
		if summary.SemesterIDs, err = tx.Semesters().DeleteByDepartment(ctx, id); err != nil {
			return err
		}
		return tx.Departments().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("departmentId", id).Msg("Department cascade delete failed")
		return nil, storeError(err, "Department not found", "")
	}

	s.logger.Info().
		Str("departmentId", id).
		Int("semesters", len(summary.SemesterIDs)).
		Int("teachers", len(summary.TeacherIDs)).
		Int("students", len(summary.StudentIDs)).
		Msg("Department deleted")
	return summary, nil
}

// GetDepartment retrieves a department by ID
func (s *DepartmentService) GetDepartment(ctx context.Context, id string) (*models.Department, error) {
	department, err := s.store.Departments().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Department not found", "")
	}
	return department, nil
}

// ListDepartments retrieves all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.store.Departments().GetAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return departments, nil
}

// CountDepartments returns the number of departments
func (s *DepartmentService) CountDepartments(ctx context.Context) (int64, error) {
	n, err := s.store.Departments().Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

// SemesterService serves the read-only semester lookups
type SemesterService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewSemesterService creates a new semester service instance
func NewSemesterService(store repositories.Store, logger zerolog.Logger) *SemesterService {
	return &SemesterService{store: store, logger: logger}
}

// GetSemester retrieves a semester by ID
func (s *SemesterService) GetSemester(ctx context.Context, id string) (*models.Semester, error) {
	semester, err := s.store.Semesters().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Semester not found", "")
	}
	return semester, nil
}

// ListSemestersByDepartment lists the semesters of a department in number order
func (s *SemesterService) ListSemestersByDepartment(ctx context.Context, departmentID string) ([]*models.Semester, error) {
	semesters, err := s.store.Semesters().GetByDepartment(ctx, departmentID)
	if err != nil {
		return nil, internalError(err)
	}
	if len(semesters) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No semesters found for the department")
	}
	return semesters, nil
}

// FindSemester resolves semester number within a department
func (s *SemesterService) FindSemester(ctx context.Context, departmentID string, number int) (*models.Semester, error) {
	if number < 1 {
		return nil, apperrors.NewValidationError("Semester number must be a positive number")
	}
	semester, err := s.store.Semesters().FindByDepartmentAndNumber(ctx, departmentID, number)
	if err != nil {
		return nil, storeError(err, "Semester not found", "")
	}
	return semester, nil
}
