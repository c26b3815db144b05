package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

const msgInternalNotFound = "Internal record doesn't exist"

// InternalService handles internal exam marks
type InternalService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewInternalService creates a new internal service instance
func NewInternalService(store repositories.Store, logger zerolog.Logger) *InternalService {
	return &InternalService{store: store, logger: logger}
}

func validateMarks(marks []models.Mark) error {
	if marks == nil {
		return apperrors.NewValidationError("Marks are required")
	}
	for _, m := range marks {
		if blank(m.StudentID) {
			return apperrors.NewValidationError("Every mark needs a student id")
		}
		if m.Mark < 0 {
			return apperrors.NewValidationError("Marks cannot be negative")
		}
	}
	return nil
}

// CreateInternal records the marks of a paper; there can be only one record per paper
func (s *InternalService) CreateInternal(ctx context.Context, paperID string, marks []models.Mark) (*models.Internal, error) {
	if err := validateMarks(marks); err != nil {
		return nil, err
	}
	if _, err := s.store.Papers().GetByID(ctx, paperID); err != nil {
		return nil, storeError(err, "Paper not found", "")
	}

	internal := &models.Internal{ID: newID(), PaperID: paperID, Marks: marks}
	if err := s.store.Internals().Create(ctx, internal); err != nil {
		return nil, storeError(err, msgInternalNotFound, "Internal record already exists")
	}
	return internal, nil
}

// ReplaceInternalMarks swaps the whole mark list of a paper
func (s *InternalService) ReplaceInternalMarks(ctx context.Context, paperID string, marks []models.Mark) (*models.Internal, error) {
	if err := validateMarks(marks); err != nil {
		return nil, err
	}
	internal := &models.Internal{PaperID: paperID, Marks: marks}
	if err := s.store.Internals().Update(ctx, internal); err != nil {
		return nil, storeError(err, msgInternalNotFound, "")
	}
	updated, err := s.store.Internals().GetByPaper(ctx, paperID)
	if err != nil {
		return nil, storeError(err, msgInternalNotFound, "")
	}
	return updated, nil
}

// GetInternalByPaper returns the marks of a paper with students resolved
func (s *InternalService) GetInternalByPaper(ctx context.Context, paperID string) (*dto.InternalView, error) {
	internal, err := s.store.Internals().GetByPaper(ctx, paperID)
	if err != nil {
		return nil, storeError(err, "No Existing Record(s) found. Add New Record.", "")
	}
	views, err := s.join(ctx, []*models.Internal{internal})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListInternalsByStudent returns every internal record that holds a mark for the student
func (s *InternalService) ListInternalsByStudent(ctx context.Context, studentID string) ([]dto.InternalView, error) {
	internals, err := s.store.Internals().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err)
	}
	if len(internals) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No Records Found.")
	}
	return s.join(ctx, internals)
}

// DeleteInternal removes the internal record of a paper
func (s *InternalService) DeleteInternal(ctx context.Context, paperID string) error {
	if err := s.store.Internals().DeleteByPaper(ctx, paperID); err != nil {
		return storeError(err, "Internal Record not found", "")
	}
	return nil
}

func (s *InternalService) join(ctx context.Context, internals []*models.Internal) ([]dto.InternalView, error) {
	var paperIDs, studentIDs []string
	for _, in := range internals {
		paperIDs = append(paperIDs, in.PaperID)
		for _, m := range in.Marks {
			studentIDs = append(studentIDs, m.StudentID)
		}
	}
	papers, err := s.store.Papers().GetByIDs(ctx, uniqueIDs(paperIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	students, err := s.store.Students().GetByIDs(ctx, uniqueIDs(studentIDs...))
	if err != nil {
		return nil, internalError(err)
	}

	paperIndex := indexByID(papers, func(p *models.Paper) string { return p.ID })
	studentIndex := indexByID(students, func(s *models.Student) string { return s.ID })
	views := make([]dto.InternalView, 0, len(internals))
	for _, in := range internals {
		views = append(views, JoinInternal(in, paperIndex, studentIndex))
	}
	return views, nil
}
