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

// PaperService handles papers (courses)
type PaperService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewPaperService creates a new paper service instance
func NewPaperService(store repositories.Store, logger zerolog.Logger) *PaperService {
	return &PaperService{store: store, logger: logger}
}

// CreatePaper creates a paper. The semester is looked up by number across all
// departments and the first one created wins, so the paper may end up bound to
// a semester of another department. That case is logged.
func (s *PaperService) CreatePaper(ctx context.Context, req dto.CreatePaperRequest) (*dto.PaperView, error) {
	code := strings.TrimSpace(req.Code)
	title := strings.TrimSpace(req.Title)
	if code == "" || title == "" {
		return nil, apperrors.NewValidationError("Paper code and title are required")
	}
	if req.Semnum < 1 {
		return nil, apperrors.NewValidationError("Semester number is required")
	}

	semester, err := s.store.Semesters().FindFirstByNumber(ctx, req.Semnum)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewInvalidRelationshipError("Invalid semester")
		}
		return nil, internalError(err)
	}
	if _, err := s.store.Departments().GetByID(ctx, req.DepartmentID); err != nil {
		return nil, storeError(err, "Department not found", "")
	}
	if _, err := s.store.Teachers().GetByID(ctx, req.TeacherID); err != nil {
		return nil, storeError(err, "Teacher not found", "")
	}

	if semester.DepartmentID != req.DepartmentID {
		s.logger.Warn().
			Str("code", code).
			Int("semnum", req.Semnum).
			Str("departmentId", req.DepartmentID).
			Str("semesterDepartmentId", semester.DepartmentID).
			Msg("Paper bound to a semester of a different department")
	}

	paper := &models.Paper{
		ID:           newID(),
		Code:         code,
		Title:        title,
		SemesterID:   semester.ID,
		DepartmentID: req.DepartmentID,
		TeacherID:    req.TeacherID,
	}
	if err := s.store.Papers().Create(ctx, paper); err != nil {
		return nil, storeError(err, "Paper not found", "Duplicate Paper Code")
	}
	return s.view(ctx, paper)
}

// UpdatePaper applies the provided fields; every referenced id must exist
func (s *PaperService) UpdatePaper(ctx context.Context, id string, req dto.UpdatePaperRequest) (*dto.PaperView, error) {
	paper, err := s.store.Papers().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Paper not found", "")
	}

	if nonBlank(req.Code) {
		paper.Code = strings.TrimSpace(*req.Code)
	}
	if nonBlank(req.Title) {
		paper.Title = strings.TrimSpace(*req.Title)
	}
	if nonBlank(req.SemesterID) {
		if _, err := s.store.Semesters().GetByID(ctx, *req.SemesterID); err != nil {
			return nil, storeError(err, "Semester not found", "")
		}
		paper.SemesterID = *req.SemesterID
	}
	if nonBlank(req.DepartmentID) {
		if _, err := s.store.Departments().GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, storeError(err, "Department not found", "")
		}
		paper.DepartmentID = *req.DepartmentID
	}
	if nonBlank(req.TeacherID) {
		if _, err := s.store.Teachers().GetByID(ctx, *req.TeacherID); err != nil {
			return nil, storeError(err, "Teacher not found", "")
		}
		paper.TeacherID = *req.TeacherID
	}

	if err := s.store.Papers().Update(ctx, paper); err != nil {
		return nil, storeError(err, "Paper not found", "Duplicate Paper Code")
	}
	return s.view(ctx, paper)
}

// DeletePaper removes a paper. Timetable slots and internals are kept.
func (s *PaperService) DeletePaper(ctx context.Context, id string) (*models.Paper, error) {
	paper, err := s.store.Papers().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Paper not found", "")
	}
	if err := s.store.Papers().Delete(ctx, id); err != nil {
		return nil, storeError(err, "Paper not found", "")
	}
	return paper, nil
}

// GetPaper retrieves one paper view
func (s *PaperService) GetPaper(ctx context.Context, id string) (*dto.PaperView, error) {
	paper, err := s.store.Papers().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Paper not found", "")
	}
	return s.view(ctx, paper)
}

// ListPapers retrieves every paper view
func (s *PaperService) ListPapers(ctx context.Context) ([]dto.PaperView, error) {
	papers, err := s.store.Papers().GetAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return s.join(ctx, papers)
}

// ListPapersByDepartment retrieves the papers of a department
func (s *PaperService) ListPapersByDepartment(ctx context.Context, departmentID string) ([]dto.PaperView, error) {
	papers, err := s.store.Papers().GetByDepartment(ctx, departmentID)
	if err != nil {
		return nil, internalError(err)
	}
	return s.join(ctx, papers)
}

// ListPapersBySemester retrieves the papers of a semester
func (s *PaperService) ListPapersBySemester(ctx context.Context, semesterID string) ([]dto.PaperView, error) {
	papers, err := s.store.Papers().GetBySemester(ctx, semesterID)
	if err != nil {
		return nil, internalError(err)
	}
	return s.join(ctx, papers)
}

// CountPapers returns the number of papers
func (s *PaperService) CountPapers(ctx context.Context) (int64, error) {
	n, err := s.store.Papers().Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

// ListStudentsInPaper lists the students of the paper's semester
func (s *PaperService) ListStudentsInPaper(ctx context.Context, paperID string) ([]dto.StudentBrief, error) {
	paper, err := s.store.Papers().GetByID(ctx, paperID)
	if err != nil {
		return nil, storeError(err, "Paper not found", "")
	}
	students, err := s.store.Students().GetBySemester(ctx, paper.SemesterID)
	if err != nil {
		return nil, internalError(err)
	}
	return StudentBriefs(students), nil
}

func (s *PaperService) view(ctx context.Context, paper *models.Paper) (*dto.PaperView, error) {
	views, err := s.join(ctx, []*models.Paper{paper})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PaperService) join(ctx context.Context, papers []*models.Paper) ([]dto.PaperView, error) {
	var semesterIDs, departmentIDs, teacherIDs []string
	for _, p := range papers {
		semesterIDs = append(semesterIDs, p.SemesterID)
		departmentIDs = append(departmentIDs, p.DepartmentID)
		teacherIDs = append(teacherIDs, p.TeacherID)
	}
	semesters, err := s.store.Semesters().GetByIDs(ctx, uniqueIDs(semesterIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	departments, err := s.store.Departments().GetByIDs(ctx, uniqueIDs(departmentIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	teachers, err := s.store.Teachers().GetByIDs(ctx, uniqueIDs(teacherIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	return JoinPapers(
		papers,
		indexByID(semesters, func(s *models.Semester) string { return s.ID }),
		indexByID(departments, func(d *models.Department) string { return d.ID }),
		indexByID(teachers, func(t *models.Teacher) string { return t.ID }),
	), nil
}
