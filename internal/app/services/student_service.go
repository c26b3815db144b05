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

const msgInvalidSemester = "Invalid semester for the chosen department"

// StudentService handles student accounts
type StudentService struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(store repositories.Store, logger zerolog.Logger) *StudentService {
	return &StudentService{store: store, logger: logger}
}

// CreateStudent enrols a student in semester Semnum of the given department
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentView, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("Student name is required")
	}
	if req.AdmissionNo <= 0 || req.RollNo <= 0 {
		return nil, apperrors.NewValidationError("Admission number and roll number are required")
	}
	if req.Semnum < 1 {
		return nil, apperrors.NewValidationError("Semester number is required")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("A valid email is required")
	}
	username := strings.TrimSpace(req.Username)
	if err := validateCredentials(username, req.Password); err != nil {
		return nil, err
	}

	semester, err := s.store.Semesters().FindByDepartmentAndNumber(ctx, req.DepartmentID, req.Semnum)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewInvalidRelationshipError(msgInvalidSemester)
		}
		return nil, internalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to hash password", err)
	}

	student := &models.Student{
		ID:           newID(),
		Name:         strings.TrimSpace(req.Name),
		AdmissionNo:  req.AdmissionNo,
		RollNo:       req.RollNo,
		Email:        strings.TrimSpace(req.Email),
		SemesterID:   semester.ID,
		DepartmentID: semester.DepartmentID,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.store.Students().Create(ctx, student); err != nil {
		return nil, storeError(err, "Semester not found", "Duplicate Username")
	}

	return s.view(ctx, student)
}

// UpdateStudent applies the provided fields to a student. The department is
// applied before the semester and the resulting pair must be consistent.
func (s *StudentService) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*dto.StudentView, error) {
	student, err := s.store.Students().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Student not found", "")
	}

	if nonBlank(req.Name) {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if nonBlank(req.Email) {
		if !validation.IsValidEmail(*req.Email) {
			return nil, apperrors.NewValidationError("A valid email is required")
		}
		student.Email = strings.TrimSpace(*req.Email)
	}
	if req.AdmissionNo != nil && *req.AdmissionNo > 0 {
		student.AdmissionNo = *req.AdmissionNo
	}
	if req.RollNo != nil && *req.RollNo > 0 {
		student.RollNo = *req.RollNo
	}
	if nonBlank(req.Username) {
		username := strings.TrimSpace(*req.Username)
		if !validation.IsValidUsername(username) {
			return nil, apperrors.NewValidationError("Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
		}
		student.Username = username
	}

	relocated := false
	if nonBlank(req.DepartmentID) && *req.DepartmentID != student.DepartmentID {
		if _, err := s.store.Departments().GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, storeError(err, "Department not found", "")
		}
		student.DepartmentID = *req.DepartmentID
		relocated = true
	}

	switch {
	case nonBlank(req.SemesterID):
		if *req.SemesterID != student.SemesterID {
			student.SemesterID = *req.SemesterID
			relocated = true
		}
	case req.Semnum != nil:
		semester, err := s.store.Semesters().FindByDepartmentAndNumber(ctx, student.DepartmentID, *req.Semnum)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NewInvalidRelationshipError(msgInvalidSemester)
			}
			return nil, internalError(err)
		}
		if semester.ID != student.SemesterID {
			student.SemesterID = semester.ID
			relocated = true
		}
	}

	if relocated {
		semester, err := s.store.Semesters().GetByID(ctx, student.SemesterID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.NewInvalidRelationshipError(msgInvalidSemester)
			}
			return nil, internalError(err)
		}
		if semester.DepartmentID != student.DepartmentID {
			return nil, apperrors.NewInvalidRelationshipError(msgInvalidSemester)
		}
	}

	if req.Password != nil && *req.Password != "" {
		if !validation.IsValidPassword(*req.Password) {
			return nil, apperrors.NewValidationError("Password must be between 4 and 72 characters")
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewInternalError("Failed to hash password", err)
		}
		student.PasswordHash = hash
	}

	if err := s.store.Students().Update(ctx, student); err != nil {
		return nil, storeError(err, "Student not found", "Duplicate Username")
	}
	return s.view(ctx, student)
}

// DeleteStudent removes a student. Internal marks of the student are kept.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.store.Students().Delete(ctx, id); err != nil {
		return storeError(err, "Student not found", "")
	}
	return nil
}

// GetStudent retrieves a student with semester and department
func (s *StudentService) GetStudent(ctx context.Context, id string) (*dto.StudentView, error) {
	student, err := s.store.Students().GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Student not found", "")
	}
	return s.view(ctx, student)
}

// ListStudents retrieves every student with semester and department
func (s *StudentService) ListStudents(ctx context.Context) ([]dto.StudentView, error) {
	students, err := s.store.Students().GetAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return s.join(ctx, students)
}

// CountStudents returns the number of students
func (s *StudentService) CountStudents(ctx context.Context) (int64, error) {
	n, err := s.store.Students().Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

func (s *StudentService) view(ctx context.Context, student *models.Student) (*dto.StudentView, error) {
	views, err := s.join(ctx, []*models.Student{student})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *StudentService) join(ctx context.Context, students []*models.Student) ([]dto.StudentView, error) {
	semesterIDs := make([]string, 0, len(students))
	departmentIDs := make([]string, 0, len(students))
	for _, st := range students {
		semesterIDs = append(semesterIDs, st.SemesterID)
		departmentIDs = append(departmentIDs, st.DepartmentID)
	}
	semesters, err := s.store.Semesters().GetByIDs(ctx, uniqueIDs(semesterIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	departments, err := s.store.Departments().GetByIDs(ctx, uniqueIDs(departmentIDs...))
	if err != nil {
		return nil, internalError(err)
	}
	return JoinStudents(
		students,
		indexByID(semesters, func(s *models.Semester) string { return s.ID }),
		indexByID(departments, func(d *models.Department) string { return d.ID }),
	), nil
}
