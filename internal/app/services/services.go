// Package services holds the business rules of every collection. Services
// receive a repositories.Store and never talk to a database directly.
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/repositories"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

// TokenIssuer signs access tokens for authenticated principals
type TokenIssuer interface {
	GenerateAccessToken(userID, role string) (string, int64, error)
}

// Services bundles every service built on one store
type Services struct {
	Department   *DepartmentService
	Semester     *SemesterService
	Teacher      *TeacherService
	Student      *StudentService
	Paper        *PaperService
	TimeSchedule *TimeScheduleService
	Internal     *InternalService
	Announcement *AnnouncementService
	Admin        *AdminService
	Auth         *AuthService
}

// NewServices wires all services to store
func NewServices(store repositories.Store, tokens TokenIssuer, logger zerolog.Logger) *Services {
	return &Services{
		Department:   NewDepartmentService(store, logger),
		Semester:     NewSemesterService(store, logger),
		Teacher:      NewTeacherService(store, logger),
		Student:      NewStudentService(store, logger),
		Paper:        NewPaperService(store, logger),
		TimeSchedule: NewTimeScheduleService(store, logger),
		Internal:     NewInternalService(store, logger),
		Announcement: NewAnnouncementService(store, logger, time.Now),
		Admin:        NewAdminService(store, logger),
		Auth:         NewAuthService(store, tokens, logger),
	}
}

// newID returns a fresh record identifier
func newID() string {
	return uuid.NewString()
}

// storeError converts a repository error into an application error.
// Errors that already carry an application kind pass through unchanged.
func storeError(err error, notFound, duplicate string) error {
	if err == nil {
		return nil
	}
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewResourceNotFoundError(notFound)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return apperrors.NewConflictError(duplicate)
	case errors.Is(err, repositories.ErrReferenced):
		return apperrors.NewConflictError("Record is referenced by other records")
	default:
		return apperrors.NewInternalError("Unexpected store failure", err)
	}
}

// internalError wraps an unexpected store failure
func internalError(err error) error {
	return storeError(err, "", "")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// nonBlank reports whether an optional string was provided with content
func nonBlank(s *string) bool {
	return s != nil && !blank(*s)
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
