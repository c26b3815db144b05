package repositories

import (
	"context"
	"errors"

	"github.com/yigit/campuslink/internal/app/models"
)

// Repository errors shared by every implementation
var (
	// ErrNotFound is returned when the addressed record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrReferenced is returned when a delete would orphan a dependent row
	ErrReferenced = errors.New("record is still referenced")
)

// DepartmentRepository persists departments
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id string) (*models.Department, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// SemesterRepository persists semesters
type SemesterRepository interface {
	CreateBatch(ctx context.Context, semesters []*models.Semester) error
	GetByID(ctx context.Context, id string) (*models.Semester, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Semester, error)
	GetByDepartment(ctx context.Context, departmentID string) ([]*models.Semester, error)
	FindByDepartmentAndNumber(ctx context.Context, departmentID string, number int) (*models.Semester, error)
	// FindFirstByNumber returns the earliest created semester with the number, in any department
	FindFirstByNumber(ctx context.Context, number int) (*models.Semester, error)
	DeleteByDepartment(ctx context.Context, departmentID string) ([]string, error)
}

// TeacherRepository persists teachers
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Teacher, error)
	GetByUsername(ctx context.Context, username string) (*models.Teacher, error)
	GetAll(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	DeleteByDepartment(ctx context.Context, departmentID string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// StudentRepository persists students
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
	GetByUsername(ctx context.Context, username string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetBySemester(ctx context.Context, semesterID string) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	DeleteBySemesters(ctx context.Context, semesterIDs []string) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// PaperRepository persists papers
type PaperRepository interface {
	Create(ctx context.Context, paper *models.Paper) error
	GetByID(ctx context.Context, id string) (*models.Paper, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Paper, error)
	GetAll(ctx context.Context) ([]*models.Paper, error)
	GetByDepartment(ctx context.Context, departmentID string) ([]*models.Paper, error)
	GetBySemester(ctx context.Context, semesterID string) ([]*models.Paper, error)
	Update(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// TimeScheduleRepository persists weekly schedules, one per semester
type TimeScheduleRepository interface {
	Create(ctx context.Context, schedule *models.TimeSchedule) error
	GetBySemester(ctx context.Context, semesterID string) (*models.TimeSchedule, error)
	Update(ctx context.Context, schedule *models.TimeSchedule) error
	DeleteBySemester(ctx context.Context, semesterID string) error
}

// InternalRepository persists internal mark records, one per paper
type InternalRepository interface {
	Create(ctx context.Context, internal *models.Internal) error
	GetByPaper(ctx context.Context, paperID string) (*models.Internal, error)
	GetByStudent(ctx context.Context, studentID string) ([]*models.Internal, error)
	Update(ctx context.Context, internal *models.Internal) error
	DeleteByPaper(ctx context.Context, paperID string) error
}

// AnnouncementRepository persists announcements
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	// List returns announcements newest first
	List(ctx context.Context, offset, limit uint64) ([]*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AdminRepository persists administrator accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// Store groups the repositories of every collection. Repositories obtained from
// the Store passed to WithTx's callback take part in that transaction.
type Store interface {
	Departments() DepartmentRepository
	Semesters() SemesterRepository
	Teachers() TeacherRepository
	Students() StudentRepository
	Papers() PaperRepository
	TimeSchedules() TimeScheduleRepository
	Internals() InternalRepository
	Announcements() AnnouncementRepository
	Admins() AdminRepository

	// WithTx runs fn atomically. A nested call joins the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
