package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var studentColumns = []string{
	"id", "name", "admission_no", "roll_no", "email",
	"semester_id", "department_id", "username", "password_hash",
}

type pgStudentRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	var s models.Student
	if err := row.Scan(
		&s.ID, &s.Name, &s.AdmissionNo, &s.RollNo, &s.Email,
		&s.SemesterID, &s.DepartmentID, &s.Username, &s.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student
func (r *pgStudentRepository) Create(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(student.ID, student.Name, student.AdmissionNo, student.RollNo, student.Email,
			student.SemesterID, student.DepartmentID, student.Username, student.PasswordHash).
		ToSql()
	if err != nil {
		return buildErr(err, "insert student")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating student")
}

// GetByID retrieves a student by ID
func (r *pgStudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return r.one(ctx, r.sb.Select(studentColumns...).From("students").Where(squirrel.Eq{"id": id}))
}

// GetByUsername retrieves a student by login name
func (r *pgStudentRepository) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	return r.one(ctx, r.sb.Select(studentColumns...).From("students").Where(squirrel.Eq{"username": username}))
}

// GetByIDs retrieves the students whose id is in ids
func (r *pgStudentRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	return r.list(ctx, r.sb.Select(studentColumns...).From("students").
		Where(squirrel.Eq{"id": ids}).OrderBy("roll_no", "created_at"))
}

// GetAll retrieves all students
func (r *pgStudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, r.sb.Select(studentColumns...).From("students").OrderBy("created_at"))
}

// GetBySemester lists the students enrolled in a semester
func (r *pgStudentRepository) GetBySemester(ctx context.Context, semesterID string) ([]*models.Student, error) {
	return r.list(ctx, r.sb.Select(studentColumns...).From("students").
		Where(squirrel.Eq{"semester_id": semesterID}).OrderBy("roll_no", "created_at"))
}

// Update overwrites the mutable student fields
func (r *pgStudentRepository) Update(ctx context.Context, student *models.Student) error {
	query, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":          student.Name,
			"admission_no":  student.AdmissionNo,
			"roll_no":       student.RollNo,
			"email":         student.Email,
			"semester_id":   student.SemesterID,
			"department_id": student.DepartmentID,
			"username":      student.Username,
			"password_hash": student.PasswordHash,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update student")
	}
	return execOne(ctx, r.q, query, args, "error updating student")
}

// UpdatePasswordHash replaces the stored hash and leaves every other column alone
func (r *pgStudentRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return setPasswordHash(ctx, r.q, r.sb, "students", id, hash)
}

// Delete removes a student
func (r *pgStudentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete student")
	}
	return execOne(ctx, r.q, query, args, "error deleting student")
}

// DeleteBySemesters removes the students of any of the semesters and returns their ids
func (r *pgStudentRepository) DeleteBySemesters(ctx context.Context, semesterIDs []string) ([]string, error) {
	if len(semesterIDs) == 0 {
		return []string{}, nil
	}
	query, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"semester_id": semesterIDs}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, buildErr(err, "delete students")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error deleting students")
	}
	ids, err := collectIDs(rows)
	return ids, mapError(err, "error deleting students")
}

// Count returns the number of students
func (r *pgStudentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "students")
}

func (r *pgStudentRepository) one(ctx context.Context, b squirrel.SelectBuilder) (*models.Student, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "get student")
	}
	s, err := scanStudent(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving student")
	}
	return s, nil
}

func (r *pgStudentRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Student, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "list students")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing students")
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, mapError(err, "error scanning student")
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating students")
	}
	return students, nil
}
