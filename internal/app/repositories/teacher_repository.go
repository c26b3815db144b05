package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var teacherColumns = []string{"id", "name", "email", "department_id", "username", "password_hash"}

type pgTeacherRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanTeacher(row interface{ Scan(...any) error }) (*models.Teacher, error) {
	var t models.Teacher
	if err := row.Scan(&t.ID, &t.Name, &t.Email, &t.DepartmentID, &t.Username, &t.PasswordHash); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a teacher
func (r *pgTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query, args, err := r.sb.Insert("teachers").
		Columns(teacherColumns...).
		Values(teacher.ID, teacher.Name, teacher.Email, teacher.DepartmentID, teacher.Username, teacher.PasswordHash).
		ToSql()
	if err != nil {
		return buildErr(err, "insert teacher")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating teacher")
}

// GetByID retrieves a teacher by ID
func (r *pgTeacherRepository) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	return r.one(ctx, r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"id": id}))
}

// GetByUsername retrieves a teacher by login name
func (r *pgTeacherRepository) GetByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	return r.one(ctx, r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"username": username}))
}

// GetByIDs retrieves the teachers whose id is in ids
func (r *pgTeacherRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Teacher, error) {
	if len(ids) == 0 {
		return []*models.Teacher{}, nil
	}
	return r.list(ctx, r.sb.Select(teacherColumns...).From("teachers").
		Where(squirrel.Eq{"id": ids}).OrderBy("created_at"))
}

// GetAll retrieves all teachers
func (r *pgTeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	return r.list(ctx, r.sb.Select(teacherColumns...).From("teachers").OrderBy("created_at"))
}

// Update overwrites the mutable teacher fields
func (r *pgTeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"name":          teacher.Name,
			"email":         teacher.Email,
			"department_id": teacher.DepartmentID,
			"username":      teacher.Username,
			"password_hash": teacher.PasswordHash,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update teacher")
	}
	return execOne(ctx, r.q, query, args, "error updating teacher")
}

// UpdatePasswordHash replaces the stored hash and leaves every other column alone
func (r *pgTeacherRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return setPasswordHash(ctx, r.q, r.sb, "teachers", id, hash)
}

// Delete removes a teacher
func (r *pgTeacherRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("teachers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete teacher")
	}
	return execOne(ctx, r.q, query, args, "error deleting teacher")
}

// DeleteByDepartment removes the teachers of a department and returns their ids
func (r *pgTeacherRepository) DeleteByDepartment(ctx context.Context, departmentID string) ([]string, error) {
	query, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"department_id": departmentID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, buildErr(err, "delete teachers")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error deleting teachers")
	}
	ids, err := collectIDs(rows)
	return ids, mapError(err, "error deleting teachers")
}

// Count returns the number of teachers
func (r *pgTeacherRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "teachers")
}

func (r *pgTeacherRepository) one(ctx context.Context, b squirrel.SelectBuilder) (*models.Teacher, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "get teacher")
	}
	t, err := scanTeacher(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving teacher")
	}
	return t, nil
}

func (r *pgTeacherRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Teacher, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "list teachers")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing teachers")
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, mapError(err, "error scanning teacher")
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating teachers")
	}
	return teachers, nil
}
