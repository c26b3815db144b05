package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var departmentColumns = []string{"id", "name", "semester_count"}

type pgDepartmentRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanDepartment(row interface{ Scan(...any) error }) (*models.Department, error) {
	var d models.Department
	if err := row.Scan(&d.ID, &d.Name, &d.SemesterCount); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a department
func (r *pgDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query, args, err := r.sb.Insert("departments").
		Columns(departmentColumns...).
		Values(department.ID, department.Name, department.SemesterCount).
		ToSql()
	if err != nil {
		return buildErr(err, "insert department")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating department")
}

// GetByID retrieves a department by ID
func (r *pgDepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	query, args, err := r.sb.Select(departmentColumns...).From("departments").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, buildErr(err, "get department")
	}
	d, err := scanDepartment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving department")
	}
	return d, nil
}

// GetByIDs retrieves the departments whose id is in ids
func (r *pgDepartmentRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Department, error) {
	if len(ids) == 0 {
		return []*models.Department{}, nil
	}
	return r.list(ctx, r.sb.Select(departmentColumns...).From("departments").
		Where(squirrel.Eq{"id": ids}).OrderBy("created_at"))
}

// GetAll retrieves all departments
func (r *pgDepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	return r.list(ctx, r.sb.Select(departmentColumns...).From("departments").OrderBy("created_at"))
}

func (r *pgDepartmentRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Department, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "list departments")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing departments")
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, mapError(err, "error scanning department")
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating departments")
	}
	return departments, nil
}

// Update changes the department name
func (r *pgDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query, args, err := r.sb.Update("departments").
		Set("name", department.Name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": department.ID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update department")
	}
	return execOne(ctx, r.q, query, args, "error updating department")
}

// Delete removes a department row
func (r *pgDepartmentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("departments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete department")
	}
	return execOne(ctx, r.q, query, args, "error deleting department")
}

// Count returns the number of departments
func (r *pgDepartmentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "departments")
}
