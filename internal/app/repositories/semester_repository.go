package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var semesterColumns = []string{"id", "number", "department_id"}

type pgSemesterRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanSemester(row interface{ Scan(...any) error }) (*models.Semester, error) {
	var s models.Semester
	if err := row.Scan(&s.ID, &s.Number, &s.DepartmentID); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateBatch inserts all semesters with a single statement
func (r *pgSemesterRepository) CreateBatch(ctx context.Context, semesters []*models.Semester) error {
	if len(semesters) == 0 {
		return nil
	}
	b := r.sb.Insert("semesters").Columns(semesterColumns...)
	for _, s := range semesters {
		b = b.Values(s.ID, s.Number, s.DepartmentID)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return buildErr(err, "insert semesters")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating semesters")
}

// GetByID retrieves a semester by ID
func (r *pgSemesterRepository) GetByID(ctx context.Context, id string) (*models.Semester, error) {
	return r.one(ctx, r.sb.Select(semesterColumns...).From("semesters").Where(squirrel.Eq{"id": id}))
}

// GetByIDs retrieves the semesters whose id is in ids
func (r *pgSemesterRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Semester, error) {
	if len(ids) == 0 {
		return []*models.Semester{}, nil
	}
	return r.list(ctx, r.sb.Select(semesterColumns...).From("semesters").
		Where(squirrel.Eq{"id": ids}).OrderBy("number"))
}

// GetByDepartment lists the semesters of a department ordered by number
func (r *pgSemesterRepository) GetByDepartment(ctx context.Context, departmentID string) ([]*models.Semester, error) {
	return r.list(ctx, r.sb.Select(semesterColumns...).From("semesters").
		Where(squirrel.Eq{"department_id": departmentID}).OrderBy("number"))
}

// FindByDepartmentAndNumber resolves a semester number within a department
func (r *pgSemesterRepository) FindByDepartmentAndNumber(ctx context.Context, departmentID string, number int) (*models.Semester, error) {
	return r.one(ctx, r.sb.Select(semesterColumns...).From("semesters").
		Where(squirrel.Eq{"department_id": departmentID, "number": number}))
}

// FindFirstByNumber returns the oldest semester carrying number
func (r *pgSemesterRepository) FindFirstByNumber(ctx context.Context, number int) (*models.Semester, error) {
	return r.one(ctx, r.sb.Select(semesterColumns...).From("semesters").
		Where(squirrel.Eq{"number": number}).OrderBy("created_at", "id").Limit(1))
}

// DeleteByDepartment removes every semester of a department and returns their ids
func (r *pgSemesterRepository) DeleteByDepartment(ctx context.Context, departmentID string) ([]string, error) {
	query, args, err := r.sb.Delete("semesters").
		Where(squirrel.Eq{"department_id": departmentID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, buildErr(err, "delete semesters")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error deleting semesters")
	}
	ids, err := collectIDs(rows)
	return ids, mapError(err, "error deleting semesters")
}

func (r *pgSemesterRepository) one(ctx context.Context, b squirrel.SelectBuilder) (*models.Semester, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "get semester")
	}
	s, err := scanSemester(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving semester")
	}
	return s, nil
}

func (r *pgSemesterRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Semester, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "list semesters")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing semesters")
	}
	defer rows.Close()

	semesters := []*models.Semester{}
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, mapError(err, "error scanning semester")
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating semesters")
	}
	return semesters, nil
}
