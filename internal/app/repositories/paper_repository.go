package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var paperColumns = []string{"id", "code", "title", "semester_id", "department_id", "teacher_id"}

type pgPaperRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanPaper(row interface{ Scan(...any) error }) (*models.Paper, error) {
	var p models.Paper
	if err := row.Scan(&p.ID, &p.Code, &p.Title, &p.SemesterID, &p.DepartmentID, &p.TeacherID); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a paper
func (r *pgPaperRepository) Create(ctx context.Context, paper *models.Paper) error {
	query, args, err := r.sb.Insert("papers").
		Columns(paperColumns...).
		Values(paper.ID, paper.Code, paper.Title, paper.SemesterID, paper.DepartmentID, paper.TeacherID).
		ToSql()
	if err != nil {
		return buildErr(err, "insert paper")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating paper")
}

// GetByID retrieves a paper by ID
func (r *pgPaperRepository) GetByID(ctx context.Context, id string) (*models.Paper, error) {
	query, args, err := r.sb.Select(paperColumns...).From("papers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, buildErr(err, "get paper")
	}
	p, err := scanPaper(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving paper")
	}
	return p, nil
}

// GetByIDs retrieves the papers whose id is in ids
func (r *pgPaperRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Paper, error) {
	if len(ids) == 0 {
		return []*models.Paper{}, nil
	}
	return r.list(ctx, r.sb.Select(paperColumns...).From("papers").
		Where(squirrel.Eq{"id": ids}).OrderBy("code"))
}

// GetAll retrieves all papers
func (r *pgPaperRepository) GetAll(ctx context.Context) ([]*models.Paper, error) {
	return r.list(ctx, r.sb.Select(paperColumns...).From("papers").OrderBy("created_at"))
}

// GetByDepartment lists the papers of a department
func (r *pgPaperRepository) GetByDepartment(ctx context.Context, departmentID string) ([]*models.Paper, error) {
	return r.list(ctx, r.sb.Select(paperColumns...).From("papers").
		Where(squirrel.Eq{"department_id": departmentID}).OrderBy("code"))
}

// GetBySemester lists the papers taught in a semester
func (r *pgPaperRepository) GetBySemester(ctx context.Context, semesterID string) ([]*models.Paper, error) {
	return r.list(ctx, r.sb.Select(paperColumns...).From("papers").
		Where(squirrel.Eq{"semester_id": semesterID}).OrderBy("code"))
}

// Update overwrites the mutable paper fields
func (r *pgPaperRepository) Update(ctx context.Context, paper *models.Paper) error {
	query, args, err := r.sb.Update("papers").
		SetMap(map[string]interface{}{
			"code":          paper.Code,
			"title":         paper.Title,
			"semester_id":   paper.SemesterID,
			"department_id": paper.DepartmentID,
			"teacher_id":    paper.TeacherID,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": paper.ID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update paper")
	}
	return execOne(ctx, r.q, query, args, "error updating paper")
}

// Delete removes a paper
func (r *pgPaperRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("papers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete paper")
	}
	return execOne(ctx, r.q, query, args, "error deleting paper")
}

// Count returns the number of papers
func (r *pgPaperRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "papers")
}

func (r *pgPaperRepository) list(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Paper, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "list papers")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing papers")
	}
	defer rows.Close()

	papers := []*models.Paper{}
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, mapError(err, "error scanning paper")
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating papers")
	}
	return papers, nil
}
