package repositories

import (
	"context"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var internalColumns = []string{"id", "paper_id", "marks"}

type pgInternalRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanInternal(row interface{ Scan(...any) error }) (*models.Internal, error) {
	var in models.Internal
	if err := row.Scan(&in.ID, &in.PaperID, &in.Marks); err != nil {
		return nil, err
	}
	if in.Marks == nil {
		in.Marks = []models.Mark{}
	}
	return &in, nil
}

func marksParam(marks []models.Mark) ([]byte, error) {
	if marks == nil {
		marks = []models.Mark{}
	}
	return json.Marshal(marks)
}

// Create inserts the internal marks of a paper
func (r *pgInternalRepository) Create(ctx context.Context, internal *models.Internal) error {
	marks, err := marksParam(internal.Marks)
	if err != nil {
		return err
	}
	query, args, err := r.sb.Insert("internals").
		Columns(internalColumns...).
		Values(internal.ID, internal.PaperID, squirrel.Expr("?::jsonb", string(marks))).
		ToSql()
	if err != nil {
		return buildErr(err, "insert internal")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating internal")
}

// GetByPaper retrieves the internal marks of a paper
func (r *pgInternalRepository) GetByPaper(ctx context.Context, paperID string) (*models.Internal, error) {
	query, args, err := r.sb.Select(internalColumns...).From("internals").
		Where(squirrel.Eq{"paper_id": paperID}).ToSql()
	if err != nil {
		return nil, buildErr(err, "get internal")
	}
	in, err := scanInternal(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving internal")
	}
	return in, nil
}

// GetByStudent lists every internal record holding a mark for the student
func (r *pgInternalRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Internal, error) {
	probe, err := json.Marshal([]map[string]string{{"studentId": studentID}})
	if err != nil {
		return nil, err
	}
	query, args, err := r.sb.Select(internalColumns...).From("internals").
		Where(squirrel.Expr("marks @> ?::jsonb", string(probe))).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, buildErr(err, "list internals")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing internals")
	}
	defer rows.Close()

	internals := []*models.Internal{}
	for rows.Next() {
		in, err := scanInternal(rows)
		if err != nil {
			return nil, mapError(err, "error scanning internal")
		}
		internals = append(internals, in)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating internals")
	}
	return internals, nil
}

// Update replaces the marks of a paper
func (r *pgInternalRepository) Update(ctx context.Context, internal *models.Internal) error {
	marks, err := marksParam(internal.Marks)
	if err != nil {
		return err
	}
	query, args, err := r.sb.Update("internals").
		Set("marks", squirrel.Expr("?::jsonb", string(marks))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"paper_id": internal.PaperID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update internal")
	}
	return execOne(ctx, r.q, query, args, "error updating internal")
}

// DeleteByPaper removes the internal marks of a paper
func (r *pgInternalRepository) DeleteByPaper(ctx context.Context, paperID string) error {
	query, args, err := r.sb.Delete("internals").Where(squirrel.Eq{"paper_id": paperID}).ToSql()
	if err != nil {
		return buildErr(err, "delete internal")
	}
	return execOne(ctx, r.q, query, args, "error deleting internal")
}
