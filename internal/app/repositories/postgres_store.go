package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yigit/campuslink/internal/db"
	"github.com/yigit/campuslink/internal/pkg/dberrors"
	"github.com/yigit/campuslink/internal/pkg/logger"
)

// PostgresStore is the PostgreSQL backed Store
type PostgresStore struct {
	database *db.PostgresDB
	q        db.DBTX
	sb       squirrel.StatementBuilderType
	inTx     bool
}

// NewPostgresStore creates a Store on top of the connection pool
func NewPostgresStore(database *db.PostgresDB) *PostgresStore {
	return &PostgresStore{
		database: database,
		q:        database.Pool,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx runs fn inside a database transaction
func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &PostgresStore{database: s.database, q: tx, sb: s.sb, inTx: true})
	})
}

// Ping reports whether the database answers
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.database.Ping(ctx)
}

// Collector exposes connection pool statistics
func (s *PostgresStore) Collector() prometheus.Collector {
	return s.database.Collector()
}

func (s *PostgresStore) Departments() DepartmentRepository {
	return &pgDepartmentRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Semesters() SemesterRepository {
	return &pgSemesterRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Teachers() TeacherRepository {
	return &pgTeacherRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Students() StudentRepository {
	return &pgStudentRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Papers() PaperRepository {
	return &pgPaperRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) TimeSchedules() TimeScheduleRepository {
	return &pgTimeScheduleRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Internals() InternalRepository {
	return &pgInternalRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Announcements() AnnouncementRepository {
	return &pgAnnouncementRepository{q: s.q, sb: s.sb}
}

func (s *PostgresStore) Admins() AdminRepository {
	return &pgAdminRepository{q: s.q, sb: s.sb}
}

// mapError translates driver errors into repository errors
func mapError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case dberrors.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	case dberrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrReferenced)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// buildErr logs and wraps a squirrel build failure
func buildErr(err error, what string) error {
	logger.Error().Err(err).Msgf("Error building %s SQL", what)
	return fmt.Errorf("error building %s query: %w", what, err)
}

// execOne runs a write that must touch exactly one row
func execOne(ctx context.Context, q db.DBTX, query string, args []interface{}, op string) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, op)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// count runs a SELECT COUNT(*) over table
func count(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, table string) (int64, error) {
	query, args, err := sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, buildErr(err, "count "+table)
	}
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapError(err, "error counting "+table)
	}
	return n, nil
}

// setPasswordHash rewrites only the password_hash column of one row
func setPasswordHash(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, table, id, hash string) error {
	query, args, err := sb.Update(table).
		Set("password_hash", hash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return buildErr(err, "update "+table+" password")
	}
	return execOne(ctx, q, query, args, "error updating "+table+" password")
}

// collectIDs reads a single text column from every row
func collectIDs(rows pgx.Rows) ([]string, error) {
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
