package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var announcementColumns = []string{"id", "content", "author", "datetime", "created_at", "updated_at"}

type pgAnnouncementRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func scanAnnouncement(row interface{ Scan(...any) error }) (*models.Announcement, error) {
	var a models.Announcement
	if err := row.Scan(&a.ID, &a.Content, &a.From, &a.Datetime, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an announcement and fills its timestamps
func (r *pgAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	query, args, err := r.sb.Insert("announcements").
		Columns("id", "content", "author", "datetime").
		Values(announcement.ID, announcement.Content, announcement.From, announcement.Datetime).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return buildErr(err, "insert announcement")
	}
	err = r.q.QueryRow(ctx, query, args...).Scan(&announcement.CreatedAt, &announcement.UpdatedAt)
	return mapError(err, "error creating announcement")
}

// GetByID retrieves an announcement by ID
func (r *pgAnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	query, args, err := r.sb.Select(announcementColumns...).From("announcements").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, buildErr(err, "get announcement")
	}
	a, err := scanAnnouncement(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "error retrieving announcement")
	}
	return a, nil
}

// List returns one page of announcements, newest first
func (r *pgAnnouncementRepository) List(ctx context.Context, offset, limit uint64) ([]*models.Announcement, error) {
	query, args, err := r.sb.Select(announcementColumns...).From("announcements").
		OrderBy("created_at DESC", "id").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, buildErr(err, "list announcements")
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "error listing announcements")
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, mapError(err, "error scanning announcement")
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating announcements")
	}
	return announcements, nil
}

// Update overwrites content, author and display time
func (r *pgAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	query, args, err := r.sb.Update("announcements").
		Set("content", announcement.Content).
		Set("author", announcement.From).
		Set("datetime", announcement.Datetime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": announcement.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return buildErr(err, "update announcement")
	}
	err = r.q.QueryRow(ctx, query, args...).Scan(&announcement.UpdatedAt)
	return mapError(err, "error updating announcement")
}

// Delete removes an announcement
func (r *pgAnnouncementRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("announcements").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete announcement")
	}
	return execOne(ctx, r.q, query, args, "error deleting announcement")
}

// Count returns the number of announcements
func (r *pgAnnouncementRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "announcements")
}
