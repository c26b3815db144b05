package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/db"
)

var adminColumns = []string{"id", "name", "username", "password_hash"}

type pgAdminRepository struct {
	q  db.DBTX
	sb squirrel.StatementBuilderType
}

func (r *pgAdminRepository) one(ctx context.Context, b squirrel.SelectBuilder) (*models.Admin, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, buildErr(err, "get admin")
	}
	var a models.Admin
	if err := r.q.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Name, &a.Username, &a.PasswordHash); err != nil {
		return nil, mapError(err, "error retrieving admin")
	}
	return &a, nil
}

// Create inserts an administrator
func (r *pgAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query, args, err := r.sb.Insert("admins").
		Columns(adminColumns...).
		Values(admin.ID, admin.Name, admin.Username, admin.PasswordHash).
		ToSql()
	if err != nil {
		return buildErr(err, "insert admin")
	}
	_, err = r.q.Exec(ctx, query, args...)
	return mapError(err, "error creating admin")
}

// GetByID retrieves an administrator by ID
func (r *pgAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.one(ctx, r.sb.Select(adminColumns...).From("admins").Where(squirrel.Eq{"id": id}))
}

// GetByUsername retrieves an administrator by login name
func (r *pgAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.one(ctx, r.sb.Select(adminColumns...).From("admins").Where(squirrel.Eq{"username": username}))
}

// Update overwrites name, username and password hash
func (r *pgAdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	query, args, err := r.sb.Update("admins").
		SetMap(map[string]interface{}{
			"name":          admin.Name,
			"username":      admin.Username,
			"password_hash": admin.PasswordHash,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": admin.ID}).
		ToSql()
	if err != nil {
		return buildErr(err, "update admin")
	}
	return execOne(ctx, r.q, query, args, "error updating admin")
}

// UpdatePasswordHash replaces the stored hash and leaves every other column alone
func (r *pgAdminRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return setPasswordHash(ctx, r.q, r.sb, "admins", id, hash)
}

// Delete removes an administrator
func (r *pgAdminRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("admins").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return buildErr(err, "delete admin")
	}
	return execOne(ctx, r.q, query, args, "error deleting admin")
}

// Count returns the number of administrators
func (r *pgAdminRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, r.sb, "admins")
}
