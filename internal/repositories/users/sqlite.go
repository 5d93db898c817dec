package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/dbx"
	"github.com/dmitrijs2005/medxscan/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, name, age, gender, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, nullableInt(u.Age), nullableString(u.Gender), u.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *SQLiteRepository) getBy(ctx context.Context, field, value string) (*models.User, error) {
	query := `SELECT id, email, name, age, gender, password_hash FROM users WHERE ` + field + ` = ?`
	row := r.db.QueryRowContext(ctx, query, value)

	var (
		u      models.User
		age    sql.NullInt64
		gender sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &age, &gender, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	u.Age = int(age.Int64)
	u.Gender = gender.String
	return &u, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *SQLiteRepository) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET name = ?, age = ?, gender = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, u.Name, nullableInt(u.Age), nullableString(u.Gender), u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}
