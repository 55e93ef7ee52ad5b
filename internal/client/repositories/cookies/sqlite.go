package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Cookie) error {
	var expires sql.NullInt64
	if !c.Expires.IsZero() {
		expires = sql.NullInt64{Int64: c.Expires.Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (name, path, domain, value, expires_at, secure, same_site)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, path, domain) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			secure = excluded.secure,
			same_site = excluded.same_site
	`, c.Name, c.Path, c.Domain, c.Value, expires, c.Secure, c.SameSite)
	if err != nil {
		return fmt.Errorf("failed to upsert cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name, path, domain string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cookies WHERE name = ? AND path = ? AND domain = ?`, name, path, domain)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Cookie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, path, domain, value, expires_at, secure, same_site
		FROM cookies ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	var result []*models.Cookie
	for rows.Next() {
		var (
			c       models.Cookie
			expires sql.NullInt64
		)
		if err := rows.Scan(&c.Name, &c.Path, &c.Domain, &c.Value, &expires, &c.Secure, &c.SameSite); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		if expires.Valid {
			c.Expires = time.Unix(expires.Int64, 0).UTC()
		}
		result = append(result, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}

	return result, nil
}

// DeleteExpired purges cookies whose expiry is not after now and returns
// how many were removed.
func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cookies WHERE expires_at IS NOT NULL AND expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cookies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired cookies: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}
