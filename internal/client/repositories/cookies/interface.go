// Package cookies persists the client cookie jar.
package cookies

import (
	"context"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
)

// Repository stores cookies keyed by (name, path, domain).
type Repository interface {
	Upsert(ctx context.Context, c *models.Cookie) error
	Delete(ctx context.Context, name, path, domain string) error
	List(ctx context.Context) ([]*models.Cookie, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Clear(ctx context.Context) error
}
