package cookies

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	cookierepo "github.com/dmitrijs2005/boardkeeper/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/dbx"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
)

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Medium is the raw cookie storage a Store writes to and reads from.
type Medium interface {
	SetCookie(ctx context.Context, raw string) error
	Cookie(ctx context.Context) (string, error)
}

type Jar struct {
	db     *sql.DB
	repo   cookierepo.Repository
	logger logging.Logger
	clock  Clock
}

// NewJar returns a jar stored in db, which must carry the cookies table.
func NewJar(db *sql.DB, logger logging.Logger, clock Clock) *Jar {
	return &Jar{
		db:     db,
		repo:   cookierepo.NewSQLiteRepository(db),
		logger: logger,
		clock:  clock,
	}
}

// SetCookie stores the cookie described by raw, or deletes it when raw
// carries an expiry that is not in the future. Expired rows are evicted in
// the same transaction.
func (j *Jar) SetCookie(ctx context.Context, raw string) error {
	hc, err := http.ParseSetCookie(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidCookie, err)
	}

	now := j.clock.now()
	c := &models.Cookie{
		Name:     hc.Name,
		Value:    hc.Value,
		Path:     hc.Path,
		Domain:   strings.TrimPrefix(hc.Domain, "."),
		Expires:  hc.Expires,
		Secure:   hc.Secure,
		SameSite: sameSiteName(hc.SameSite),
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if hc.MaxAge > 0 {
		c.Expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
	}

	remove := hc.MaxAge < 0 || c.Expired(now)

	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := cookierepo.NewSQLiteRepository(tx)
		if _, err := repo.DeleteExpired(ctx, now); err != nil {
			return err
		}
		if remove {
			j.logger.Debug(ctx, "cookie removed", "name", c.Name, "path", c.Path)
			return repo.Delete(ctx, c.Name, c.Path, c.Domain)
		}
		return repo.Upsert(ctx, c)
	})
}

// Cookie returns the live cookies as "n1=v1; n2=v2" in insertion order.
func (j *Jar) Cookie(ctx context.Context) (string, error) {
	list, err := j.repo.List(ctx)
	if err != nil {
		return "", err
	}

	now := j.clock.now()
	parts := make([]string, 0, len(list))
	for _, c := range list {
		if c.Expired(now) {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; "), nil
}

// Purge drops cookies that expired while the client was not running.
func (j *Jar) Purge(ctx context.Context) (int64, error) {
	n, err := j.repo.DeleteExpired(ctx, j.clock.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		j.logger.Info(ctx, "expired cookies purged", "count", n)
	}
	return n, nil
}

func sameSiteName(s http.SameSite) string {
	switch s {
	case http.SameSiteLaxMode:
		return "lax"
	case http.SameSiteStrictMode:
		return "strict"
	case http.SameSiteNoneMode:
		return "none"
	default:
		return ""
	}
}
