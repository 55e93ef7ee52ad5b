package cookies

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/common"
)

// Options are the attributes of a cookie written by Store.Set.
// ExpiresInDays == 0 writes a session cookie; a negative value writes an
// already-expired cookie, which deletes it.
type Options struct {
	ExpiresInDays int
	Path          string
	Domain        string
	Secure        bool
	SameSite      http.SameSite
}

type Store struct {
	medium Medium
	clock  Clock
}

func NewStore(medium Medium, clock Clock) *Store {
	return &Store{medium: medium, clock: clock}
}

func (s *Store) Set(ctx context.Context, name, value string, opts Options) error {
	c := &http.Cookie{
		Name:     escapeName(name),
		Value:    url.PathEscape(value),
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	}
	if c.Path == "" {
		c.Path = "/"
	}
	if opts.ExpiresInDays != 0 {
		c.Expires = s.clock.now().Add(time.Duration(opts.ExpiresInDays) * 24 * time.Hour).UTC()
	}

	raw := c.String()
	if raw == "" {
		return fmt.Errorf("%w: name %q", common.ErrInvalidCookie, name)
	}
	return s.medium.SetCookie(ctx, raw)
}

// Get returns the decoded value of the named cookie. ok is false when no
// such cookie is stored.
func (s *Store) Get(ctx context.Context, name string) (value string, ok bool, err error) {
	doc, err := s.medium.Cookie(ctx)
	if err != nil {
		return "", false, err
	}

	prefix := escapeName(name) + "="
	for _, entry := range strings.Split(doc, ";") {
		entry = strings.TrimLeft(entry, " ")
		if !strings.HasPrefix(entry, prefix) {
			continue
		}
		v, err := url.PathUnescape(entry[len(prefix):])
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", common.ErrInvalidCookie, err)
		}
		return v, true, nil
	}
	return "", false, nil
}

// Remove deletes the named cookie. Only Path and Domain of opts matter;
// they must match the ones the cookie was set with.
func (s *Store) Remove(ctx context.Context, name string, opts Options) error {
	return s.Set(ctx, name, "", Options{
		ExpiresInDays: -1,
		Path:          opts.Path,
		Domain:        opts.Domain,
	})
}

// escapeName encodes every byte outside the unreserved URL set, so any name
// is a valid cookie token. Spaces become %20, matching the value encoding.
func escapeName(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
