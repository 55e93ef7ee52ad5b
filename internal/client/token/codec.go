// Package token decodes the bearer credential issued by the board API.
//
// Decoding is not verification: the signature segment is ignored and the
// payload is trusted only as a hint about who is logged in and until when.
// Every failure degrades to "no claims" so callers can treat a broken
// credential as an anonymous session instead of an error.
package token

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiringSoonThreshold is the window IsExpiringSoon uses when the
// caller passes zero.
const DefaultExpiringSoonThreshold = 5 * time.Minute

type Codec struct {
	logger logging.Logger
	parser *jwt.Parser
	now    func() time.Time
}

type Option func(*Codec)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(logger logging.Logger, opts ...Option) *Codec {
	c := &Codec{
		logger: logger,
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Decode returns the payload claims of token, or nil when token is empty or
// malformed.
func (c *Codec) Decode(token string) *Claims {
	if token == "" {
		return nil
	}

	ctx := context.Background()

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		c.logger.Warn(ctx, "malformed credential", "segments", len(parts))
		return nil
	}

	payload, err := c.parser.DecodeSegment(parts[1])
	if err != nil {
		c.logger.Warn(ctx, "credential payload is not base64url", "error", err)
		return nil
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		c.logger.Warn(ctx, "credential payload is not valid claims", "error", err)
		return nil
	}
	return claims
}

// IsExpired reports whether the exp claim lies in the past. known is false
// when the token cannot be decoded or carries no exp claim.
func (c *Codec) IsExpired(token string) (expired bool, known bool) {
	claims := c.Decode(token)
	if claims == nil || claims.ExpiresAt == nil {
		return false, false
	}
	return claims.ExpiresAt.Unix() < c.now().Unix(), true
}

// Profile maps the claims of token onto the session profile, or returns nil
// when the token cannot be decoded.
func (c *Codec) Profile(token string) *Profile {
	claims := c.Decode(token)
	if claims == nil {
		return nil
	}
	return &Profile{
		Email:     claims.Subject,
		Nickname:  claims.Nickname,
		Roles:     claims.Roles,
		IssuedAt:  numericDateUnix(claims.IssuedAt),
		ExpiresAt: numericDateUnix(claims.ExpiresAt),
	}
}

// SecondsUntilExpiry returns how many seconds remain before token expires.
// It is 0 for expired tokens and for tokens whose expiry is unknown.
func (c *Codec) SecondsUntilExpiry(token string) int64 {
	claims := c.Decode(token)
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return max(0, claims.ExpiresAt.Unix()-c.now().Unix())
}

// IsExpiringSoon reports whether fewer than threshold remain before token
// expires. Undecodable tokens count as expiring.
func (c *Codec) IsExpiringSoon(token string, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = DefaultExpiringSoonThreshold
	}
	return c.SecondsUntilExpiry(token) < int64(threshold/time.Second)
}
