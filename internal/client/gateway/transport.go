// Package gateway is the request pipeline between the API client and the
// network. Every outgoing call passes through Transport, which attaches the
// session credential and reacts to the server rejecting it.
package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// SessionExpiredMessage is shown on the login screen after a 401.
const SessionExpiredMessage = "Your session has expired. Please log in again."

// Session is the part of the session store the pipeline needs.
type Session interface {
	Credential() (string, bool)
	Invalidate(ctx context.Context)
}

type retriedKey struct{}

// WithRetried marks requests made with ctx as retries. A 401 on a retried
// request is passed through without logging the user out.
func WithRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func isRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

type Transport struct {
	base    http.RoundTripper
	session Session
	nav     routes.Navigator
	exempt  []string
	limiter *rate.Limiter
	logger  logging.Logger
}

type Option func(*Transport)

// WithBase sets the underlying RoundTripper. Defaults to
// http.DefaultTransport.
func WithBase(rt http.RoundTripper) Option {
	return func(t *Transport) { t.base = rt }
}

// WithRateLimit throttles outgoing requests to rps per second. rps <= 0
// disables throttling.
func WithRateLimit(rps float64) Option {
	return func(t *Transport) {
		if rps <= 0 {
			t.limiter = nil
			return
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithExemptPaths replaces the paths that never carry a credential.
func WithExemptPaths(paths ...string) Option {
	return func(t *Transport) { t.exempt = paths }
}

func NewTransport(session Session, nav routes.Navigator, logger logging.Logger, opts ...Option) *Transport {
	t := &Transport{
		base:    http.DefaultTransport,
		session: session,
		nav:     nav,
		exempt:  []string{common.RegisterPath, common.LoginPath},
		logger:  logger,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	out := req.Clone(ctx)
	requestID := uuid.NewString()
	out.Header.Set(common.RequestIDHeaderName, requestID)
	ctx = logging.ContextWith(ctx, "request_id", requestID)

	authorized := false
	if !t.isExempt(out.URL.Path) {
		if credential, ok := t.session.Credential(); ok {
			out.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+credential)
			authorized = true
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		t.logger.Debug(ctx, "request failed", "method", out.Method, "path", out.URL.Path,
			"error", err)
		return nil, err
	}

	t.logger.Debug(ctx, "request done", "method", out.Method, "path", out.URL.Path,
		"status", resp.StatusCode)

	// Only a rejected credential ends the session. A 401 from login or
	// register is a wrong password and belongs to the caller.
	if resp.StatusCode == http.StatusUnauthorized && authorized && !isRetried(ctx) {
		t.logger.Warn(ctx, "credential rejected by server, logging out", "path", out.URL.Path)
		t.session.Invalidate(ctx)
		t.nav.Navigate(routes.Redirect{To: routes.Login, Message: SessionExpiredMessage})
	}

	return resp, nil
}

func (t *Transport) isExempt(path string) bool {
	for _, p := range t.exempt {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
