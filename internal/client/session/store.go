package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/boardkeeper/internal/client/cookies"
	"github.com/dmitrijs2005/boardkeeper/internal/client/token"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
)

// CredentialStore persists named values between runs.
type CredentialStore interface {
	Set(ctx context.Context, name, value string, opts cookies.Options) error
	Get(ctx context.Context, name string) (string, bool, error)
	Remove(ctx context.Context, name string, opts cookies.Options) error
}

// TokenDecoder reads the claims of a credential.
type TokenDecoder interface {
	IsExpired(token string) (expired bool, known bool)
	Profile(token string) *token.Profile
}

type Store struct {
	mu     sync.Mutex
	state  State
	seq    uint64
	subs   map[int]func(State)
	nextID int

	creds      CredentialStore
	codec      TokenDecoder
	logger     logging.Logger
	cookieOpts cookies.Options
}

type Option func(*Store)

// WithCookie sets the lifetime in days and the Secure flag of the persisted
// credential cookie.
func WithCookie(ttlDays int, secure bool) Option {
	return func(s *Store) {
		s.cookieOpts.ExpiresInDays = ttlDays
		s.cookieOpts.Secure = secure
	}
}

// New restores the session from the credential cookie. A missing,
// undecodable or expired credential yields a logged-out session; the latter
// two also remove the cookie.
func New(ctx context.Context, creds CredentialStore, codec TokenDecoder, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		subs:   make(map[int]func(State)),
		creds:  creds,
		codec:  codec,
		logger: logger,
		cookieOpts: cookies.Options{
			ExpiresInDays: 1,
			Path:          "/",
			SameSite:      http.SameSiteLaxMode,
		},
	}
	for _, o := range opts {
		o(s)
	}

	s.state = s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) State {
	credential, ok, err := s.creds.Get(ctx, common.AccessTokenCookieName)
	if err != nil {
		s.logger.Error(ctx, "failed to read stored credential", "error", err)
		return State{}
	}
	if !ok || credential == "" {
		return State{}
	}

	profile := s.codec.Profile(credential)
	if profile == nil {
		s.logger.Warn(ctx, "stored credential cannot be decoded, discarding it")
		s.removeCredential(ctx)
		return State{}
	}

	if expired, known := s.codec.IsExpired(credential); known && expired {
		s.logger.Info(ctx, "stored credential expired", "email", profile.Email)
		s.removeCredential(ctx)
		return State{}
	}

	s.logger.Info(ctx, "session restored", "email", profile.Email)
	return authenticated(credential, profile)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Credential returns the credential to attach to API calls.
func (s *Store) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Credential, s.state.IsAuthenticated
}

// Begin starts a credential-issuing operation and returns the sequence
// number its settlement must carry.
func (s *Store) Begin(ctx context.Context, op Op) uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	state, subs := s.apply(ctx, Requested{Op: op, Seq: seq})
	s.mu.Unlock()

	notify(subs, state)
	return seq
}

func (s *Store) Dispatch(ctx context.Context, a Action) {
	s.mu.Lock()
	state, subs := s.apply(ctx, a)
	s.mu.Unlock()

	notify(subs, state)
}

// Invalidate logs the user out, e.g. after the server rejected the
// credential.
func (s *Store) Invalidate(ctx context.Context) {
	s.Dispatch(ctx, Logout{})
}

// Subscribe registers fn to receive every new state. The returned function
// cancels the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// apply runs the reducer and its effect. The caller holds s.mu, so effects
// reach storage in the order the reducer produced them.
func (s *Store) apply(ctx context.Context, a Action) (State, []func(State)) {
	a = s.screen(ctx, a)
	next, effect := Reduce(s.state, a)
	s.state = next

	s.logger.Debug(ctx, "session transition", "action", fmt.Sprintf("%T", a), "effect", effect.String(),
		"authenticated", next.IsAuthenticated, "loading", next.IsLoading)

	switch effect {
	case EffectPersistCredential:
		s.persistCredential(ctx, next.Credential)
	case EffectRemoveCredential:
		s.removeCredential(ctx)
	}

	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return next.clone(), subs
}

// screen turns an Issued carrying an already expired credential into a
// rejection, so an authenticated state never holds an expired credential.
func (s *Store) screen(ctx context.Context, a Action) Action {
	issued, ok := a.(Issued)
	if !ok || issued.Credential == "" {
		return a
	}
	if expired, known := s.codec.IsExpired(issued.Credential); known && expired {
		s.logger.Warn(ctx, "issued credential already expired", "op", string(issued.Op))
		return Rejected{Op: issued.Op, Seq: issued.Seq, Message: issued.Op.DefaultMessage()}
	}
	return a
}

// persistCredential keeps the in-memory session even if the cookie cannot
// be written; the session is then lost on restart only.
func (s *Store) persistCredential(ctx context.Context, credential string) {
	if err := s.creds.Set(ctx, common.AccessTokenCookieName, credential, s.cookieOpts); err != nil {
		s.logger.Error(ctx, "failed to persist credential", "error", err)
	}
}

func (s *Store) removeCredential(ctx context.Context) {
	if err := s.creds.Remove(ctx, common.AccessTokenCookieName, s.cookieOpts); err != nil {
		s.logger.Error(ctx, "failed to remove credential", "error", err)
	}
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st.clone())
	}
}
