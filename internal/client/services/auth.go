// Package services contains application services for the board client.
// This file defines the authentication service: register, login and logout
// on top of the API client and the session store.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/client/session"
	"github.com/dmitrijs2005/boardkeeper/internal/client/token"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
)

// DefaultLogoutFlagTTL is how long JustLoggedOut stays set after a logout.
const DefaultLogoutFlagTTL = 100 * time.Millisecond

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: obtain a credential from the server and store it in
//     the session. On failure the session's Error holds the message for the
//     user and the returned error wraps the cause.
//   - Logout: drop the credential locally; the server keeps no session.
//   - ClearError: reset the session's error message.
//   - State: snapshot of the session.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte, nickname string) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context)
	ClearError(ctx context.Context)
	State() session.State
}

// SessionStore is the part of session.Store the services drive.
type SessionStore interface {
	Begin(ctx context.Context, op session.Op) uint64
	Dispatch(ctx context.Context, a session.Action)
	Snapshot() session.State
	Subscribe(fn func(session.State)) func()
}

// ProfileDecoder turns an issued credential into the user profile.
type ProfileDecoder interface {
	Profile(token string) *token.Profile
	IsExpired(token string) (expired bool, known bool)
}

type authService struct {
	client client.Client
	store  SessionStore
	codec  ProfileDecoder
	logger logging.Logger

	logoutFlagTTL time.Duration
	mu            sync.Mutex
	resetPending  bool
}

// NewAuthService constructs an AuthService. logoutFlagTTL <= 0 means
// DefaultLogoutFlagTTL.
//
// The service watches the store: whatever logs the user out (Logout, the
// request gateway on a 401, the expiry watcher), JustLoggedOut is reset
// logoutFlagTTL after it was set.
func NewAuthService(api client.Client, store SessionStore, codec ProfileDecoder, logger logging.Logger,
	logoutFlagTTL time.Duration) AuthService {
	if logoutFlagTTL <= 0 {
		logoutFlagTTL = DefaultLogoutFlagTTL
	}
	a := &authService{
		client:        api,
		store:         store,
		codec:         codec,
		logger:        logger,
		logoutFlagTTL: logoutFlagTTL,
	}
	store.Subscribe(a.watchLogoutFlag)
	a.watchLogoutFlag(store.Snapshot())
	return a
}

// watchLogoutFlag arms the reset timer for a state with JustLoggedOut set,
// unless one is already pending.
func (a *authService) watchLogoutFlag(st session.State) {
	if !st.JustLoggedOut {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.resetPending {
		return
	}
	a.resetPending = true
	time.AfterFunc(a.logoutFlagTTL, func() {
		a.mu.Lock()
		a.resetPending = false
		a.mu.Unlock()
		a.store.Dispatch(context.Background(), session.ClearLogoutFlag{})
	})
}

func (a *authService) Register(ctx context.Context, email string, password []byte, nickname string) error {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || len(password) == 0 || nickname == "" {
		return fmt.Errorf("%w: email, password and nickname are required", common.ErrValidation)
	}

	req := models.RegisterRequest{Email: email, Password: string(password), Nickname: nickname}
	return a.issue(ctx, session.OpRegister, func(ctx context.Context) (*models.TokenResponse, error) {
		return a.client.Register(ctx, req)
	})
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	req := models.LoginRequest{Email: email, Password: string(password)}
	return a.issue(ctx, session.OpLogin, func(ctx context.Context) (*models.TokenResponse, error) {
		return a.client.Login(ctx, req)
	})
}

// issue runs one credential-issuing call and settles the session with its
// outcome. A settlement superseded by a newer call or a logout is ignored
// by the store.
func (a *authService) issue(ctx context.Context, op session.Op,
	call func(ctx context.Context) (*models.TokenResponse, error)) error {
	seq := a.store.Begin(ctx, op)

	resp, err := call(ctx)
	if err != nil {
		msg, ok := client.ServerMessage(err)
		if !ok {
			msg = op.DefaultMessage()
		}
		a.store.Dispatch(ctx, session.Rejected{Op: op, Seq: seq, Message: msg})
		return fmt.Errorf("%s error: %w", op, err)
	}

	profile := a.codec.Profile(resp.AccessToken)
	if profile == nil {
		a.logger.Warn(ctx, "server issued an undecodable credential", "op", string(op))
		a.store.Dispatch(ctx, session.Rejected{Op: op, Seq: seq, Message: op.DefaultMessage()})
		return fmt.Errorf("%s error: %w", op, common.ErrInvalidToken)
	}
	if expired, known := a.codec.IsExpired(resp.AccessToken); known && expired {
		a.logger.Warn(ctx, "server issued an expired credential", "op", string(op))
		a.store.Dispatch(ctx, session.Rejected{Op: op, Seq: seq, Message: op.DefaultMessage()})
		return fmt.Errorf("%s error: credential already expired: %w", op, common.ErrInvalidToken)
	}

	a.store.Dispatch(ctx, session.Issued{Op: op, Seq: seq, Credential: resp.AccessToken, Profile: profile})
	a.logger.Info(ctx, "credential issued", "op", string(op), "email", profile.Email)
	return nil
}

// Logout clears the session. JustLoggedOut is reset by watchLogoutFlag.
func (a *authService) Logout(ctx context.Context) {
	a.store.Dispatch(ctx, session.Logout{})
	a.logger.Info(ctx, "logged out")
}

func (a *authService) ClearError(ctx context.Context) {
	a.store.Dispatch(ctx, session.ClearError{})
}

func (a *authService) State() session.State {
	return a.store.Snapshot()
}
