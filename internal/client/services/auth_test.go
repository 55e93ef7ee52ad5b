package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/client/cookies"
	"github.com/dmitrijs2005/boardkeeper/internal/client/models"
	"github.com/dmitrijs2005/boardkeeper/internal/client/session"
	"github.com/dmitrijs2005/boardkeeper/internal/client/token"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var fixedNow = time.Unix(1_700_000_000, 0)

func clock() time.Time { return fixedNow }

type env struct {
	creds *cookies.Store
	store *session.Store
	codec *token.Codec
}

func setupSession(t *testing.T) env {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jar := cookies.NewJar(db, logging.Nop(), clock)
	creds := cookies.NewStore(jar, clock)
	codec := token.NewCodec(logging.Nop(), token.WithClock(clock))

	return env{
		creds: creds,
		store: session.New(ctx, creds, codec, logging.Nop()),
		codec: codec,
	}
}

func mint(t *testing.T, email, nickname string) string {
	t.Helper()
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(fixedNow),
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
		},
		Nickname: nickname,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func storedCredential(t *testing.T, e env) (string, bool) {
	t.Helper()
	v, ok, err := e.creds.Get(context.Background(), common.AccessTokenCookieName)
	require.NoError(t, err)
	return v, ok
}

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	RegisterRet *models.TokenResponse
	RegisterErr error
	LoginRet    *models.TokenResponse
	LoginErr    error
	// LoginHook runs inside Login before it returns.
	LoginHook func()

	ListRet   *models.BoardPage
	BoardRet  *models.Board
	BoardErr  error
	DeleteErr error

	LastRegister models.RegisterRequest
	LastLogin    models.LoginRequest
	LastParams   models.PageParams
	LastInput    models.BoardInput
	LastID       int64
	Calls        int
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	f.mu.Lock()
	f.Calls++
	f.LastLogin = req
	hook := f.LoginHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) ListBoards(_ context.Context, params models.PageParams) (*models.BoardPage, error) {
	f.Calls++
	f.LastParams = params
	return f.ListRet, f.BoardErr
}

func (f *fakeClient) GetBoard(_ context.Context, id int64) (*models.Board, error) {
	f.Calls++
	f.LastID = id
	return f.BoardRet, f.BoardErr
}

func (f *fakeClient) CreateBoard(_ context.Context, in models.BoardInput) (*models.Board, error) {
	f.Calls++
	f.LastInput = in
	return f.BoardRet, f.BoardErr
}

func (f *fakeClient) UpdateBoard(_ context.Context, id int64, in models.BoardInput) (*models.Board, error) {
	f.Calls++
	f.LastID = id
	f.LastInput = in
	return f.BoardRet, f.BoardErr
}

func (f *fakeClient) DeleteBoard(_ context.Context, id int64) error {
	f.Calls++
	f.LastID = id
	return f.DeleteErr
}

// ---- TESTS ----

func TestLogin_Success_PersistsCredential(t *testing.T) {
	e := setupSession(t)
	tok := mint(t, "a@b.com", "al")
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: tok}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)
	password := []byte("secret")

	require.NoError(t, svc.Login(context.Background(), " a@b.com ", password))

	assert.Equal(t, models.LoginRequest{Email: "a@b.com", Password: "secret"}, fc.LastLogin)
	assert.Equal(t, make([]byte, 6), password, "password must be wiped")

	st := svc.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "al", st.CurrentUser.Nickname)
	assert.False(t, st.IsLoading)

	v, ok := storedCredential(t, e)
	require.True(t, ok)
	assert.Equal(t, tok, v)
}

func TestLogin_ServerMessageBecomesError(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{LoginErr: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	err := svc.Login(context.Background(), "a@b.com", []byte("x"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	require.True(t, strings.HasPrefix(err.Error(), "login error:"))

	st := svc.State()
	assert.Equal(t, "Bad credentials", st.Error)
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
}

func TestLogin_TransportErrorUsesDefaultMessage(t *testing.T) {
	e := setupSession(t)
	boom := errors.New("connection refused")
	fc := &fakeClient{LoginErr: boom}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	err := svc.Login(context.Background(), "a@b.com", []byte("x"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "Login failed.", svc.State().Error)
}

func TestLogin_UndecodableCredentialIsNotPersisted(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: "garbage"}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	err := svc.Login(context.Background(), "a@b.com", []byte("x"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	st := svc.State()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "Login failed.", st.Error)
	_, ok := storedCredential(t, e)
	assert.False(t, ok)
}

func TestLogin_Validation(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	require.ErrorIs(t, svc.Login(context.Background(), "  ", []byte("x")), common.ErrValidation)
	require.ErrorIs(t, svc.Login(context.Background(), "a@b.com", nil), common.ErrValidation)
	assert.Zero(t, fc.Calls)
}

func TestLogin_LogoutDuringCallWins(t *testing.T) {
	e := setupSession(t)
	tok := mint(t, "a@b.com", "al")
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: tok}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), time.Hour)
	fc.LoginHook = func() { svc.Logout(context.Background()) }

	require.NoError(t, svc.Login(context.Background(), "a@b.com", []byte("x")))

	st := svc.State()
	assert.False(t, st.IsAuthenticated)
	assert.True(t, st.JustLoggedOut)
	_, ok := storedCredential(t, e)
	assert.False(t, ok)
}

func TestRegister_Success(t *testing.T) {
	e := setupSession(t)
	tok := mint(t, "new@b.com", "newbie")
	fc := &fakeClient{RegisterRet: &models.TokenResponse{AccessToken: tok, RefreshToken: "r"}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	require.NoError(t, svc.Register(context.Background(), "new@b.com", []byte("pw"), "newbie"))

	assert.Equal(t, models.RegisterRequest{Email: "new@b.com", Password: "pw", Nickname: "newbie"}, fc.LastRegister)
	st := svc.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "new@b.com", st.CurrentUser.Email)
}

func TestRegister_ErrorWithoutMessage(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{RegisterErr: &client.APIError{StatusCode: http.StatusInternalServerError}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	err := svc.Register(context.Background(), "new@b.com", []byte("pw"), "n")
	require.ErrorIs(t, err, client.ErrUnavailable)
	require.True(t, strings.HasPrefix(err.Error(), "register error:"))
	assert.Equal(t, "Registration failed.", svc.State().Error)
}

func TestRegister_Validation(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	require.ErrorIs(t, svc.Register(context.Background(), "a@b.com", []byte("pw"), " "), common.ErrValidation)
	assert.Zero(t, fc.Calls)
}

func TestLogout_ClearsSessionAndFlagExpires(t *testing.T) {
	e := setupSession(t)
	tok := mint(t, "a@b.com", "al")
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: tok}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "a@b.com", []byte("x")))
	svc.Logout(ctx)

	st := svc.State()
	assert.False(t, st.IsAuthenticated)
	assert.True(t, st.JustLoggedOut)
	_, ok := storedCredential(t, e)
	assert.False(t, ok)

	require.Eventually(t, func() bool { return !svc.State().JustLoggedOut }, time.Second, 5*time.Millisecond)
}

func TestInvalidate_FlagExpires(t *testing.T) {
	e := setupSession(t)
	tok := mint(t, "a@b.com", "al")
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: tok}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "a@b.com", []byte("x")))
	e.store.Invalidate(ctx)
	require.True(t, svc.State().JustLoggedOut)

	require.Eventually(t, func() bool { return !svc.State().JustLoggedOut }, time.Second, 5*time.Millisecond)

	e.store.Invalidate(ctx)
	require.True(t, svc.State().JustLoggedOut)
	require.Eventually(t, func() bool { return !svc.State().JustLoggedOut }, time.Second, 5*time.Millisecond)
}

func TestLogin_ExpiredCredentialIsRejected(t *testing.T) {
	e := setupSession(t)
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@b.com",
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(-time.Minute)),
		},
		Nickname: "al",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: tok}}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)

	err = svc.Login(context.Background(), "a@b.com", []byte("x"))
	require.ErrorIs(t, err, common.ErrInvalidToken)

	st := svc.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "Login failed.", st.Error)
	_, ok := storedCredential(t, e)
	assert.False(t, ok)
}

func TestClearError(t *testing.T) {
	e := setupSession(t)
	fc := &fakeClient{LoginErr: errors.New("x")}
	svc := NewAuthService(fc, e.store, e.codec, logging.Nop(), 0)
	ctx := context.Background()

	_ = svc.Login(ctx, "a@b.com", []byte("x"))
	require.NotEmpty(t, svc.State().Error)

	svc.ClearError(ctx)
	assert.Empty(t, svc.State().Error)
}
