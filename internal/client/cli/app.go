package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/client/config"
	"github.com/dmitrijs2005/boardkeeper/internal/client/cookies"
	"github.com/dmitrijs2005/boardkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/boardkeeper/internal/client/services"
	"github.com/dmitrijs2005/boardkeeper/internal/client/session"
	"github.com/dmitrijs2005/boardkeeper/internal/client/token"
	"github.com/dmitrijs2005/boardkeeper/internal/filex"
	"github.com/dmitrijs2005/boardkeeper/internal/logging"
)

// sessionView is what the CLI reads from and does to the session store.
type sessionView interface {
	Snapshot() session.State
	Credential() (string, bool)
	Invalidate(ctx context.Context)
	Subscribe(fn func(session.State)) func()
}

// expiryChecker reports on the credential's exp claim.
type expiryChecker interface {
	IsExpired(token string) (expired bool, known bool)
	SecondsUntilExpiry(token string) int64
	IsExpiringSoon(token string, threshold time.Duration) bool
}

type App struct {
	config       *config.Config
	db           *sql.DB
	session      sessionView
	codec        expiryChecker
	nav          *navigator
	authService  services.AuthService
	boardService services.BoardService
	reader       *bufio.Reader
	logger       logging.Logger

	// credential the expiry warning was last shown for
	warnedFor string
}

// NewApp opens the session database and wires the session store, request
// gateway, API client and services. The gateway is built on the store, and
// the API client on the gateway.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.SessionDBPath); err != nil {
		return nil, fmt.Errorf("error preparing session directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	jar := cookies.NewJar(db, logger, nil)
	if _, err := jar.Purge(ctx); err != nil {
		logger.Warn(ctx, "failed to purge expired cookies", "error", err)
	}
	creds := cookies.NewStore(jar, nil)
	codec := token.NewCodec(logger)

	store := session.New(ctx, creds, codec, logger, session.WithCookie(c.CookieTTLDays, c.CookieSecure))

	nav := newNavigator()
	transport := gateway.NewTransport(store, nav, logger, gateway.WithRateLimit(c.RequestsPerSecond))

	apiClient, err := client.NewHTTPClient(c.APIServerHost,
		&http.Client{Transport: transport, Timeout: c.RequestTimeout}, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:       c,
		db:           db,
		session:      store,
		codec:        codec,
		nav:          nav,
		authService:  services.NewAuthService(apiClient, store, codec, logger, c.LogoutFlagTTL),
		boardService: services.NewBoardService(apiClient),
		reader:       bufio.NewReader(os.Stdin),
		logger:       logger,
	}, nil
}

// Run starts the expiry watcher and the REPL and blocks until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := a.session.Subscribe(func(s session.State) {
		a.logger.Debug(ctx, "session changed", "authenticated", s.IsAuthenticated,
			"loading", s.IsLoading, "just_logged_out", s.JustLoggedOut)
	})
	defer unsubscribe()

	printlnFn("Welcome to the board CLI (type 'help' for commands)")
	if st := a.session.Snapshot(); st.IsAuthenticated {
		printlnFn(fmt.Sprintf("Welcome back, %s.", st.CurrentUser.Nickname))
	}

	go a.StartExpiryWatcher(ctx, a.config.ExpiryCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close releases the session database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

func (a *App) getStatus() string {
	st := a.session.Snapshot()
	if !st.IsAuthenticated || st.CurrentUser == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", st.CurrentUser.Nickname)
}
