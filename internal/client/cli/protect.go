package cli

import (
	"context"

	"github.com/dmitrijs2005/boardkeeper/internal/client/guard"
	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
)

// protect runs render when the guard lets dest through. When the guard
// sends the user to login, render runs after a successful login, so the
// command the user typed still happens.
func (a *App) protect(ctx context.Context, dest routes.Destination, render func(ctx context.Context) error) error {
	d := guard.Check(a.session.Snapshot(), dest)
	switch d.Outcome {
	case guard.Loading:
		printlnFn("Signing in, please wait...")
		return nil
	case guard.Redirect:
		return a.follow(ctx, d.Redirect, render)
	default:
		return render(ctx)
	}
}

// FollowRedirect follows the redirect the request pipeline queued, if any.
func (a *App) FollowRedirect(ctx context.Context) error {
	r, ok := a.nav.take()
	if !ok {
		return nil
	}
	return a.follow(ctx, r, nil)
}

func (a *App) follow(ctx context.Context, r routes.Redirect, resume func(ctx context.Context) error) error {
	if r.Message != "" {
		printlnFn(r.Message)
	}

	switch r.To {
	case routes.Login:
		if err := a.Login(ctx); err != nil {
			return err
		}
		if resume == nil || !a.isLoggedIn() {
			return nil
		}
		a.logger.Debug(ctx, "resuming after login", "destination", string(r.From))
		return resume(ctx)

	case routes.Home:
		printlnFn("You are logged out. Type 'help' for commands.")
	}
	return nil
}
