package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/gateway"
	"github.com/dmitrijs2005/boardkeeper/internal/client/token"
)

// StartExpiryWatcher checks the session credential every interval until ctx
// is done. A non-positive interval disables the watcher.
func (a *App) StartExpiryWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkExpiry(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// checkExpiry warns once per credential when it is about to expire and logs
// the user out when it has. Credentials without an exp claim are left alone.
func (a *App) checkExpiry(ctx context.Context) {
	credential, ok := a.session.Credential()
	if !ok {
		a.warnedFor = ""
		return
	}

	expired, known := a.codec.IsExpired(credential)
	if !known {
		return
	}

	if expired {
		a.logger.Info(ctx, "credential expired, logging out")
		a.session.Invalidate(ctx)
		printlnFn("\n" + gateway.SessionExpiredMessage)
		return
	}

	if a.warnedFor != credential && a.codec.IsExpiringSoon(credential, token.DefaultExpiringSoonThreshold) {
		a.warnedFor = credential
		left := time.Duration(a.codec.SecondsUntilExpiry(credential)) * time.Second
		printlnFn(fmt.Sprintf("\nYour session expires in %s.", left))
	}
}
