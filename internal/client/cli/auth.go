package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, nickname and password and creates an account.
// A successful registration logs the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	nickname, err := getSimpleText(a.reader, "Enter nickname", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.settle(ctx, a.authService.Register(ctx, email, password, nickname))
}

// Login prompts for credentials and authenticates. The password byte slice
// is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.settle(ctx, a.authService.Login(ctx, email, password))
}

// settle reports the outcome of a register or login call. A rejection the
// session already explains is printed and consumed.
func (a *App) settle(ctx context.Context, err error) error {
	st := a.authService.State()
	if err != nil {
		if errors.Is(err, common.ErrValidation) || st.Error == "" {
			return err
		}
		printlnFn(st.Error)
		a.authService.ClearError(ctx)
		return nil
	}
	if st.IsAuthenticated && st.CurrentUser != nil {
		printlnFn(fmt.Sprintf("Logged in as %s.", st.CurrentUser.Nickname))
	}
	return nil
}

// Logout forgets the credential. The server keeps no session, so nothing is
// sent over the network.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.authService.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Profile shows the user decoded from the credential.
func (a *App) Profile(ctx context.Context) error {
	return a.protect(ctx, routes.Profile, func(ctx context.Context) error {
		st := a.session.Snapshot()
		u := st.CurrentUser
		if u == nil {
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Email:    %s\n", u.Email)
		fmt.Fprintf(&b, "Nickname: %s\n", u.Nickname)
		if len(u.Roles) > 0 {
			fmt.Fprintf(&b, "Roles:    %s\n", strings.Join(u.Roles, ", "))
		}
		if u.IssuedAt != 0 {
			fmt.Fprintf(&b, "Issued:   %s\n", time.Unix(u.IssuedAt, 0).Format(time.DateTime))
		}
		if u.ExpiresAt != 0 {
			left := time.Duration(a.codec.SecondsUntilExpiry(st.Credential)) * time.Second
			fmt.Fprintf(&b, "Expires:  %s (in %s)\n", time.Unix(u.ExpiresAt, 0).Format(time.DateTime), left)
		}
		printFn(b.String())
		return nil
	})
}
