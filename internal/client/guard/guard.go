// Package guard decides whether a protected screen may be shown for the
// current session.
package guard

import (
	"github.com/dmitrijs2005/boardkeeper/internal/client/routes"
	"github.com/dmitrijs2005/boardkeeper/internal/client/session"
)

// LoginRequiredMessage is shown when an anonymous user opens a protected
// screen.
const LoginRequiredMessage = "This page requires login."

type Outcome int

const (
	// Render shows the requested screen.
	Render Outcome = iota
	// Loading shows a placeholder; no decision is made while a credential
	// is being issued.
	Loading
	// Redirect sends the user to Decision.Redirect.To.
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

type Decision struct {
	Outcome  Outcome
	Redirect routes.Redirect
}

// Check decides what to show for dest. A user who just logged out goes to
// the home screen rather than to login.
func Check(s session.State, dest routes.Destination) Decision {
	switch {
	case s.IsLoading:
		return Decision{Outcome: Loading}
	case s.IsAuthenticated:
		return Decision{Outcome: Render}
	case s.JustLoggedOut:
		return Decision{Outcome: Redirect, Redirect: routes.Redirect{To: routes.Home}}
	default:
		return Decision{
			Outcome: Redirect,
			Redirect: routes.Redirect{
				To:      routes.Login,
				From:    dest,
				Message: LoginRequiredMessage,
			},
		}
	}
}
