// Package session holds the authentication state of the client.
//
// State changes only through Reduce, a pure function of the current state
// and an Action. Store wraps it with a mutex, runs the cookie side effects
// the reducer asks for and notifies subscribers.
//
// Register and login are credential-issuing operations. Each one takes a
// sequence number from Store.Begin; only the settlement carrying the latest
// number is applied, and Logout retires any number still in flight. A slow
// login answering after a newer login, or after a logout, is dropped.
package session

import "github.com/dmitrijs2005/boardkeeper/internal/client/token"

// Op names a credential-issuing operation.
type Op string

const (
	OpRegister Op = "register"
	OpLogin    Op = "login"
)

// DefaultMessage is the error shown when the server gives no reason.
func (o Op) DefaultMessage() string {
	if o == OpRegister {
		return "Registration failed."
	}
	return "Login failed."
}

// State is a snapshot of the session. IsAuthenticated holds exactly when
// Credential is set and not known to be expired, and CurrentUser is non-nil
// exactly when IsAuthenticated.
type State struct {
	CurrentUser     *token.Profile
	Credential      string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	JustLoggedOut   bool

	// sequence number of the operation whose settlement will be applied;
	// 0 when none is in flight
	live uint64
}

func (s State) clone() State {
	s.CurrentUser = s.CurrentUser.Clone()
	return s
}

func authenticated(credential string, user *token.Profile) State {
	return State{
		CurrentUser:     user,
		Credential:      credential,
		IsAuthenticated: true,
	}
}
