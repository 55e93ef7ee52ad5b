package session

import "github.com/dmitrijs2005/boardkeeper/internal/client/token"

// Action is one of Requested, Issued, Rejected, Logout, ClearLogoutFlag and
// ClearError.
type Action interface {
	action()
}

// Requested marks a register or login call as in flight.
type Requested struct {
	Op  Op
	Seq uint64
}

// Issued settles a call with the credential the server returned and the
// profile decoded from it.
type Issued struct {
	Op         Op
	Seq        uint64
	Credential string
	Profile    *token.Profile
}

// Rejected settles a call with an error message for the user.
type Rejected struct {
	Op      Op
	Seq     uint64
	Message string
}

type Logout struct{}

// ClearLogoutFlag resets JustLoggedOut once the post-logout redirect has
// been taken.
type ClearLogoutFlag struct{}

type ClearError struct{}

func (Requested) action()       {}
func (Issued) action()          {}
func (Rejected) action()        {}
func (Logout) action()          {}
func (ClearLogoutFlag) action() {}
func (ClearError) action()      {}
