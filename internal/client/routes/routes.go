// Package routes names the screens of the client and the redirects between
// them.
package routes

import (
	"strconv"
	"strings"
)

// Destination is the path of a screen, e.g. "/boards/42".
type Destination string

const (
	Home        Destination = "/"
	Login       Destination = "/login"
	Register    Destination = "/register"
	Profile     Destination = "/profile"
	Boards      Destination = "/boards"
	BoardCreate Destination = "/boards/create"
)

func BoardDetail(id int64) Destination {
	return Destination("/boards/" + strconv.FormatInt(id, 10))
}

func BoardEdit(id int64) Destination {
	return Destination("/boards/" + strconv.FormatInt(id, 10) + "/edit")
}

// Public reports whether d can be shown without a credential.
func (d Destination) Public() bool {
	switch d {
	case Home, Login, Register:
		return true
	}
	return false
}

// BoardID extracts the board id of a detail or edit destination.
func (d Destination) BoardID() (int64, bool) {
	rest, ok := strings.CutPrefix(string(d), string(Boards)+"/")
	if !ok {
		return 0, false
	}
	rest = strings.TrimSuffix(rest, "/edit")
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Redirect asks the UI to show To. From is the screen the user originally
// asked for and Message is an optional notice to show on arrival.
type Redirect struct {
	To      Destination
	From    Destination
	Message string
}

// Navigator performs redirects. The session layer and the request pipeline
// only ever talk to the UI through it.
type Navigator interface {
	Navigate(r Redirect)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(r Redirect)

func (f NavigatorFunc) Navigate(r Redirect) { f(r) }
