package models

import "time"

// Cookie is one stored cookie of the local jar. A zero Expires marks a
// session cookie that lives until it is overwritten or removed.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	Expires  time.Time
	Secure   bool
	SameSite string
}

// Expired reports whether the cookie must no longer be served at now.
func (c *Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}
