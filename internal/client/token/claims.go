package token

import "github.com/golang-jwt/jwt/v5"

// Claims is the decoded payload of a session credential as issued by the
// board API: the registered claims (sub, iat, exp) plus the display name and
// roles of the user.
type Claims struct {
	jwt.RegisteredClaims
	Nickname string   `json:"nickname"`
	Roles    []string `json:"roles,omitempty"`
}

// Profile is the user information the client keeps in its session state.
// IssuedAt and ExpiresAt are unix seconds; 0 means the claim was absent.
type Profile struct {
	Email     string
	Nickname  string
	Roles     []string
	IssuedAt  int64
	ExpiresAt int64
}

// Clone returns a deep copy so snapshots never share the roles slice.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Roles != nil {
		c.Roles = append([]string(nil), p.Roles...)
	}
	return &c
}

func numericDateUnix(d *jwt.NumericDate) int64 {
	if d == nil {
		return 0
	}
	return d.Unix()
}
