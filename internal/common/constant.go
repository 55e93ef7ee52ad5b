// Package common contains shared constants and sentinel errors used across
// the board client components.
package common

// AccessTokenCookieName is the cookie that persists the bearer credential
// between runs.
const AccessTokenCookieName = "accessToken"

// AuthorizationHeaderName and BearerPrefix form the header attached to
// authenticated API calls: "Authorization: Bearer <credential>".
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// RequestIDHeaderName carries a per-request identifier on outbound calls.
const RequestIDHeaderName = "X-Request-ID"

// API paths of the auth endpoints. They are called before a credential can
// exist, so the gateway never attaches one to them.
const (
	AuthBasePath = "/api/auth"
	RegisterPath = AuthBasePath + "/register"
	LoginPath    = AuthBasePath + "/login"
)

// BoardsBasePath is the root of the board CRUD endpoints.
const BoardsBasePath = "/api/boards"
