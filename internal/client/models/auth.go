package models

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body of a successful register or login call.
// RefreshToken is issued by the server but the client never uses it.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ErrorResponse is the body the API sends along with a non-2xx status.
type ErrorResponse struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}
