package models

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// AuthResponse is returned by both login and register. The backend does not
// report a token lifetime.
type AuthResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	UserID      int64    `json:"userId"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

// UserData is the persisted session payload. TokenExpiry is in Unix
// milliseconds.
type UserData struct {
	UserID      int64    `json:"userId"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	TokenExpiry int64    `json:"tokenExpiry"`
}
