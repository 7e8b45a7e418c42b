package domain

import "time"

// Role identifiers assigned by the platform. Admin privilege is exactly
// "RoleID == RoleAdmin"; there is no hierarchy between the other roles.
const (
	RoleAdmin   = 1
	RoleTeacher = 2
	RoleStudent = 3
)

// User models an authenticated identity on the platform.
type User struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Avatar     string    `json:"avatar,omitempty"`
	RoleID     int       `json:"roleId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the reserved admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.RoleID == RoleAdmin
}

// Credentials is the transient login input. It is never persisted beyond the
// operation that consumes it.
type Credentials struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// RegisterData is the payload for creating a new account on the remote API.
type RegisterData struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Department      string `json:"department"`
	Position        string `json:"position"`
}

// LoginResult is the payload returned by the remote login endpoint.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
