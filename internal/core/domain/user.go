package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// User models a login-capable actor. The API key is the opaque bearer
// credential for the REST surface; it is replaced on every successful login,
// so a user holds at most one valid key at a time.
type User struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Usuario  string `json:"usuario"`
	Clave    string `json:"-"`
	APIKey   string `json:"api_key"`
}

// FullName returns the display name rendered on the dashboard.
func (u *User) FullName() string {
	return u.Nombre + " " + u.Apellido
}
