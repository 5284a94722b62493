// Package models contains the data types shared between the client
// services and the backend wire contract.
package models

// User is the profile object returned by the backend on login.
// It is replaced wholesale on login/refresh/logout, never mutated in place.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse is the wire shape of the login endpoint response.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// RefreshResponse is the wire shape of the token refresh endpoint response.
type RefreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}
