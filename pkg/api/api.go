// Package api defines the wire types of the user service.
// Every response carries a status of "success" or "fail"; failures add a
// human-readable message and never leak internal details.
package api

// StatusSuccess and StatusFail are the only values of the status field.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Response is the uniform envelope for message-only replies.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// LoginRequest represents the credentials presented to POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token after a successful login.
type LoginResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	AuthToken string `json:"auth_token,omitempty"`
}

// CreateUserRequest represents the payload of POST /users.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the public projection of a user record.
// The password hash has no field here on purpose.
type UserPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
	Admin    bool   `json:"admin"`
}

// UserResponse wraps a single user record.
type UserResponse struct {
	Status string      `json:"status"`
	Data   UserPayload `json:"data"`
}

// UsersData is the data object of the user list response.
type UsersData struct {
	Users []UserPayload `json:"users"`
}

// UsersListResponse wraps the full user list, ordered by ascending id.
type UsersListResponse struct {
	Status string    `json:"status"`
	Data   UsersData `json:"data"`
}
