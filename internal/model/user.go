package model

import "time"

// User represents a user row in the database. Password holds the bcrypt
// hash, never plaintext.
type User struct {
	ID        int64
	UserName  string
	Password  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents a partial user update.
// Pointer fields distinguish absent (nil -> keep stored value) from an
// explicit new value.
type UpdateUserRequest struct {
	UserName *string `json:"user_name"`
	Email    *string `json:"email"`
}

// UserResponse represents user data safe for API responses (no hash).
type UserResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// Response converts a User to its API representation.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
	}
}
