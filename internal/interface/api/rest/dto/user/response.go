package user

import (
	"time"
)

// User is the public shape of an account. The password hash never
// leaves the service.
type User struct {
	ID         uint64    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}
