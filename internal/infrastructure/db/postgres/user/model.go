package user

import (
	"errors"
	"time"
)

var ErrEmailAlreadyExists = errors.New("email already registered")

type (
	User struct {
		ID           uint64
		Email        string
		PasswordHash string
		Role         string
		IsVerified   bool

		CreatedAt time.Time
	}
	Users []*User
)
