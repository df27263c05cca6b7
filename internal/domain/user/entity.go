package user

import (
	"time"
)

const (
	RoleOps    = "ops"
	RoleClient = "client"
)

type (
	ID   uint64
	User struct {
		ID           ID
		Email        string
		PasswordHash string
		Role         string
		IsVerified   bool

		CreatedAt time.Time
	}
	Users []*User
)
