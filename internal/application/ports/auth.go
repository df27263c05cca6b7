package ports

import (
	"context"

	"file-exchange-api/internal/domain/user"
)

// Auth owns the signup -> email verification -> login state machine and
// session authentication.
type Auth interface {
	Signup(ctx context.Context, email, password string) (*user.User, error)
	VerifyEmail(ctx context.Context, token string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, sessionToken string) (*user.User, error)
}
