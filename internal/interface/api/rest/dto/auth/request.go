package auth

type (
	SignupRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// LoginRequest binds the OAuth2-style password form: the username
	// field carries the email.
	LoginRequest struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}
)
