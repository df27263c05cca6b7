package validator

import (
	"net/mail"
	"strconv"
	"strings"

	"file-exchange-api/internal/interface/api/rest/dto/auth"
)

// bcrypt refuses anything longer
const maxPasswordLen = 72

func ValidateSignup(r auth.SignupRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.TrimSpace(r.Email)

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if len(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 bytes"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if len(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 bytes"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ParseFileID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	return id, err == nil && id > 0
}
