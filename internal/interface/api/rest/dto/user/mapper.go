package user

import (
	domain "file-exchange-api/internal/domain/user"
)

func ToResponseUser(uDomain domain.User) User {
	var u = User{
		ID:         uint64(uDomain.ID),
		Email:      uDomain.Email,
		Role:       uDomain.Role,
		IsVerified: uDomain.IsVerified,
		CreatedAt:  uDomain.CreatedAt,
	}

	return u
}
