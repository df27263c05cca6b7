package user

import (
	domain "file-exchange-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           domain.ID(model.ID),
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		IsVerified:   model.IsVerified,

		CreatedAt: model.CreatedAt,
	}

	return u
}
