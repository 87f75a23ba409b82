package user

import (
	domain "cloudnest-api/internal/domain/user"
)

func ToResponseUser(u domain.User) User {
	return User{
		UUID:     u.UUID,
		Username: u.Username,
		Email:    u.Email,
	}
}
