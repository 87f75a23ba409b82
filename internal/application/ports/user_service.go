package ports

import (
	"context"

	"cloudnest-api/internal/domain/user"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
