package user

import (
	"context"
)

type Repository interface {
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
}
