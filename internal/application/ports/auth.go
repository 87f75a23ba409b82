package ports

import (
	"cloudnest-api/internal/domain/user"
)

type Auth interface {
	GenerateToken(u *user.User, requestPassword string) (string, error)
	RevokeToken(token string) error
}
