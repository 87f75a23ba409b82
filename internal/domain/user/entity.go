package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	// ID is the internal numeric identity. It namespaces every physical
	// storage path and never changes for the lifetime of the account.
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Username     string
		Email        string
		PasswordHash string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
