package folder

import (
	"context"

	"cloudnest-api/internal/domain/user"
)

type Repository interface {
	FetchFolder(ctx context.Context, ownerID user.ID, name string) (*Folder, error)
	CreateFolder(ctx context.Context, ownerID user.ID, name string) (*Folder, error)
	RenameFolder(ctx context.Context, ownerID user.ID, oldName, newName string) (*Folder, error)
	DeleteFolder(ctx context.Context, ownerID user.ID, name string) (bool, error)
}
