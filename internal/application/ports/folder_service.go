package ports

import (
	"context"

	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
)

type FolderService interface {
	CreateFolder(ctx context.Context, ownerUUID user.UUID, name string) (*folder.Folder, error)
	RenameFolder(ctx context.Context, ownerUUID user.UUID, oldName, newName string) (*folder.Folder, error)
	DeleteFolder(ctx context.Context, ownerUUID user.UUID, name string) error
	ListFolders(ctx context.Context, ownerUUID user.UUID) ([]string, error)
	FolderExists(ctx context.Context, ownerUUID user.UUID, name string) (bool, error)
}
