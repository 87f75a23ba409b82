package file

import (
	"context"

	"github.com/google/uuid"

	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
)

type Repository interface {
	FetchFile(ctx context.Context, ownerID user.ID, fileUUID uuid.UUID) (*File, error)
	FetchFiles(ctx context.Context, ownerID user.ID, page int) (Files, error)
	CreateFile(ctx context.Context, req *File) (*File, error)
	// UpdatePlacement writes folder reference and storage path in one
	// statement so metadata never holds a half-moved file.
	UpdatePlacement(ctx context.Context, ownerID user.ID, fileUUID uuid.UUID, folderID *folder.ID, storagePath string) (*File, error)
	DeleteFilesByFolder(ctx context.Context, ownerID user.ID, folderID folder.ID) error
}
