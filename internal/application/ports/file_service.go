package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"cloudnest-api/internal/domain/file"
	"cloudnest-api/internal/domain/user"
)

type FileService interface {
	Upload(ctx context.Context, ownerUUID user.UUID, in []*multipart.FileHeader) (file.Files, error)
	FindFiles(ctx context.Context, ownerUUID user.UUID, page int) (file.Files, error)
	AssignToFolder(ctx context.Context, ownerUUID user.UUID, fileUUID uuid.UUID, folderName string) (*file.File, error)
	RemoveFromFolder(ctx context.Context, ownerUUID user.UUID, fileUUID uuid.UUID) (*file.File, error)
}
