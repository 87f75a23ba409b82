package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID         uint64
		UUID       uuid.UUID
		FileName   string
		StoredName string
		UserID     uint64
		FileSize   int64

		StoragePath string
		FolderID    *uint64

		UploadedAt time.Time
		UpdatedAt  time.Time
	}
	Files []*File
)
