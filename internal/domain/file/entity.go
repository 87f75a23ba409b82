package file

import (
	"time"

	"github.com/google/uuid"

	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
)

type (
	// File is one uploaded object. Name is the sanitized original filename,
	// kept as metadata only; StoredName is the collision-free on-disk name.
	// StoragePath always points at the current physical location and is
	// re-derived through the path resolver on every move. A nil FolderID
	// means the file sits at the owner's root.
	File struct {
		UUID       uuid.UUID
		OwnerID    user.ID
		Name       string
		StoredName string
		SizeBytes  int64

		StoragePath string
		FolderID    *folder.ID

		// DownloadURL is derived from StoragePath on the way out, never
		// persisted.
		DownloadURL string

		UploadedAt time.Time
		UpdatedAt  time.Time
	}
	Files []*File
)
