package folder

import (
	"time"

	"cloudnest-api/internal/domain/user"
)

type (
	ID uint64
	// Folder is one owner-scoped directory. The (OwnerID, Name) pair is
	// unique; its physical twin lives at storage_root/<owner>/<name>.
	Folder struct {
		ID      ID
		Name    string
		OwnerID user.ID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Folders []*Folder
)
