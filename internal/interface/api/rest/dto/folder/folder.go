package folder

import (
	"time"

	domain "cloudnest-api/internal/domain/folder"
)

type (
	CreateRequest struct {
		Name string `json:"name"`
	}
	RenameRequest struct {
		NewName string `json:"new_name"`
	}

	Folder struct {
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}
	ListResponse struct {
		Folders []string `json:"folders"`
	}
)

func ToResponseFolder(f domain.Folder) Folder {
	return Folder{
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	}
}
