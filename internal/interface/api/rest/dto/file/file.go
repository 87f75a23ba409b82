package file

import (
	"time"

	"github.com/google/uuid"

	domain "cloudnest-api/internal/domain/file"
)

type (
	AssignRequest struct {
		FolderName string `json:"folder_name"`
	}

	File struct {
		UUID        uuid.UUID `json:"uuid"`
		Name        string    `json:"name"`
		SizeBytes   int64     `json:"size_bytes"`
		FolderID    *uint64   `json:"folder_id,omitempty"`
		DownloadURL string    `json:"download_url"`
		UploadedAt  time.Time `json:"uploaded_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)

func ToResponseFile(f domain.File) File {
	out := File{
		UUID:        f.UUID,
		Name:        f.Name,
		SizeBytes:   f.SizeBytes,
		DownloadURL: f.DownloadURL,
		UploadedAt:  f.UploadedAt,
	}
	if f.FolderID != nil {
		id := uint64(*f.FolderID)
		out.FolderID = &id
	}

	return out
}

func ToResponseFiles(fDomain domain.Files) Files {
	fs := make(Files, len(fDomain))
	for idx, f := range fDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
