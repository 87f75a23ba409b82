package file

import (
	domain "cloudnest-api/internal/domain/file"
	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	f := &domain.File{
		UUID:       model.UUID,
		OwnerID:    user.ID(model.UserID),
		Name:       model.FileName,
		StoredName: model.StoredName,
		SizeBytes:  model.FileSize,

		StoragePath: model.StoragePath,

		UploadedAt: model.UploadedAt,
		UpdatedAt:  model.UpdatedAt,
	}
	if model.FolderID != nil {
		id := folder.ID(*model.FolderID)
		f.FolderID = &id
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
