package folder

import (
	domain "cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
)

func fromDBModel(model *Folder) *domain.Folder {
	return &domain.Folder{
		ID:      domain.ID(model.ID),
		Name:    model.Name,
		OwnerID: user.ID(model.UserID),

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
