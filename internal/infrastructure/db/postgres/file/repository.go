package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cloudnest-api/internal/domain/file"
	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFile(ctx context.Context, ownerID user.ID, fileUUID uuid.UUID) (*file.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByUUID, ownerID, fileUUID).Scan(
		&f.ID,
		&f.UUID,
		&f.FileName,
		&f.StoredName,
		&f.UserID,
		&f.FileSize,

		&f.StoragePath,
		&f.FolderID,

		&f.UploadedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchFiles(ctx context.Context, ownerID user.ID, page int) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFiles, ownerID, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.FileName,
			&f.StoredName,
			&f.UserID,
			&f.FileSize,

			&f.StoragePath,
			&f.FolderID,

			&f.UploadedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.Name, req.StoredName, req.OwnerID, req.SizeBytes, req.StoragePath,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.FileName,
		&f.StoredName,
		&f.UserID,
		&f.FileSize,

		&f.StoragePath,
		&f.FolderID,

		&f.UploadedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) UpdatePlacement(
	ctx context.Context,
	ownerID user.ID,
	fileUUID uuid.UUID,
	folderID *folder.ID,
	storagePath string,
) (*file.File, error) {
	var fid *uint64
	if folderID != nil {
		v := uint64(*folderID)
		fid = &v
	}

	f := new(File)
	err := r.db.QueryRow(ctx, UpdateFilePlacement, ownerID, fileUUID, fid, storagePath).Scan(
		&f.ID,
		&f.UUID,
		&f.FileName,
		&f.StoredName,
		&f.UserID,
		&f.FileSize,

		&f.StoragePath,
		&f.FolderID,

		&f.UploadedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFilesByFolder(ctx context.Context, ownerID user.ID, folderID folder.ID) error {
	_, err := r.db.Exec(ctx, DeleteFilesByFolder, ownerID, folderID)
	return err
}
