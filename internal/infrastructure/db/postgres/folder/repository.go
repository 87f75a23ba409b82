package folder

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/db/postgres"
)

var ErrFolderNameTaken = errors.New("folder name already exists for this user")

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) folder.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchFolder(ctx context.Context, ownerID user.ID, name string) (*folder.Folder, error) {
	f := new(Folder)
	err := r.db.QueryRow(ctx, SelectFolder, ownerID, name).Scan(
		&f.ID,
		&f.Name,
		&f.UserID,

		&f.CreatedAt,
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

func (r *Repository) CreateFolder(ctx context.Context, ownerID user.ID, name string) (*folder.Folder, error) {
	f := new(Folder)
	err := r.db.QueryRow(ctx, InsertFolder, ownerID, name).Scan(
		&f.ID,
		&f.Name,
		&f.UserID,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrFolderNameTaken
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) RenameFolder(ctx context.Context, ownerID user.ID, oldName, newName string) (*folder.Folder, error) {
	f := new(Folder)
	err := r.db.QueryRow(ctx, RenameFolder, ownerID, oldName, newName).Scan(
		&f.ID,
		&f.Name,
		&f.UserID,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrFolderNameTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

// DeleteFolder reports whether a row was actually removed, so a repeated
// delete surfaces as not-found instead of silently succeeding.
func (r *Repository) DeleteFolder(ctx context.Context, ownerID user.ID, name string) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFolder, ownerID, name)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
