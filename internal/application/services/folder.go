package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"cloudnest-api/internal/application/ports"
	"cloudnest-api/internal/domain/file"
	domain "cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	folderDB "cloudnest-api/internal/infrastructure/db/postgres/folder"
	"cloudnest-api/internal/infrastructure/mq"
	"cloudnest-api/internal/infrastructure/storage"
)

// FolderService keeps a folder's physical directory and its metadata row in
// lockstep. Writes go physical-first, metadata-second; when the second step
// fails the physical step is either compensated (create) or reported as a
// PartialFailureError (rename), never hidden.
type FolderService struct {
	userRepository   user.Repository
	folderRepository domain.Repository
	fileRepository   file.Repository
	store            ports.BlobStore
	resolver         *storage.Resolver
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
}

func NewFolderService(
	userRepository user.Repository,
	folderRepository domain.Repository,
	fileRepository file.Repository,
	store ports.BlobStore,
	resolver *storage.Resolver,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FolderService {
	return &FolderService{
		userRepository:   userRepository,
		folderRepository: folderRepository,
		fileRepository:   fileRepository,
		store:            store,
		resolver:         resolver,
		mq:               mqc,
		mCounter:         mCounter,
	}
}

func (fs *FolderService) CreateFolder(ctx context.Context, ownerUUID user.UUID, name string) (*domain.Folder, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	path, err := fs.resolver.Resolve(id, name)
	if err != nil {
		return nil, err
	}

	// The two stores can disagree after a partial failure, so a conflict in
	// either one blocks the create.
	if fs.store.DirExists(path) {
		return nil, ErrFolderExists
	}
	existing, err := fs.folderRepository.FetchFolder(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFolderExists
	}

	existed, err := fs.store.CreateDir(path)
	if err != nil {
		return nil, &StorageError{Op: "create dir", Path: path, Err: err}
	}
	if existed {
		return nil, ErrFolderExists
	}

	f, err := fs.folderRepository.CreateFolder(ctx, id, name)
	if err != nil {
		// Compensating rollback: never leave a directory without a row.
		if rmErr := fs.store.RemoveDir(path); rmErr != nil {
			fs.reportDivergence(id, "folder.create", path, rmErr)
			return nil, &PartialFailureError{Op: "folder.create", OwnerID: id, Path: path, Err: errors.Join(err, rmErr)}
		}
		if errors.Is(err, folderDB.ErrFolderNameTaken) {
			return nil, ErrFolderExists
		}
		return nil, err
	}

	fs.publish(mq.ActionFolderCreated, ownerUUID, map[string]string{"folder": name})
	fs.mCounter.WithLabelValues("folders_created_total").Inc()

	return f, nil
}

func (fs *FolderService) RenameFolder(ctx context.Context, ownerUUID user.UUID, oldName, newName string) (*domain.Folder, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	oldPath, err := fs.resolver.Resolve(id, oldName)
	if err != nil {
		return nil, err
	}
	newPath, err := fs.resolver.Resolve(id, newName)
	if err != nil {
		return nil, err
	}

	oldRow, err := fs.folderRepository.FetchFolder(ctx, id, oldName)
	if err != nil {
		return nil, err
	}
	oldDir := fs.store.DirExists(oldPath)
	if oldRow == nil && !oldDir {
		return nil, ErrFolderNotFound
	}
	if oldRow == nil || !oldDir {
		// Exactly one store knows the folder: report, don't guess.
		fs.reportDivergence(id, "folder.rename", oldPath, nil)
		return nil, &PartialFailureError{
			Op: "folder.rename", OwnerID: id, Path: oldPath,
			Err: fmt.Errorf("folder %q present in one store only", oldName),
		}
	}

	// Conflict checks before any mutation, so a failed rename leaves the
	// old folder untouched.
	if fs.store.DirExists(newPath) {
		return nil, ErrFolderExists
	}
	newRow, err := fs.folderRepository.FetchFolder(ctx, id, newName)
	if err != nil {
		return nil, err
	}
	if newRow != nil {
		return nil, ErrFolderExists
	}

	if err = fs.store.RenameDir(oldPath, newPath); err != nil {
		return nil, &StorageError{Op: "rename dir", Path: oldPath, Err: err}
	}

	f, err := fs.folderRepository.RenameFolder(ctx, id, oldName, newName)
	if err != nil || f == nil {
		// The directory is already renamed; the caller has to reconcile.
		if err == nil {
			err = fmt.Errorf("folder row %q disappeared during rename", oldName)
		}
		fs.reportDivergence(id, "folder.rename", newPath, err)
		return nil, &PartialFailureError{Op: "folder.rename", OwnerID: id, Path: newPath, Err: err}
	}

	fs.publish(mq.ActionFolderRenamed, ownerUUID, map[string]string{"from": oldName, "to": newName})
	fs.mCounter.WithLabelValues("folders_renamed_total").Inc()

	return f, nil
}

// DeleteFolder removes the physical directory with everything in it, then
// the contained file rows, then the folder row. Physical deletion goes
// first, so a crash mid-operation leaves metadata as the side to reconcile
// and a rerun of the delete finishes the job.
func (fs *FolderService) DeleteFolder(ctx context.Context, ownerUUID user.UUID, name string) error {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return err
	}

	path, err := fs.resolver.Resolve(id, name)
	if err != nil {
		return err
	}

	row, err := fs.folderRepository.FetchFolder(ctx, id, name)
	if err != nil {
		return err
	}
	if row == nil && !fs.store.DirExists(path) {
		return ErrFolderNotFound
	}

	if err = fs.store.RemoveDir(path); err != nil {
		return &StorageError{Op: "remove dir", Path: path, Err: err}
	}

	if row != nil {
		if err = fs.fileRepository.DeleteFilesByFolder(ctx, id, row.ID); err != nil {
			fs.reportDivergence(id, "folder.delete", path, err)
			return &PartialFailureError{Op: "folder.delete", OwnerID: id, Path: path, Err: err}
		}
		if _, err = fs.folderRepository.DeleteFolder(ctx, id, name); err != nil {
			fs.reportDivergence(id, "folder.delete", path, err)
			return &PartialFailureError{Op: "folder.delete", OwnerID: id, Path: path, Err: err}
		}
	}

	fs.publish(mq.ActionFolderDeleted, ownerUUID, map[string]string{"folder": name})
	fs.mCounter.WithLabelValues("folders_deleted_total").Inc()

	return nil
}

// ListFolders is driven by the filesystem: after the physical-first write
// order it reflects what actually exists, and stale metadata shows up as a
// reconciliation event instead of a phantom listing entry.
func (fs *FolderService) ListFolders(ctx context.Context, ownerUUID user.UUID) ([]string, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	return fs.store.ListDirs(fs.resolver.OwnerRoot(id))
}

func (fs *FolderService) FolderExists(ctx context.Context, ownerUUID user.UUID, name string) (bool, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return false, err
	}

	path, err := fs.resolver.Resolve(id, name)
	if err != nil {
		return false, err
	}

	return fs.store.DirExists(path), nil
}

func (fs *FolderService) publish(action string, ownerUUID user.UUID, detail map[string]string) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: action,
		UserID: ownerUUID.String(),
		Detail: detail,
	}
}

func (fs *FolderService) reportDivergence(ownerID user.ID, op, path string, cause error) {
	detail := map[string]string{
		"op":       op,
		"owner_id": fmt.Sprintf("%d", ownerID),
		"path":     path,
	}
	if cause != nil {
		detail["cause"] = cause.Error()
	}
	fs.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: mq.ActionReconcileRequired,
		Detail: detail,
	}
	fs.mCounter.WithLabelValues("partial_failure_total").Inc()
}
