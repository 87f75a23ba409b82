package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cloudnest-api/config"
	"cloudnest-api/internal/application/ports"
	domain "cloudnest-api/internal/domain/file"
	"cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/mq"
	"cloudnest-api/internal/infrastructure/storage"
)

const maxBaseNameLen = 100

// FileService owns the upload pipeline and the file placement operations.
// The same write order applies everywhere: bytes move first, the metadata
// row follows, and a failed second step either rolls the bytes back
// (upload) or surfaces as a PartialFailureError (moves).
type FileService struct {
	cfg              config.Storage
	userRepository   user.Repository
	folderRepository folder.Repository
	fileRepository   domain.Repository
	store            ports.BlobStore
	resolver         *storage.Resolver
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec

	allowedExt map[string]struct{}
}

func NewFileService(
	cfg config.Storage,
	userRepository user.Repository,
	folderRepository folder.Repository,
	fileRepository domain.Repository,
	store ports.BlobStore,
	resolver *storage.Resolver,
	mqc ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}

	return &FileService{
		cfg:              cfg,
		userRepository:   userRepository,
		folderRepository: folderRepository,
		fileRepository:   fileRepository,
		store:            store,
		resolver:         resolver,
		mq:               mqc,
		mCounter:         mCounter,
		allowedExt:       allowed,
	}
}

// Upload runs every header through validation before a single byte is
// written, then stores and records each file in turn. A failed metadata
// insert deletes the bytes it just wrote.
func (fs *FileService) Upload(ctx context.Context, ownerUUID user.UUID, in []*multipart.FileHeader) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	for _, fh := range in {
		if err = fs.validate(fh); err != nil {
			fs.mCounter.WithLabelValues("uploads_rejected_total").Inc()
			return nil, err
		}
	}

	out := make(domain.Files, 0, len(in))
	for _, fh := range in {
		f, err := fs.storeOne(ctx, id, ownerUUID, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

func (fs *FileService) validate(fh *multipart.FileHeader) error {
	name := strings.TrimSpace(fh.Filename)
	if name == "" {
		return &UploadRejectedError{Filename: fh.Filename, Reason: RejectEmptyFilename}
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if _, ok := fs.allowedExt[ext]; ext == "" || !ok {
		return &UploadRejectedError{Filename: fh.Filename, Reason: RejectInvalidExtension}
	}
	if fh.Size <= 0 || fh.Size > fs.cfg.MaxUploadBytes {
		return &UploadRejectedError{Filename: fh.Filename, Reason: RejectTooLarge}
	}
	return nil
}

func (fs *FileService) storeOne(ctx context.Context, id user.ID, ownerUUID user.UUID, fh *multipart.FileHeader) (*domain.File, error) {
	storedName := uniqueStoredName(fh.Filename)
	dst, err := fs.resolver.Resolve(id, storedName)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	size, err := fs.store.Save(ctx, dst, src)
	if err != nil {
		return nil, &StorageError{Op: "save", Path: dst, Err: err}
	}

	f, err := fs.fileRepository.CreateFile(ctx, &domain.File{
		OwnerID:     id,
		Name:        sanitizeFileName(fh.Filename),
		StoredName:  storedName,
		SizeBytes:   size,
		StoragePath: dst,
	})
	if err != nil {
		// Compensating rollback: no record, no bytes.
		_ = fs.store.Remove(dst)
		fs.mCounter.WithLabelValues("uploads_rolled_back_total").Inc()
		return nil, fmt.Errorf("record upload: %w", err)
	}
	f.DownloadURL = fs.store.PublicURL(f.StoragePath)

	fs.publish(mq.ActionFileUploaded, ownerUUID, map[string]string{"file": f.UUID.String(), "name": f.Name})
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return f, nil
}

func (fs *FileService) FindFiles(ctx context.Context, ownerUUID user.UUID, page int) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	fls, err := fs.fileRepository.FetchFiles(ctx, id, page)
	if err != nil {
		return nil, err
	}
	for _, f := range fls {
		f.DownloadURL = fs.store.PublicURL(f.StoragePath)
	}

	return fls, nil
}

// AssignToFolder moves the bytes into the folder's directory, then writes
// folder reference and storage path in a single metadata update. A failed
// move leaves the metadata untouched.
func (fs *FileService) AssignToFolder(ctx context.Context, ownerUUID user.UUID, fileUUID uuid.UUID, folderName string) (*domain.File, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	f, err := fs.fileRepository.FetchFile(ctx, id, fileUUID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}

	fld, err := fs.folderRepository.FetchFolder(ctx, id, folderName)
	if err != nil {
		return nil, err
	}
	if fld == nil {
		return nil, ErrFolderNotFound
	}

	if f.FolderID != nil && *f.FolderID == fld.ID {
		f.DownloadURL = fs.store.PublicURL(f.StoragePath)
		return f, nil
	}

	newPath, err := fs.resolver.Resolve(id, folderName, f.StoredName)
	if err != nil {
		return nil, err
	}

	return fs.move(ctx, id, ownerUUID, f, &fld.ID, newPath)
}

// RemoveFromFolder puts the file back at the owner's root. A file already
// at root is a no-op success; in particular its updated_at stays put.
func (fs *FileService) RemoveFromFolder(ctx context.Context, ownerUUID user.UUID, fileUUID uuid.UUID) (*domain.File, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}

	f, err := fs.fileRepository.FetchFile(ctx, id, fileUUID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}
	if f.FolderID == nil {
		f.DownloadURL = fs.store.PublicURL(f.StoragePath)
		return f, nil
	}

	rootPath, err := fs.resolver.Resolve(id, f.StoredName)
	if err != nil {
		return nil, err
	}

	return fs.move(ctx, id, ownerUUID, f, nil, rootPath)
}

func (fs *FileService) move(
	ctx context.Context,
	id user.ID,
	ownerUUID user.UUID,
	f *domain.File,
	folderID *folder.ID,
	newPath string,
) (*domain.File, error) {
	if err := fs.store.Move(f.StoragePath, newPath); err != nil {
		return nil, &StorageError{Op: "move", Path: f.StoragePath, Err: err}
	}

	updated, err := fs.fileRepository.UpdatePlacement(ctx, id, f.UUID, folderID, newPath)
	if err != nil || updated == nil {
		if err == nil {
			err = fmt.Errorf("file row %s disappeared during move", f.UUID)
		}
		fs.reportDivergence(id, "file.move", newPath, err)
		return nil, &PartialFailureError{Op: "file.move", OwnerID: id, Path: newPath, Err: err}
	}
	updated.DownloadURL = fs.store.PublicURL(updated.StoragePath)

	fs.publish(mq.ActionFileMoved, ownerUUID, map[string]string{"file": f.UUID.String(), "path": newPath})
	fs.mCounter.WithLabelValues("files_moved_total").Inc()

	return updated, nil
}

func (fs *FileService) publish(action string, ownerUUID user.UUID, detail map[string]string) {
	fs.mq.GetInputChan() <- mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: action,
		UserID: ownerUUID.String(),
		Detail: detail,
	}
}

func (fs *FileService) reportDivergence(ownerID user.ID, op, path string, cause error) {
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

// uniqueStoredName builds the collision-free on-disk name: unix timestamp
// plus a digest of the original name, keeping only the (lowercased)
// extension from the user input.
func uniqueStoredName(original string) string {
	sum := sha256.Sum256([]byte(original))
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	return fmt.Sprintf("%d_%x%s", time.Now().UnixNano(), sum[:16], ext)
}

var windowsReserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// sanitizeFileName reduces the original filename to a safe ASCII display
// name for the metadata record. The on-disk name never comes from here.
func sanitizeFileName(original string) string {
	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)
	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	rawExt := path.Ext(s)
	if rawExt == "." {
		rawExt = ""
	}
	ext := strings.ToLower(rawExt)
	base := strings.TrimSuffix(s, rawExt)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9' || r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}
	if len(base)+len(ext) > maxBaseNameLen {
		base = base[:maxBaseNameLen-len(ext)]
	}

	return base + ext
}
