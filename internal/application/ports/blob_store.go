package ports

import (
	"context"
	"io"
)

// BlobStore is the physical side of the dual-store model. All paths passed
// in are produced by the storage path resolver.
type BlobStore interface {
	Save(ctx context.Context, path string, r io.Reader) (int64, error)
	Move(oldPath, newPath string) error
	Remove(path string) error

	CreateDir(path string) (existed bool, err error)
	RenameDir(oldPath, newPath string) error
	RemoveDir(path string) error

	Exists(path string) bool
	DirExists(path string) bool
	ListDirs(path string) ([]string, error)

	PublicURL(path string) string
}
