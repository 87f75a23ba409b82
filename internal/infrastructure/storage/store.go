package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DiskStore is the pass-through physical store: a plain directory tree under
// the resolver root. It only ever receives paths built by the Resolver.
type DiskStore struct {
	logger        *zap.Logger
	resolver      *Resolver
	publicBaseURL string
}

func NewDiskStore(logger *zap.Logger, resolver *Resolver, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(resolver.Root(), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	logger.Info("disk store ready", zap.String("root", resolver.Root()))

	return &DiskStore{
		logger:        logger,
		resolver:      resolver,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Save streams r into a new file at path. The write is aborted (and the
// partial file removed) when ctx is cancelled, so a dropped upload never
// leaves bytes behind.
func (d *DiskStore) Save(ctx context.Context, path string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write file: %w", err)
	}

	return n, nil
}

// Move renames a file across directories inside the store.
func (d *DiskStore) Move(oldPath, newPath string) error {
	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}

func (d *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// CreateDir creates one directory, reporting whether it already existed.
func (d *DiskStore) CreateDir(path string) (existed bool, err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create parent dir: %w", err)
	}
	if err = os.Mkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("create dir: %w", err)
	}
	return false, nil
}

func (d *DiskStore) RenameDir(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename dir: %w", err)
	}
	return nil
}

// RemoveDir removes a directory with everything inside it.
func (d *DiskStore) RemoveDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove dir: %w", err)
	}
	return nil
}

func (d *DiskStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (d *DiskStore) DirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// ListDirs returns the sorted names of the directories directly under path.
// A missing path is an empty listing, not an error: the owner simply has no
// folders yet.
func (d *DiskStore) ListDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list dirs: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// PublicURL maps a physical path onto its download location.
func (d *DiskStore) PublicURL(path string) string {
	rel, err := filepath.Rel(d.resolver.Root(), path)
	if err != nil {
		return ""
	}
	return d.publicBaseURL + "/" + filepath.ToSlash(rel)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
