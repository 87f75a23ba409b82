package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cloudnest-api/internal/domain/user"
)

var ErrUnsafeName = errors.New("name contains path-unsafe characters")

// Resolver is the single authority for physical path construction. Every
// path starts at the configured storage root and is namespaced by the
// numeric owner id, so two users can never collide. No other component
// concatenates storage paths.
type Resolver struct {
	root string
}

func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root %q: %w", root, err)
	}
	return &Resolver{root: abs}, nil
}

func (r *Resolver) Root() string { return r.root }

// OwnerRoot returns the top-level directory for one owner.
func (r *Resolver) OwnerRoot(owner user.ID) string {
	return filepath.Join(r.root, strconv.FormatUint(uint64(owner), 10))
}

// Resolve maps (owner, optional folder, optional filename) onto a physical
// path. Each extra segment is checked against traversal: separators, NUL,
// "." and ".." are all rejected, so the result can never escape the root.
func (r *Resolver) Resolve(owner user.ID, segments ...string) (string, error) {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, r.root, strconv.FormatUint(uint64(owner), 10))
	for _, s := range segments {
		if err := CheckSegment(s); err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return filepath.Join(parts...), nil
}

// CheckSegment validates a single folder or file name for use as one path
// element.
func CheckSegment(s string) error {
	if s == "" || s == "." || s == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeName, s)
	}
	if strings.ContainsAny(s, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrUnsafeName, s)
	}
	return nil
}
