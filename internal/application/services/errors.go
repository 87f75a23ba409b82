package services

import (
	"errors"
	"fmt"

	"cloudnest-api/internal/domain/user"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	ErrFolderExists   = errors.New("folder already exists")
	ErrFolderNotFound = errors.New("folder not found")
	ErrFileNotFound   = errors.New("file not found")
)

// Upload rejection reasons.
const (
	RejectInvalidExtension = "invalid extension"
	RejectTooLarge         = "too large"
	RejectEmptyFilename    = "empty filename"
)

// UploadRejectedError terminates the upload pipeline before any bytes are
// written.
type UploadRejectedError struct {
	Filename string
	Reason   string
}

func (e *UploadRejectedError) Error() string {
	return fmt.Sprintf("upload rejected (%s): %q", e.Reason, e.Filename)
}

// StorageError wraps a failure of the physical store.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed at %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PartialFailureError means the physical store changed but the metadata
// store did not follow (or the reverse). It carries everything needed for
// manual reconciliation and must never be swallowed.
type PartialFailureError struct {
	Op      string
	OwnerID user.ID
	Path    string
	Err     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf(
		"partial failure in %s for owner %d at %s: physical and metadata stores diverged: %v",
		e.Op, e.OwnerID, e.Path, e.Err,
	)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
