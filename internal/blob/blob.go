// Package blob is the path-addressed binary storage contract. Writes
// return a publicly resolvable URL; paths are namespaced by owning
// account and purpose, e.g. profiles/{accountID}/resume-{ts}.pdf.
package blob

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFileTooLarge is returned before any network round-trip when a
	// payload exceeds the configured byte ceiling.
	ErrFileTooLarge = errors.New("file exceeds size ceiling")
	// ErrNotFound is returned when the object path has no blob.
	ErrNotFound = errors.New("blob not found")
)

// DefaultMaxBytes is the generic upload ceiling. Tighter per-purpose
// bounds (profile images, resumes) are caller-side policy.
const DefaultMaxBytes = 10 << 20

// Storage is satisfied by every blob backend.
type Storage interface {
	// Upload writes data at objectPath and returns its public URL.
	// ErrFileTooLarge when data exceeds the backend's ceiling.
	Upload(ctx context.Context, data []byte, objectPath string) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// UploadError wraps an underlying blob-store failure with context.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
