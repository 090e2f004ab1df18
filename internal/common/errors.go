// Package common defines shared constants and sentinel errors used across
// gophdrive layers. Callers should use errors.Is / errors.As to match these
// values; message text is for humans only.
package common

import (
	"errors"
	"fmt"
)

var (
	// Operation-level failures. Every orchestrator converts collaborator
	// errors into exactly one of these.
	ErrAuth                 = errors.New("authentication failed")
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	ErrTooManyFiles         = errors.New("too many files")
	ErrUploadFailed         = errors.New("upload failed")
	ErrDeleteFailed         = errors.New("delete failed")
	ErrLinkGenerationFailed = errors.New("link generation failed")
	ErrNotificationFailed   = errors.New("notification failed")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// Validation / flow control.
	ErrNoSession         = errors.New("no active session")
	ErrEmptyBatch        = errors.New("no files selected")
	ErrUploadInProgress  = errors.New("upload already in progress")
	ErrRecipientRequired = errors.New("recipient address is required")
	ErrForeignKey        = errors.New("object key outside of user namespace")

	// Local storage.
	ErrorNotFound = errors.New("not found")
)

// UploadError reports which file of a batch failed. It matches
// ErrUploadFailed and the underlying cause.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUploadFailed, e.FileName, e.Err)
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrUploadFailed, e.Err}
}

// Wrap attaches kind to cause so that errors.Is matches both.
// A nil cause yields kind itself.
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
