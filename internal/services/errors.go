package services

import (
	"errors"
	"fmt"

	"figure-forge-backend/internal/models"
)

// The fulfillment workflow reports failures through a small typed taxonomy.
// Validation, authorization, and precondition errors are raised before any
// external effect and carry no compensation burden; upload and persistence
// errors may occur after effects and are raised only after the documented
// compensation has run.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// PreconditionError means the entity exists but is in the wrong state for the
// requested operation. Check names which precondition failed.
type PreconditionError struct {
	Check string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Check
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func isNoRow(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
