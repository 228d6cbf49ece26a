// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
)

// ErrResumeNotFound indicates the resume does not exist or is not visible to the caller
type ErrResumeNotFound struct {
	ID   uuid.UUID
	Slug string
}

func (e *ErrResumeNotFound) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("resume not found: %s", e.Slug)
	}
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrResumeLocked indicates a write to a locked resume
type ErrResumeLocked struct {
	ID uuid.UUID
}

func (e *ErrResumeLocked) Error() string {
	return fmt.Sprintf("resume is locked: %s", e.ID)
}

// ErrSlugTaken indicates the user already has a resume with the slug
type ErrSlugTaken struct {
	Slug string
}

func (e *ErrSlugTaken) Error() string {
	return fmt.Sprintf("slug already in use: %s", e.Slug)
}

// ErrNeedPassword indicates a protected public resume was requested without a valid access token
type ErrNeedPassword struct{}

func (e *ErrNeedPassword) Error() string {
	return "resume is password protected"
}

// ErrInvalidPassword indicates the resume password did not match
type ErrInvalidPassword struct{}

func (e *ErrInvalidPassword) Error() string {
	return "invalid resume password"
}

// ErrConflict indicates another write landed between read and write
type ErrConflict struct {
	ID uuid.UUID
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("resume was modified concurrently: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidDocument indicates resume data that failed the schema or layout check
type ErrInvalidDocument struct {
	Err error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid resume data: %v", e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrResumeNotFound:
		return http.StatusNotFound
	case *ErrResumeLocked, *ErrSlugTaken, *ErrConflict:
		return http.StatusConflict
	case *ErrNeedPassword, *ErrInvalidPassword:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrInvalidDocument:
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, editor.ErrItemNotFound), errors.Is(err, editor.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrIncompatibleTarget), errors.Is(err, layout.ErrDuplicateReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrPageOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
