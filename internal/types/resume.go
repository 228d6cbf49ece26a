package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ResumeSort is the ordering of resume listings.
type ResumeSort string

const (
	SortLastUpdatedAt ResumeSort = "lastUpdatedAt"
	SortCreatedAt     ResumeSort = "createdAt"
	SortName          ResumeSort = "name"
)

// Resume is a stored resume with its document.
type Resume struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Tags        []string    `json:"tags"`
	IsPublic    bool        `json:"isPublic"`
	IsLocked    bool        `json:"isLocked"`
	HasPassword bool        `json:"hasPassword"`
	Data        *ResumeData `json:"data,omitempty"`
	UserID      uuid.UUID   `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ResumeStatistics counts public views and downloads of a resume.
type ResumeStatistics struct {
	IsPublic         bool       `json:"isPublic"`
	Views            int        `json:"views"`
	Downloads        int        `json:"downloads"`
	LastViewedAt     *time.Time `json:"lastViewedAt"`
	LastDownloadedAt *time.Time `json:"lastDownloadedAt"`
}

// ListResumesRequest filters and orders a user's resumes.
type ListResumesRequest struct {
	Tags []string   `json:"tags"`
	Sort ResumeSort `json:"sort" validate:"omitempty,oneof=lastUpdatedAt createdAt name"`
}

// CreateResumeRequest creates a resume seeded with default or sample data.
type CreateResumeRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=64"`
	Slug           string   `json:"slug" validate:"required,min=1,max=64"`
	Tags           []string `json:"tags"`
	WithSampleData bool     `json:"withSampleData"`
	Locale         string   `json:"locale,omitempty"`
}

// ImportResumeRequest creates a resume from an existing document.
type ImportResumeRequest struct {
	Name string          `json:"name" validate:"required,min=1,max=64"`
	Slug string          `json:"slug" validate:"required,min=1,max=64"`
	Tags []string        `json:"tags"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// UpdateResumeRequest is a partial update; nil fields are left unchanged.
// Data is decoded and validated by the service.
type UpdateResumeRequest struct {
	Name     *string         `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Slug     *string         `json:"slug,omitempty" validate:"omitempty,min=1,max=64"`
	Tags     []string        `json:"tags,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	IsPublic *bool           `json:"isPublic,omitempty"`
}

// DuplicateResumeRequest copies a resume under a new name and slug.
type DuplicateResumeRequest struct {
	Name string   `json:"name" validate:"required,min=1,max=64"`
	Slug string   `json:"slug" validate:"required,min=1,max=64"`
	Tags []string `json:"tags"`
}

// SetPasswordRequest protects a public resume with a password.
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=64"`
}

// Validate validates the ListResumesRequest using the validator.
func (r *ListResumesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImportResumeRequest using the validator.
func (r *ImportResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateResumeRequest using the validator.
func (r *UpdateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the DuplicateResumeRequest using the validator.
func (r *DuplicateResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetPasswordRequest using the validator.
func (r *SetPasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
