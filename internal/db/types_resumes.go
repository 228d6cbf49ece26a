package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrSlugConflict is returned when a user already has a resume with the slug
	ErrSlugConflict = errors.New("slug already in use")
	// ErrStaleWrite is returned when a conditional update finds a newer row
	ErrStaleWrite = errors.New("resume was modified concurrently")
)

// ResumeRecord is a resume row including columns never sent to clients
type ResumeRecord struct {
	types.Resume
	PasswordHash string `json:"-" db:"password_hash"` // Never serialize to JSON
}

// ResumeFilters holds optional filters for listing resumes
type ResumeFilters struct {
	// Tags keeps resumes carrying every listed tag
	Tags []string
	Sort types.ResumeSort
}

// ResumeUpdate holds the columns a partial update may change; nil fields are kept
type ResumeUpdate struct {
	Name     *string
	Slug     *string
	Tags     []string
	IsPublic *bool
	Data     *types.ResumeData
	// IfUnmodifiedSince makes the update conditional on updated_at
	IfUnmodifiedSince *time.Time
}

// NewResume holds the columns of a resume being created
type NewResume struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Slug     string
	Tags     []string
	IsPublic bool
	IsLocked bool
	Data     *types.ResumeData
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
