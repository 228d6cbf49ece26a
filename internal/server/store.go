package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeStore defines the persistence operations needed by ResumeService.
// *db.DB implements it; tests use an in-memory fake.
type ResumeStore interface {
	CreateResume(ctx context.Context, in db.NewResume) (*db.ResumeRecord, error)
	GetResume(ctx context.Context, id, userID uuid.UUID) (*db.ResumeRecord, error)
	GetResumeBySlug(ctx context.Context, userID uuid.UUID, slug string) (*db.ResumeRecord, error)
	ListResumes(ctx context.Context, userID uuid.UUID, filters db.ResumeFilters) ([]types.Resume, error)
	ListTags(ctx context.Context, userID uuid.UUID) ([]string, error)
	UpdateResume(ctx context.Context, id, userID uuid.UUID, upd db.ResumeUpdate) (*db.ResumeRecord, error)
	SetLocked(ctx context.Context, id, userID uuid.UUID, locked bool) error
	SetPasswordHash(ctx context.Context, id, userID uuid.UUID, hash string) error
	DeleteResume(ctx context.Context, id, userID uuid.UUID) error
	GetStatistics(ctx context.Context, id uuid.UUID) (*types.ResumeStatistics, error)
	IncrementStatistics(ctx context.Context, id uuid.UUID, views, downloads bool) error
}

var _ ResumeStore = (*db.DB)(nil)
