package server

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// fakeStore is an in-memory ResumeStore.
type fakeStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*db.ResumeRecord
	stats   map[uuid.UUID]*types.ResumeStatistics
	clock   time.Time
}

var _ ResumeStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		resumes: make(map[uuid.UUID]*db.ResumeRecord),
		stats:   make(map[uuid.UUID]*types.ResumeStatistics),
		clock:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func copyRecord(rec *db.ResumeRecord) *db.ResumeRecord {
	out := *rec
	out.Tags = slices.Clone(rec.Tags)
	out.HasPassword = rec.PasswordHash != ""
	if rec.Data != nil {
		out.Data = rec.Data.Clone()
	}
	return &out
}

func (f *fakeStore) slugTaken(userID uuid.UUID, slug string, except uuid.UUID) bool {
	for _, rec := range f.resumes {
		if rec.UserID == userID && rec.Slug == slug && rec.ID != except {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateResume(_ context.Context, in db.NewResume) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slugTaken(in.UserID, in.Slug, uuid.Nil) {
		return nil, fmt.Errorf("%w: %s", db.ErrSlugConflict, in.Slug)
	}
	now := f.tick()
	rec := &db.ResumeRecord{Resume: types.Resume{
		ID:        in.ID,
		Name:      in.Name,
		Slug:      in.Slug,
		Tags:      slices.Clone(in.Tags),
		IsPublic:  in.IsPublic,
		IsLocked:  in.IsLocked,
		Data:      in.Data.Clone(),
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	f.resumes[in.ID] = rec
	f.stats[in.ID] = &types.ResumeStatistics{}
	return copyRecord(rec), nil
}

func (f *fakeStore) GetResume(_ context.Context, id, userID uuid.UUID) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.resumes[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (f *fakeStore) GetResumeBySlug(_ context.Context, userID uuid.UUID, slug string) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.resumes {
		if rec.UserID == userID && rec.Slug == slug {
			return copyRecord(rec), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListResumes(_ context.Context, userID uuid.UUID, filters db.ResumeFilters) ([]types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Resume
	for _, rec := range f.resumes {
		if rec.UserID != userID {
			continue
		}
		keep := true
		for _, tag := range filters.Tags {
			if !slices.Contains(rec.Tags, tag) {
				keep = false
			}
		}
		if keep {
			r := copyRecord(rec).Resume
			r.Data = nil
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		switch filters.Sort {
		case types.SortName:
			return out[i].Name < out[j].Name
		case types.SortCreatedAt:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		default:
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
	})
	return out, nil
}

func (f *fakeStore) ListTags(_ context.Context, userID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tags []string
	for _, rec := range f.resumes {
		if rec.UserID != userID {
			continue
		}
		for _, tag := range rec.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (f *fakeStore) UpdateResume(_ context.Context, id, userID uuid.UUID, upd db.ResumeUpdate) (*db.ResumeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.resumes[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	if upd.IfUnmodifiedSince != nil && !rec.UpdatedAt.Equal(*upd.IfUnmodifiedSince) {
		return nil, db.ErrStaleWrite
	}
	if upd.Slug != nil && f.slugTaken(userID, *upd.Slug, id) {
		return nil, db.ErrSlugConflict
	}
	if upd.Name != nil {
		rec.Name = *upd.Name
	}
	if upd.Slug != nil {
		rec.Slug = *upd.Slug
	}
	if upd.Tags != nil {
		rec.Tags = slices.Clone(upd.Tags)
	}
	if upd.IsPublic != nil {
		rec.IsPublic = *upd.IsPublic
		f.stats[id].IsPublic = *upd.IsPublic
	}
	if upd.Data != nil {
		rec.Data = upd.Data.Clone()
	}
	rec.UpdatedAt = f.tick()
	return copyRecord(rec), nil
}

func (f *fakeStore) SetLocked(_ context.Context, id, userID uuid.UUID, locked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.resumes[id]
	if !ok || rec.UserID != userID {
		return fmt.Errorf("resume not found: %s", id)
	}
	rec.IsLocked = locked
	return nil
}

func (f *fakeStore) SetPasswordHash(_ context.Context, id, userID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.resumes[id]
	if !ok || rec.UserID != userID {
		return fmt.Errorf("resume not found: %s", id)
	}
	rec.PasswordHash = hash
	return nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.resumes[id]; ok && rec.UserID == userID {
		delete(f.resumes, id)
		delete(f.stats, id)
	}
	return nil
}

func (f *fakeStore) GetStatistics(_ context.Context, id uuid.UUID) (*types.ResumeStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[id]
	if !ok {
		return nil, nil
	}
	out := *stats
	return &out, nil
}

func (f *fakeStore) IncrementStatistics(_ context.Context, id uuid.UUID, views, downloads bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats, ok := f.stats[id]
	if !ok {
		return fmt.Errorf("resume not found: %s", id)
	}
	now := f.tick()
	if views {
		stats.Views++
		stats.LastViewedAt = &now
	}
	if downloads {
		stats.Downloads++
		stats.LastDownloadedAt = &now
	}
	return nil
}

// bumpUpdatedAt simulates a write by another client.
func (f *fakeStore) bumpUpdatedAt(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes[id].UpdatedAt = f.tick()
}
