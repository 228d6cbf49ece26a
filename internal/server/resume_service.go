package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/metrics"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeService provides business logic for resume management
type ResumeService struct {
	store          ResumeStore
	storage        storage.System
	passwordConfig *config.PasswordConfig
	tokens         *JWTService
	logger         *slog.Logger
}

// NewResumeService creates a new ResumeService with the given dependencies
func NewResumeService(store ResumeStore, files storage.System, passwordConfig *config.PasswordConfig, tokens *JWTService, logger *slog.Logger) *ResumeService {
	return &ResumeService{
		store:          store,
		storage:        files,
		passwordConfig: passwordConfig,
		tokens:         tokens,
		logger:         logger.With("service", "resumes"),
	}
}

// List returns the user's resumes without their data
func (s *ResumeService) List(ctx context.Context, userID uuid.UUID, req *types.ListResumesRequest) ([]types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	resumes, err := s.store.ListResumes(ctx, userID, db.ResumeFilters{Tags: req.Tags, Sort: req.Sort})
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// Tags returns the distinct tags of the user's resumes, sorted
func (s *ResumeService) Tags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	tags, err := s.store.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Get returns a resume owned by the user
func (s *ResumeService) Get(ctx context.Context, userID, id uuid.UUID) (*types.Resume, error) {
	rec, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &rec.Resume, nil
}

func (s *ResumeService) get(ctx context.Context, userID, id uuid.UUID) (*db.ResumeRecord, error) {
	rec, err := s.store.GetResume(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if rec == nil {
		return nil, &ErrResumeNotFound{ID: id}
	}
	return rec, nil
}

// getWritable is get that refuses locked resumes
func (s *ResumeService) getWritable(ctx context.Context, userID, id uuid.UUID) (*db.ResumeRecord, error) {
	rec, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rec.IsLocked {
		return nil, &ErrResumeLocked{ID: id}
	}
	return rec, nil
}

// GetPublic returns a resume by owner and slug. The owner always sees it;
// anyone else only when it is public and, if it has a password, with a valid
// resume access token. Views by others are counted.
func (s *ResumeService) GetPublic(ctx context.Context, ownerID uuid.UUID, slug string, viewerID uuid.UUID, accessToken string) (*types.Resume, error) {
	rec, err := s.getPublic(ctx, ownerID, slug, viewerID)
	if err != nil {
		return nil, err
	}
	if viewerID == ownerID {
		return &rec.Resume, nil
	}

	if rec.PasswordHash != "" {
		if accessToken == "" {
			return nil, &ErrNeedPassword{}
		}
		if err := s.tokens.ValidateResumeAccessToken(accessToken, rec.ID); err != nil {
			s.logger.Debug("rejected resume access token", "resume_id", rec.ID, "error", err)
			return nil, &ErrNeedPassword{}
		}
	}

	if err := s.store.IncrementStatistics(ctx, rec.ID, true, false); err != nil {
		s.logger.Warn("failed to record resume view", "resume_id", rec.ID, "error", err)
	}
	return &rec.Resume, nil
}

func (s *ResumeService) getPublic(ctx context.Context, ownerID uuid.UUID, slug string, viewerID uuid.UUID) (*db.ResumeRecord, error) {
	rec, err := s.store.GetResumeBySlug(ctx, ownerID, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if rec == nil || (!rec.IsPublic && viewerID != ownerID) {
		return nil, &ErrResumeNotFound{Slug: slug}
	}
	return rec, nil
}

// VerifyPassword checks the password of a protected public resume and
// issues a resume access token on success
func (s *ResumeService) VerifyPassword(ctx context.Context, ownerID uuid.UUID, slug, password string) (string, error) {
	rec, err := s.getPublic(ctx, ownerID, slug, uuid.Nil)
	if err != nil {
		return "", err
	}
	if rec.PasswordHash == "" {
		return "", &ErrValidation{Field: "password", Message: "resume is not password protected"}
	}
	if !s.passwordConfig.VerifyPassword(password, rec.PasswordHash) {
		return "", &ErrInvalidPassword{}
	}
	token, err := s.tokens.GenerateResumeAccessToken(rec.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue resume access token: %w", err)
	}
	return token, nil
}

// RecordDownload counts a download of a public resume
func (s *ResumeService) RecordDownload(ctx context.Context, ownerID uuid.UUID, slug string, viewerID uuid.UUID) error {
	rec, err := s.getPublic(ctx, ownerID, slug, viewerID)
	if err != nil {
		return err
	}
	if viewerID == ownerID {
		return nil
	}
	if err := s.store.IncrementStatistics(ctx, rec.ID, false, true); err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Create creates a resume seeded with the default or the sample document
func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateResumeRequest) (*types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	data := types.DefaultResumeData()
	if req.WithSampleData {
		data = types.SampleResumeData()
	}
	if req.Locale != "" {
		data.Metadata.Page.Locale = req.Locale
	}

	return s.insert(ctx, db.NewResume{
		UserID: userID,
		Name:   req.Name,
		Slug:   req.Slug,
		Tags:   req.Tags,
		Data:   data,
	})
}

// Import creates a resume from a complete document
func (s *ResumeService) Import(ctx context.Context, userID uuid.UUID, req *types.ImportResumeRequest) (*types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	data, err := parseDocument(req.Data)
	if err != nil {
		return nil, err
	}

	return s.insert(ctx, db.NewResume{
		UserID: userID,
		Name:   req.Name,
		Slug:   req.Slug,
		Tags:   req.Tags,
		Data:   data,
	})
}

// Duplicate copies a resume under a new name and slug. The copy is private,
// unlocked and has no password.
func (s *ResumeService) Duplicate(ctx context.Context, userID, id uuid.UUID, req *types.DuplicateResumeRequest) (*types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	rec, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = rec.Tags
	}
	return s.insert(ctx, db.NewResume{
		UserID: userID,
		Name:   req.Name,
		Slug:   req.Slug,
		Tags:   tags,
		Data:   rec.Data.Clone(),
	})
}

func (s *ResumeService) insert(ctx context.Context, in db.NewResume) (*types.Resume, error) {
	in.ID = uuid.Must(uuid.NewV7())
	if in.Tags == nil {
		in.Tags = []string{}
	}

	rec, err := s.store.CreateResume(ctx, in)
	if err != nil {
		if errors.Is(err, db.ErrSlugConflict) {
			return nil, &ErrSlugTaken{Slug: in.Slug}
		}
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	s.logger.Info("resume created", "resume_id", rec.ID, "user_id", in.UserID)
	return &rec.Resume, nil
}

// Update applies a partial update. Locked resumes are rejected and new data
// must pass the schema and layout checks.
func (s *ResumeService) Update(ctx context.Context, userID, id uuid.UUID, req *types.UpdateResumeRequest) (*types.Resume, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	rec, err := s.getWritable(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	upd := db.ResumeUpdate{
		Name:              req.Name,
		Slug:              req.Slug,
		Tags:              req.Tags,
		IsPublic:          req.IsPublic,
		IfUnmodifiedSince: &rec.UpdatedAt,
	}
	if len(req.Data) > 0 {
		if upd.Data, err = parseDocument(req.Data); err != nil {
			return nil, err
		}
	}

	out, err := s.write(ctx, rec, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("resume updated", "resume_id", id)
	return out, nil
}

func (s *ResumeService) write(ctx context.Context, rec *db.ResumeRecord, upd db.ResumeUpdate) (*types.Resume, error) {
	out, err := s.store.UpdateResume(ctx, rec.ID, rec.UserID, upd)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrSlugConflict):
			slug := rec.Slug
			if upd.Slug != nil {
				slug = *upd.Slug
			}
			return nil, &ErrSlugTaken{Slug: slug}
		case errors.Is(err, db.ErrStaleWrite):
			return nil, &ErrConflict{ID: rec.ID}
		default:
			return nil, fmt.Errorf("failed to update resume: %w", err)
		}
	}
	if out == nil {
		return nil, &ErrResumeNotFound{ID: rec.ID}
	}
	return &out.Resume, nil
}

// SetLocked locks or unlocks a resume
func (s *ResumeService) SetLocked(ctx context.Context, userID, id uuid.UUID, locked bool) (*types.Resume, error) {
	if _, err := s.get(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.store.SetLocked(ctx, id, userID, locked); err != nil {
		return nil, fmt.Errorf("failed to set resume lock: %w", err)
	}
	s.logger.Info("resume lock changed", "resume_id", id, "locked", locked)
	return s.Get(ctx, userID, id)
}

// SetPassword protects a resume with a password
func (s *ResumeService) SetPassword(ctx context.Context, userID, id uuid.UUID, req *types.SetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	if _, err := s.get(ctx, userID, id); err != nil {
		return err
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.SetPasswordHash(ctx, id, userID, hash); err != nil {
		return fmt.Errorf("failed to set resume password: %w", err)
	}
	return nil
}

// RemovePassword removes the password of a resume
func (s *ResumeService) RemovePassword(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.SetPasswordHash(ctx, id, userID, ""); err != nil {
		return fmt.Errorf("failed to remove resume password: %w", err)
	}
	return nil
}

// Delete deletes an unlocked resume together with its stored screenshots
// and PDFs. Storage failures are logged and do not fail the delete.
func (s *ResumeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getWritable(ctx, userID, id); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := s.store.DeleteResume(ctx, id, userID); err != nil {
			return fmt.Errorf("failed to delete resume: %w", err)
		}
		return nil
	})
	for _, prefix := range storage.ResumePrefixes(userID, id) {
		g.Go(func() error {
			if err := s.storage.DeletePrefix(ctx, prefix); err != nil {
				s.logger.Warn("failed to delete resume artifacts", "resume_id", id, "prefix", prefix, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("resume deleted", "resume_id", id)
	return nil
}

// Statistics returns the view and download counters of a resume
func (s *ResumeService) Statistics(ctx context.Context, userID, id uuid.UUID) (*types.ResumeStatistics, error) {
	if _, err := s.get(ctx, userID, id); err != nil {
		return nil, err
	}
	stats, err := s.store.GetStatistics(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume statistics: %w", err)
	}
	if stats == nil {
		return nil, &ErrResumeNotFound{ID: id}
	}
	return stats, nil
}

// MoveTargets lists the sections an item of type t can be moved to
func (s *ResumeService) MoveTargets(ctx context.Context, userID, id uuid.UUID, t types.CustomSectionType, sourceSectionID string) ([]editor.MoveTargetPage, error) {
	if !t.Valid() {
		return nil, &ErrValidation{Field: "type", Message: fmt.Sprintf("unknown section type %q", t)}
	}
	rec, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return editor.GetCompatibleMoveTargets(rec.Data, t, sourceSectionID), nil
}

// Move moves one item and stores the result. The write is conditional on
// the resume being unchanged since it was read.
func (s *ResumeService) Move(ctx context.Context, userID, id uuid.UUID, cmd editor.MoveCommand) (*types.Resume, *editor.MoveResult, error) {
	if err := cmd.Validate(); err != nil {
		metrics.ObserveMove(string(cmd.Target), err)
		return nil, nil, validationError(err)
	}
	rec, err := s.getWritable(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	next, result, err := editor.Move(rec.Data, cmd)
	metrics.ObserveMove(string(cmd.Target), err)
	if err != nil {
		return nil, nil, err
	}

	out, err := s.write(ctx, rec, db.ResumeUpdate{Data: next, IfUnmodifiedSince: &rec.UpdatedAt})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("item moved", "resume_id", id, "item_id", cmd.ItemID, "target", cmd.Target, "section_id", result.SectionID)
	return out, result, nil
}

// CheckLayout reports the layout issues of a stored resume
func (s *ResumeService) CheckLayout(ctx context.Context, userID, id uuid.UUID) ([]layout.Issue, error) {
	rec, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return layout.CheckLayout(rec.Data), nil
}

// parseDocument decodes resume data at the API boundary and requires a
// consistent layout.
func parseDocument(data []byte) (*types.ResumeData, error) {
	doc, err := schemas.ParseResumeData(data)
	if err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			metrics.ObserveRejected(metrics.ReasonSchema)
			return nil, &ErrInvalidDocument{Err: err}
		}
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}
	if err := layout.Validate(doc); err != nil {
		metrics.ObserveRejected(metrics.ReasonLayout)
		return nil, &ErrInvalidDocument{Err: err}
	}
	return doc, nil
}

// validationError converts validator failures to an ErrValidation on the
// first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
