package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, user_id, name, slug, tags, is_public, is_locked,
	COALESCE(password_hash, ''), data, created_at, updated_at`

const resumeSummaryColumns = `id, user_id, name, slug, tags, is_public, is_locked,
	password_hash IS NOT NULL, created_at, updated_at`

func scanResume(row pgx.Row) (*ResumeRecord, error) {
	var rec ResumeRecord
	var tags StringArray
	var data []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Slug, &tags, &rec.IsPublic, &rec.IsLocked,
		&rec.PasswordHash, &data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Tags = []string(tags)
	rec.HasPassword = rec.PasswordHash != ""

	doc, err := schemas.ParseResumeData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data of resume %s: %w", rec.ID, err)
	}
	rec.Data = doc
	return &rec, nil
}

// CreateResume inserts a resume and its statistics row
func (db *DB) CreateResume(ctx context.Context, in NewResume) (*ResumeRecord, error) {
	data, err := json.Marshal(in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	rec, err := scanResume(tx.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, name, slug, tags, is_public, is_locked, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+resumeColumns,
		in.ID, in.UserID, in.Name, in.Slug, StringArray(in.Tags), in.IsPublic, in.IsLocked, data,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrSlugConflict, in.Slug)
		}
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO resume_statistics (resume_id) VALUES ($1)`, rec.ID); err != nil {
		return nil, fmt.Errorf("failed to create resume statistics: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit resume: %w", err)
	}
	return rec, nil
}

// GetResume retrieves a resume owned by userID. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, id, userID uuid.UUID) (*ResumeRecord, error) {
	rec, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return rec, nil
}

// GetResumeBySlug retrieves a resume by its owner and slug. Returns nil, nil when absent.
func (db *DB) GetResumeBySlug(ctx context.Context, userID uuid.UUID, slug string) (*ResumeRecord, error) {
	rec, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 AND slug = $2`,
		userID, slug,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume by slug: %w", err)
	}
	return rec, nil
}

// ListResumes retrieves a user's resumes without their data
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID, filters ResumeFilters) ([]types.Resume, error) {
	query := `SELECT ` + resumeSummaryColumns + ` FROM resumes WHERE user_id = $1`
	args := []any{userID}

	if len(filters.Tags) > 0 {
		query += " AND tags @> $2"
		args = append(args, StringArray(filters.Tags))
	}

	switch filters.Sort {
	case types.SortCreatedAt:
		query += " ORDER BY created_at ASC"
	case types.SortName:
		query += " ORDER BY name ASC"
	default:
		query += " ORDER BY updated_at DESC"
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		var r types.Resume
		var tags StringArray
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Slug, &tags, &r.IsPublic, &r.IsLocked,
			&r.HasPassword, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		r.Tags = []string(tags)
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// ListTags returns the distinct tags of a user's resumes in sorted order
func (db *DB) ListTags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT jsonb_array_elements_text(tags) FROM resumes WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}

// UpdateResume applies a partial update and returns the new row. Returns
// nil, nil when the resume does not exist, and ErrStaleWrite when
// IfUnmodifiedSince no longer matches.
func (db *DB) UpdateResume(ctx context.Context, id, userID uuid.UUID, upd ResumeUpdate) (*ResumeRecord, error) {
	query := `UPDATE resumes SET updated_at = NOW()`
	args := []any{id, userID}
	argNum := 3

	if upd.Name != nil {
		query += fmt.Sprintf(", name = $%d", argNum)
		args = append(args, *upd.Name)
		argNum++
	}
	if upd.Slug != nil {
		query += fmt.Sprintf(", slug = $%d", argNum)
		args = append(args, *upd.Slug)
		argNum++
	}
	if upd.Tags != nil {
		query += fmt.Sprintf(", tags = $%d", argNum)
		args = append(args, StringArray(upd.Tags))
		argNum++
	}
	if upd.IsPublic != nil {
		query += fmt.Sprintf(", is_public = $%d", argNum)
		args = append(args, *upd.IsPublic)
		argNum++
	}
	if upd.Data != nil {
		data, err := json.Marshal(upd.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resume data: %w", err)
		}
		query += fmt.Sprintf(", data = $%d", argNum)
		args = append(args, data)
		argNum++
	}

	query += " WHERE id = $1 AND user_id = $2"
	if upd.IfUnmodifiedSince != nil {
		query += fmt.Sprintf(" AND updated_at = $%d", argNum)
		args = append(args, *upd.IfUnmodifiedSince)
	}
	query += " RETURNING " + resumeColumns

	rec, err := scanResume(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugConflict
		}
		if err == pgx.ErrNoRows {
			if upd.IfUnmodifiedSince != nil {
				existing, getErr := db.GetResume(ctx, id, userID)
				if getErr != nil {
					return nil, getErr
				}
				if existing != nil {
					return nil, ErrStaleWrite
				}
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return rec, nil
}

// SetLocked sets the lock flag of a resume
func (db *DB) SetLocked(ctx context.Context, id, userID uuid.UUID, locked bool) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET is_locked = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, locked,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume lock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// SetPasswordHash stores a bcrypt hash, or clears it when hash is empty
func (db *DB) SetPasswordHash(ctx context.Context, id, userID uuid.UUID, hash string) error {
	var value any
	if hash != "" {
		value = hash
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET password_hash = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// DeleteResume deletes a resume and its statistics (via cascade)
func (db *DB) DeleteResume(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// GetStatistics retrieves the view and download counters of a resume
func (db *DB) GetStatistics(ctx context.Context, id uuid.UUID) (*types.ResumeStatistics, error) {
	var stats types.ResumeStatistics
	err := db.pool.QueryRow(ctx,
		`SELECT r.is_public, COALESCE(s.views, 0), COALESCE(s.downloads, 0), s.last_viewed_at, s.last_downloaded_at
		 FROM resumes r LEFT JOIN resume_statistics s ON s.resume_id = r.id
		 WHERE r.id = $1`,
		id,
	).Scan(&stats.IsPublic, &stats.Views, &stats.Downloads, &stats.LastViewedAt, &stats.LastDownloadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume statistics: %w", err)
	}
	return &stats, nil
}

// IncrementStatistics bumps the view and/or download counters of a resume
func (db *DB) IncrementStatistics(ctx context.Context, id uuid.UUID, views, downloads bool) error {
	if !views && !downloads {
		return nil
	}
	now := time.Now()
	var viewedAt, downloadedAt *time.Time
	viewInc, downloadInc := 0, 0
	if views {
		viewInc, viewedAt = 1, &now
	}
	if downloads {
		downloadInc, downloadedAt = 1, &now
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_statistics (resume_id, views, downloads, last_viewed_at, last_downloaded_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id) DO UPDATE SET
		   views = resume_statistics.views + EXCLUDED.views,
		   downloads = resume_statistics.downloads + EXCLUDED.downloads,
		   last_viewed_at = COALESCE(EXCLUDED.last_viewed_at, resume_statistics.last_viewed_at),
		   last_downloaded_at = COALESCE(EXCLUDED.last_downloaded_at, resume_statistics.last_downloaded_at)`,
		id, viewInc, downloadInc, viewedAt, downloadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to increment resume statistics: %w", err)
	}
	return nil
}
