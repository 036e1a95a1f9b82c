package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"inkflow/internal/models"
)

var ErrNotFound = errors.New("not found")

type SampleRepo struct {
	db *DB
}

func NewSampleRepo(db *DB) *SampleRepo {
	return &SampleRepo{db: db}
}

func (r *SampleRepo) UpsertSample(ctx context.Context, s models.Sample) error {
	var analysisJSON []byte
	if s.Analysis != nil {
		b, err := json.Marshal(s.Analysis)
		if err != nil {
			return fmt.Errorf("marshal sample analysis: %w", err)
		}
		analysisJSON = b
	}
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO samples (sample_id, profile_id, title, filename, text, excerpt, analysis, status, fail_reason)
VALUES ($1, NULLIF($2,'')::uuid, NULLIF($3,''), NULLIF($4,''), $5, NULLIF($6,''), $7, $8, NULLIF($9,''))
ON CONFLICT (sample_id)
DO UPDATE SET
  profile_id = COALESCE(EXCLUDED.profile_id, samples.profile_id),
  title = COALESCE(EXCLUDED.title, samples.title),
  filename = COALESCE(EXCLUDED.filename, samples.filename),
  text = EXCLUDED.text,
  excerpt = EXCLUDED.excerpt,
  analysis = EXCLUDED.analysis,
  status = EXCLUDED.status,
  fail_reason = EXCLUDED.fail_reason,
  updated_at = NOW()`,
		s.SampleID, s.ProfileID, s.Title, s.Filename, s.Text, s.Excerpt, analysisJSON, s.Status, s.FailReason,
	)
	if err != nil {
		return fmt.Errorf("upsert sample: %w", err)
	}
	return nil
}

func (r *SampleRepo) UpdateSampleStatus(ctx context.Context, sampleID, status, failReason string) error {
	ct, err := r.db.Pool.Exec(ctx, `UPDATE samples SET status=$2, fail_reason=NULLIF($3,''), updated_at=NOW() WHERE sample_id=$1`, sampleID, status, failReason)
	if err != nil {
		return fmt.Errorf("update sample status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("sample %s: %w", sampleID, ErrNotFound)
	}
	return nil
}

const sampleColumns = `
SELECT sample_id, COALESCE(profile_id::text,''), COALESCE(title,''), COALESCE(filename,''),
       text, COALESCE(excerpt,''), analysis, status, COALESCE(fail_reason,''), created_at, updated_at
FROM samples`

func (r *SampleRepo) GetSample(ctx context.Context, sampleID string) (models.Sample, error) {
	row := r.db.Pool.QueryRow(ctx, sampleColumns+` WHERE sample_id=$1`, sampleID)
	s, err := scanSample(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sample{}, fmt.Errorf("sample %s: %w", sampleID, ErrNotFound)
		}
		return models.Sample{}, fmt.Errorf("get sample: %w", err)
	}
	return s, nil
}

func (r *SampleRepo) ListSamplesByProfile(ctx context.Context, profileID string) ([]models.Sample, error) {
	rows, err := r.db.Pool.Query(ctx, sampleColumns+` WHERE profile_id=$1 ORDER BY created_at`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list samples by profile: %w", err)
	}
	defer rows.Close()
	return collectSamples(rows)
}

func (r *SampleRepo) ListSamplesByIDs(ctx context.Context, sampleIDs []string) ([]models.Sample, error) {
	if len(sampleIDs) == 0 {
		return []models.Sample{}, nil
	}
	rows, err := r.db.Pool.Query(ctx, sampleColumns+` WHERE sample_id = ANY($1) ORDER BY created_at`, sampleIDs)
	if err != nil {
		return nil, fmt.Errorf("list samples by ids: %w", err)
	}
	defer rows.Close()
	return collectSamples(rows)
}

// SetProfileMembership points exactly the given samples at the profile,
// detaching any previous members not in the set.
func (r *SampleRepo) SetProfileMembership(ctx context.Context, profileID string, sampleIDs []string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin membership tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE samples SET profile_id=NULL, updated_at=NOW() WHERE profile_id=$1 AND NOT (sample_id = ANY($2))`, profileID, sampleIDs); err != nil {
		return fmt.Errorf("detach samples: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE samples SET profile_id=$1, updated_at=NOW() WHERE sample_id = ANY($2)`, profileID, sampleIDs); err != nil {
		return fmt.Errorf("attach samples: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit membership tx: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (models.Sample, error) {
	var s models.Sample
	var analysisJSON []byte
	if err := row.Scan(&s.SampleID, &s.ProfileID, &s.Title, &s.Filename, &s.Text, &s.Excerpt, &analysisJSON, &s.Status, &s.FailReason, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return models.Sample{}, err
	}
	if len(analysisJSON) > 0 {
		var a models.SampleAnalysis
		if err := json.Unmarshal(analysisJSON, &a); err != nil {
			return models.Sample{}, fmt.Errorf("unmarshal sample analysis: %w", err)
		}
		s.Analysis = &a
	}
	return s, nil
}

func collectSamples(rows pgx.Rows) ([]models.Sample, error) {
	out := make([]models.Sample, 0)
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return out, nil
}
