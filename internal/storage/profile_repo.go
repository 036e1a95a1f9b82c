package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"inkflow/internal/models"
)

type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) UpsertProfile(ctx context.Context, p models.StyleProfile) error {
	var paramsJSON []byte
	if p.Parameters != nil {
		b, err := json.Marshal(p.Parameters)
		if err != nil {
			return fmt.Errorf("marshal style parameters: %w", err)
		}
		paramsJSON = b
	}
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO style_profiles (profile_id, name, description, parameters, genres, comparable_authors, user_notes, representative_text)
VALUES ($1, $2, NULLIF($3,''), $4, $5, $6, NULLIF($7,''), $8)
ON CONFLICT (profile_id)
DO UPDATE SET
  name = EXCLUDED.name,
  description = COALESCE(EXCLUDED.description, style_profiles.description),
  parameters = COALESCE(EXCLUDED.parameters, style_profiles.parameters),
  genres = EXCLUDED.genres,
  comparable_authors = EXCLUDED.comparable_authors,
  user_notes = COALESCE(EXCLUDED.user_notes, style_profiles.user_notes),
  representative_text = EXCLUDED.representative_text,
  updated_at = NOW()`,
		p.ProfileID, p.Name, p.Description, paramsJSON, p.Genres, p.ComparableAuthors, p.UserNotes, p.RepresentativeText,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) UpdateParameters(ctx context.Context, profileID string, params models.StyleParameters) error {
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal style parameters: %w", err)
	}
	ct, err := r.db.Pool.Exec(ctx, `UPDATE style_profiles SET parameters=$2, updated_at=NOW() WHERE profile_id=$1`, profileID, b)
	if err != nil {
		return fmt.Errorf("update style parameters: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}
	return nil
}

const profileColumns = `
SELECT p.profile_id::text, p.name, COALESCE(p.description,''), p.parameters,
       COALESCE(p.genres,'{}'), COALESCE(p.comparable_authors,'{}'), COALESCE(p.user_notes,''),
       COALESCE(p.representative_text,'{}'), p.created_at, p.updated_at
FROM style_profiles p`

func (r *ProfileRepo) GetProfile(ctx context.Context, profileID string) (models.StyleProfile, error) {
	row := r.db.Pool.QueryRow(ctx, profileColumns+` WHERE p.profile_id=$1`, profileID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.StyleProfile{}, fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
		}
		return models.StyleProfile{}, fmt.Errorf("get profile: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `SELECT sample_id FROM samples WHERE profile_id=$1 ORDER BY created_at`, profileID)
	if err != nil {
		return models.StyleProfile{}, fmt.Errorf("list profile members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return models.StyleProfile{}, fmt.Errorf("scan member id: %w", err)
		}
		p.SampleIDs = append(p.SampleIDs, id)
	}
	if err := rows.Err(); err != nil {
		return models.StyleProfile{}, fmt.Errorf("iterate member ids: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) ListProfiles(ctx context.Context) ([]models.StyleProfile, error) {
	rows, err := r.db.Pool.Query(ctx, profileColumns+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := make([]models.StyleProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

func (r *ProfileRepo) DeleteProfile(ctx context.Context, profileID string) error {
	ct, err := r.db.Pool.Exec(ctx, `DELETE FROM style_profiles WHERE profile_id=$1`, profileID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}
	return nil
}

func scanProfile(row rowScanner) (models.StyleProfile, error) {
	var p models.StyleProfile
	var paramsJSON []byte
	if err := row.Scan(&p.ProfileID, &p.Name, &p.Description, &paramsJSON, &p.Genres, &p.ComparableAuthors, &p.UserNotes, &p.RepresentativeText, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.StyleProfile{}, err
	}
	if len(paramsJSON) > 0 {
		var params models.StyleParameters
		if err := json.Unmarshal(paramsJSON, &params); err != nil {
			return models.StyleProfile{}, fmt.Errorf("unmarshal style parameters: %w", err)
		}
		p.Parameters = &params
	}
	return p, nil
}
