package storage

import (
	"context"
	"fmt"
)

// EnsureSchema brings up the tables and indexes the repos depend on. Kept
// idempotent so a fresh database works without a separate migration step.
func (d *DB) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS style_profiles (
  profile_id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  parameters JSONB,
  genres TEXT[] NOT NULL DEFAULT '{}',
  comparable_authors TEXT[] NOT NULL DEFAULT '{}',
  user_notes TEXT,
  representative_text TEXT[] NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS samples (
  sample_id TEXT PRIMARY KEY,
  profile_id UUID REFERENCES style_profiles(profile_id) ON DELETE SET NULL,
  title TEXT,
  filename TEXT,
  text TEXT NOT NULL DEFAULT '',
  excerpt TEXT,
  analysis JSONB,
  status TEXT NOT NULL CHECK (status IN ('uploaded','processing','analyzed','failed')),
  fail_reason TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tool_calls (
  call_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  tool TEXT NOT NULL,
  profile_id UUID,
  sample_id TEXT,
  status TEXT NOT NULL CHECK (status IN ('ok','failed')),
  error_kind TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_samples_profile ON samples(profile_id, created_at);
CREATE INDEX IF NOT EXISTS idx_samples_text_fts ON samples USING GIN (to_tsvector('english', text));
CREATE INDEX IF NOT EXISTS idx_tool_calls_created ON tool_calls(created_at DESC);
`
	if _, err := d.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
