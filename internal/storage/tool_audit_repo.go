package storage

import (
	"context"
	"fmt"
)

type ToolCallRecord struct {
	CallID    string
	Tool      string
	ProfileID string
	SampleID  string
	Status    string
	ErrorKind string
}

type ToolAuditRepo struct {
	db *DB
}

func NewToolAuditRepo(db *DB) *ToolAuditRepo {
	return &ToolAuditRepo{db: db}
}

func (r *ToolAuditRepo) Insert(ctx context.Context, rec ToolCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO tool_calls(call_id, tool, profile_id, sample_id, status, error_kind)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, NULLIF($3,'')::uuid, NULLIF($4,''), $5, NULLIF($6,''))`,
		rec.CallID, rec.Tool, rec.ProfileID, rec.SampleID, rec.Status, rec.ErrorKind)
	if err != nil {
		return fmt.Errorf("insert tool call: %w", err)
	}
	return nil
}
