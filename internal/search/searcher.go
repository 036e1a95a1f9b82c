package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"inkflow/internal/models"
)

type Searcher struct {
	q Queryer
}

type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func NewSearcher(q Queryer) *Searcher {
	return &Searcher{q: q}
}

// SearchSamples ranks a profile's member samples against a plain-language
// query with Postgres full-text search, returning snippet-sized excerpts.
// An empty query degrades to most-recent members so prompt packaging always
// has exemplars to fall back on.
func (s *Searcher) SearchSamples(ctx context.Context, profileID, query string, topK int) ([]models.ExampleExcerpt, error) {
	if topK <= 0 {
		topK = 3
	}
	query = strings.TrimSpace(query)

	var (
		rows pgx.Rows
		err  error
	)
	if query == "" {
		rows, err = s.q.Query(ctx, `
SELECT sample_id, COALESCE(title,''), LEFT(text, 420) AS snippet, 0::float8 AS score
FROM samples
WHERE profile_id = $1 AND status = 'analyzed'
ORDER BY created_at DESC
LIMIT $2`, profileID, topK)
	} else {
		rows, err = s.q.Query(ctx, `
SELECT sample_id, COALESCE(title,''), LEFT(text, 420) AS snippet,
       ts_rank(to_tsvector('english', text), plainto_tsquery('english', $2)) AS score
FROM samples
WHERE profile_id = $1 AND status = 'analyzed'
  AND to_tsvector('english', text) @@ plainto_tsquery('english', $2)
ORDER BY score DESC
LIMIT $3`, profileID, query, topK)
	}
	if err != nil {
		return nil, fmt.Errorf("query sample search: %w", err)
	}
	defer rows.Close()

	results := make([]models.ExampleExcerpt, 0, topK)
	for rows.Next() {
		var e models.ExampleExcerpt
		if err := rows.Scan(&e.SampleID, &e.Title, &e.Snippet, &e.Score); err != nil {
			return nil, fmt.Errorf("scan sample excerpt: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return results, nil
}
