package analysis

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"inkflow/internal/models"
	"inkflow/internal/util"
)

// Analyzer memoizes AnalyzeText behind an LRU keyed by the SHA-256 of the
// text. Analysis is deterministic, so a cached bundle is always identical to
// a fresh one; re-submitting the same sample costs a map lookup.
type Analyzer struct {
	cache *lru.Cache[string, models.SampleAnalysis]
}

func NewAnalyzer(cacheSize int) (*Analyzer, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, models.SampleAnalysis](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cache: cache}, nil
}

func (a *Analyzer) Analyze(text string) models.SampleAnalysis {
	key := util.SHA256Hex([]byte(text))
	if cached, ok := a.cache.Get(key); ok {
		return cached
	}
	out := AnalyzeText(text)
	a.cache.Add(key, out)
	return out
}
