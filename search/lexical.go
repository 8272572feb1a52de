package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Doc is one lexical index entry.
type Doc struct {
	ID   string
	Text string
}

// Hit is one lexical search result.
type Hit struct {
	ID    string
	Score float64
}

type indexedDoc struct {
	Text string `json:"text"`
}

// LexicalIndex is an in-memory bleve index over capability
// embedding-texts. It is safe for concurrent use.
type LexicalIndex struct {
	mu          sync.RWMutex
	idx         bleve.Index
	fingerprint string
}

// NewLexicalIndex returns an empty lexical index.
func NewLexicalIndex() (*LexicalIndex, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &LexicalIndex{idx: idx}, nil
}

// Sync replaces the index contents with the given documents. When the
// document fingerprint matches the last sync, the rebuild is skipped.
func (l *LexicalIndex) Sync(docs []Doc) error {
	fp := computeFingerprint(docs)

	l.mu.Lock()
	defer l.mu.Unlock()
	if fp == l.fingerprint {
		return nil
	}

	fresh, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("creating bleve index: %w", err)
	}
	batch := fresh.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, indexedDoc{Text: doc.Text}); err != nil {
			return fmt.Errorf("indexing %s: %w", doc.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		return fmt.Errorf("applying index batch: %w", err)
	}

	old := l.idx
	l.idx = fresh
	l.fingerprint = fp
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Upsert indexes or replaces a single document.
func (l *LexicalIndex) Upsert(doc Doc) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fingerprint = ""
	return l.idx.Index(doc.ID, indexedDoc{Text: doc.Text})
}

// Delete removes a document. Unknown IDs are a no-op.
func (l *LexicalIndex) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fingerprint = ""
	return l.idx.Delete(id)
}

// Search runs a match query and returns hits by descending bleve
// score.
func (l *LexicalIndex) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, nil
	}

	l.mu.RLock()
	idx := l.idx
	l.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	res, err := idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}
	return hits, nil
}
