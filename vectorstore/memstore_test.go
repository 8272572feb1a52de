package vectorstore

import (
	"context"
	"errors"
	"testing"
)

func newTestStore(t *testing.T, dimension int, docs []Document) *MemStore {
	t.Helper()
	s := NewMemStore()
	ctx := context.Background()
	if err := s.CreateCollection(ctx, "test", dimension); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if len(docs) > 0 {
		if err := s.Upsert(ctx, "test", docs); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	return s
}

func TestCreateCollection_Validation(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if err := s.CreateCollection(ctx, "c", 0); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero dimension: got %v, want ErrInvalidDimension", err)
	}
	if err := s.CreateCollection(ctx, "c", 3); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := s.CreateCollection(ctx, "c", 3); !errors.Is(err, ErrCollectionExists) {
		t.Errorf("duplicate: got %v, want ErrCollectionExists", err)
	}

	exists, err := s.CollectionExists(ctx, "c")
	if err != nil || !exists {
		t.Errorf("CollectionExists = %v, %v", exists, err)
	}
	exists, _ = s.CollectionExists(ctx, "missing")
	if exists {
		t.Errorf("missing collection reported as existing")
	}
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	s := newTestStore(t, 3, nil)
	err := s.Upsert(context.Background(), "test", []Document{
		{ID: "a", Embedding: []float32{1, 0}},
	})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestUpsert_UnknownCollection(t *testing.T) {
	s := NewMemStore()
	err := s.Upsert(context.Background(), "nope", []Document{{ID: "a", Embedding: []float32{1}}})
	if !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("got %v, want ErrCollectionNotFound", err)
	}
}

func TestQuery_CosineRanking(t *testing.T) {
	s := newTestStore(t, 2, []Document{
		{ID: "east", Embedding: []float32{1, 0}},
		{ID: "north", Embedding: []float32{0, 1}},
		{ID: "northeast", Embedding: []float32{1, 1}},
	})

	matches, err := s.Query(context.Background(), "test", []float32{1, 0}, QueryOptions{TopK: 3})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	if matches[0].ID != "east" || matches[1].ID != "northeast" || matches[2].ID != "north" {
		t.Errorf("ranking = [%s %s %s], want [east northeast north]",
			matches[0].ID, matches[1].ID, matches[2].ID)
	}
	if matches[0].Score < 0.999 {
		t.Errorf("identical direction score = %v, want ~1", matches[0].Score)
	}
}

func TestQuery_TieBreaksOnID(t *testing.T) {
	s := newTestStore(t, 2, []Document{
		{ID: "b", Embedding: []float32{1, 0}},
		{ID: "a", Embedding: []float32{2, 0}}, // same direction, same cosine
	})

	matches, err := s.Query(context.Background(), "test", []float32{1, 0}, QueryOptions{TopK: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if matches[0].ID != "a" || matches[1].ID != "b" {
		t.Errorf("tie order = [%s %s], want [a b]", matches[0].ID, matches[1].ID)
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	s := newTestStore(t, 3, nil)
	_, err := s.Query(context.Background(), "test", []float32{1, 0}, QueryOptions{})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestQuery_TopKAndMetadata(t *testing.T) {
	s := newTestStore(t, 1, []Document{
		{ID: "a", Embedding: []float32{1}, Metadata: map[string]any{"kind": "tool"}},
		{ID: "b", Embedding: []float32{1}, Metadata: map[string]any{"kind": "skill"}},
		{ID: "c", Embedding: []float32{1}},
	})
	ctx := context.Background()

	matches, err := s.Query(ctx, "test", []float32{1}, QueryOptions{TopK: 2, IncludeMetadata: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("TopK not applied: got %d matches", len(matches))
	}
	if matches[0].Metadata["kind"] != "tool" {
		t.Errorf("metadata not included: %+v", matches[0])
	}

	matches, _ = s.Query(ctx, "test", []float32{1}, QueryOptions{TopK: 3})
	if matches[0].Metadata != nil {
		t.Errorf("metadata included without IncludeMetadata")
	}
}

func TestDelete_RemovesAndIgnoresUnknown(t *testing.T) {
	s := newTestStore(t, 1, []Document{
		{ID: "a", Embedding: []float32{1}},
		{ID: "b", Embedding: []float32{1}},
	})
	ctx := context.Background()

	if err := s.Delete(ctx, "test", []string{"a", "ghost"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	matches, _ := s.Query(ctx, "test", []float32{1}, QueryOptions{TopK: 10})
	if len(matches) != 1 || matches[0].ID != "b" {
		t.Errorf("after delete: %+v", matches)
	}
}

func TestUpsert_ReplacesByID(t *testing.T) {
	s := newTestStore(t, 2, []Document{{ID: "a", Embedding: []float32{1, 0}, TextContent: "old"}})
	ctx := context.Background()

	if err := s.Upsert(ctx, "test", []Document{{ID: "a", Embedding: []float32{0, 1}, TextContent: "new"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	matches, _ := s.Query(ctx, "test", []float32{0, 1}, QueryOptions{TopK: 1})
	if len(matches) != 1 || matches[0].TextContent != "new" || matches[0].Score < 0.999 {
		t.Errorf("replaced doc not observed: %+v", matches)
	}
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero vector similarity = %v, want 0", got)
	}
}
