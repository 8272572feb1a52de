package index

import (
	"context"
	"testing"

	"github.com/framersai/capdiscovery/capability"
)

// Without an embedding provider the index falls back to lexical
// matching over the same embedding-texts.

func newLexicalIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ix
}

func TestLexicalFallback_Search(t *testing.T) {
	ix := newLexicalIndex(t)
	ctx := context.Background()
	if err := ix.Build(ctx, testDescriptors()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := ix.Search(ctx, "search web information", 5, Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatalf("no lexical hits")
	}
	if hits[0].Descriptor.ID != "tool:web-search" {
		t.Errorf("top lexical hit = %s, want tool:web-search", hits[0].Descriptor.ID)
	}
}

func TestLexicalFallback_FiltersApplied(t *testing.T) {
	ix := newLexicalIndex(t)
	ctx := context.Background()
	if err := ix.Build(ctx, testDescriptors()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := ix.Search(ctx, "summarize documents", 5, Filters{OnlyAvailable: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, h := range hits {
		if !h.Descriptor.Available {
			t.Errorf("unavailable capability %s leaked through filter", h.Descriptor.ID)
		}
	}
}

func TestLexicalFallback_RemoveDropsDoc(t *testing.T) {
	ix := newLexicalIndex(t)
	ctx := context.Background()
	if err := ix.Build(ctx, testDescriptors()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := ix.Remove(ctx, "tool:web-search"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	hits, err := ix.Search(ctx, "search web information", 5, Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, h := range hits {
		if h.Descriptor.ID == "tool:web-search" {
			t.Errorf("removed capability still retrievable")
		}
	}
}

func TestLexicalFallback_NoMatches(t *testing.T) {
	ix := newLexicalIndex(t)
	ctx := context.Background()
	if err := ix.Build(ctx, []capability.Descriptor{testDescriptors()[0]}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := ix.Search(ctx, "zzzzqqqq", 5, Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits for nonsense query", len(hits))
	}
}
