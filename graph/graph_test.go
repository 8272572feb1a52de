package graph

import (
	"testing"

	"github.com/framersai/capdiscovery/capability"
)

func makeDesc(kind capability.Kind, name, category string, tags, requiredTools []string) capability.Descriptor {
	return capability.Descriptor{
		ID:            capability.DescriptorID(kind, name),
		Kind:          kind,
		Name:          name,
		DisplayName:   name,
		Category:      category,
		Tags:          tags,
		RequiredTools: requiredTools,
		Available:     true,
	}
}

func buildGraph(t *testing.T, descs []capability.Descriptor, presets []Preset) *Graph {
	t.Helper()
	g := New()
	g.Build(descs, presets)
	return g
}

func TestBuild_NodesOnly(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "a", "general", nil, nil),
		makeDesc(capability.KindTool, "b", "other", nil, nil),
	}, nil)

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
}

func TestBuild_DependsOnEdge(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "web-search", "information", []string{"search", "web", "research"}, nil),
		makeDesc(capability.KindSkill, "summarize", "general", nil, []string{"web-search"}),
	}, nil)

	related := g.Related("skill:summarize")
	if len(related) != 1 {
		t.Fatalf("Related returned %d neighbors, want 1", len(related))
	}
	n := related[0]
	if n.ID != "tool:web-search" {
		t.Errorf("neighbor ID = %q, want tool:web-search", n.ID)
	}
	if n.Type != EdgeDependsOn {
		t.Errorf("neighbor type = %q, want DEPENDS_ON", n.Type)
	}
	if n.Weight != 1.0 {
		t.Errorf("neighbor weight = %v, want 1.0", n.Weight)
	}
}

func TestBuild_DependsOnMissingToolNoEdge(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindSkill, "summarize", "general", nil, []string{"nonexistent"}),
	}, nil)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 for missing dependency target", g.EdgeCount())
	}
}

func TestBuild_PresetComposedWith(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "a", "x", nil, nil),
		makeDesc(capability.KindTool, "b", "y", nil, nil),
		makeDesc(capability.KindTool, "c", "z", nil, nil),
	}, []Preset{{Name: "research", Members: []string{"tool:a", "tool:b", "tool:ghost"}}})

	related := g.Related("tool:a")
	if len(related) != 1 {
		t.Fatalf("Related returned %d neighbors, want 1", len(related))
	}
	if related[0].ID != "tool:b" || related[0].Type != EdgeComposedWith || related[0].Weight != 0.5 {
		t.Errorf("unexpected neighbor %+v", related[0])
	}
	if len(g.Related("tool:c")) != 0 {
		t.Errorf("tool:c should have no neighbors")
	}
}

func TestBuild_TagOverlapWeight(t *testing.T) {
	// Exactly k shared tags and no other signal => TAGGED_WITH, 0.3k.
	for _, k := range []int{2, 3, 4} {
		tags := []string{"alpha", "beta", "gamma", "delta"}[:k]
		g := buildGraph(t, []capability.Descriptor{
			makeDesc(capability.KindTool, "a", "x", append([]string{"only-a"}, tags...), nil),
			makeDesc(capability.KindSkill, "b", "y", append([]string{"only-b"}, tags...), nil),
		}, nil)

		related := g.Related("tool:a")
		if len(related) != 1 {
			t.Fatalf("k=%d: got %d neighbors, want 1", k, len(related))
		}
		if related[0].Type != EdgeTaggedWith {
			t.Errorf("k=%d: type = %q, want TAGGED_WITH", k, related[0].Type)
		}
		want := 0.3 * float64(k)
		if diff := related[0].Weight - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("k=%d: weight = %v, want %v", k, related[0].Weight, want)
		}
	}
}

func TestBuild_SingleSharedTagNoEdge(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "a", "x", []string{"shared", "a1"}, nil),
		makeDesc(capability.KindSkill, "b", "y", []string{"shared", "b1"}, nil),
	}, nil)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 for single shared tag", g.EdgeCount())
	}
}

func TestBuild_CategoryGroupBounds(t *testing.T) {
	cases := []struct {
		n         int
		wantEdges int
	}{
		{1, 0},
		{2, 1},
		{8, 28}, // C(8,2)
		{9, 0},  // oversized groups are skipped
	}
	for _, tc := range cases {
		descs := make([]capability.Descriptor, tc.n)
		for i := range descs {
			descs[i] = makeDesc(capability.KindTool, string(rune('a'+i)), "shared", nil, nil)
		}
		g := buildGraph(t, descs, nil)
		if g.EdgeCount() != tc.wantEdges {
			t.Errorf("n=%d: EdgeCount = %d, want %d", tc.n, g.EdgeCount(), tc.wantEdges)
		}
	}
}

func TestBuild_CategoryGroupSplitsByKind(t *testing.T) {
	// Same category, different kinds: no SAME_CATEGORY edge.
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "a", "shared", nil, nil),
		makeDesc(capability.KindSkill, "b", "shared", nil, nil),
	}, nil)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 across kinds", g.EdgeCount())
	}
}

func TestBuild_NoSelfEdgesNoDuplicates(t *testing.T) {
	// A pair related by every signal at once must end up with exactly
	// one edge, and a tool depending on itself must not self-link.
	self := makeDesc(capability.KindTool, "self", "x", nil, []string{"self"})
	a := makeDesc(capability.KindTool, "a", "cat", []string{"t1", "t2"}, []string{"b"})
	b := makeDesc(capability.KindTool, "b", "cat", []string{"t1", "t2"}, nil)

	g := buildGraph(t, []capability.Descriptor{self, a, b},
		[]Preset{{Name: "p", Members: []string{"tool:a", "tool:b", "tool:a"}}})

	if len(g.Related("tool:self")) != 0 {
		t.Errorf("self-edge created: %+v", g.Related("tool:self"))
	}

	related := g.Related("tool:a")
	if len(related) != 1 {
		t.Fatalf("tool:a has %d neighbors, want 1 (deduplicated)", len(related))
	}
	// DEPENDS_ON (1.0) outweighs COMPOSED_WITH (0.5), TAGGED_WITH
	// (0.6), and SAME_CATEGORY (0.1).
	if related[0].Type != EdgeDependsOn || related[0].Weight != 1.0 {
		t.Errorf("surviving edge = %+v, want DEPENDS_ON weight 1.0", related[0])
	}
}

func TestBuild_UpsertKeepsHigherWeight(t *testing.T) {
	// Three shared tags (0.9) beat COMPOSED_WITH (0.5).
	a := makeDesc(capability.KindTool, "a", "x", []string{"t1", "t2", "t3"}, nil)
	b := makeDesc(capability.KindSkill, "b", "y", []string{"t1", "t2", "t3"}, nil)

	g := buildGraph(t, []capability.Descriptor{a, b},
		[]Preset{{Name: "p", Members: []string{"tool:a", "skill:b"}}})

	related := g.Related("tool:a")
	if len(related) != 1 {
		t.Fatalf("got %d neighbors, want 1", len(related))
	}
	if related[0].Type != EdgeTaggedWith {
		t.Errorf("type = %q, want TAGGED_WITH to survive over COMPOSED_WITH", related[0].Type)
	}
	if diff := related[0].Weight - 0.9; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("weight = %v, want 0.9", related[0].Weight)
	}
}

func TestBuild_ClearsPriorState(t *testing.T) {
	g := buildGraph(t, []capability.Descriptor{
		makeDesc(capability.KindTool, "a", "cat", nil, nil),
		makeDesc(capability.KindTool, "b", "cat", nil, nil),
	}, nil)
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1", g.EdgeCount())
	}

	g.Build([]capability.Descriptor{makeDesc(capability.KindTool, "c", "cat", nil, nil)}, nil)
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("after rebuild: nodes=%d edges=%d, want 1/0", g.NodeCount(), g.EdgeCount())
	}
	if len(g.Related("tool:a")) != 0 {
		t.Errorf("stale neighbors survived rebuild")
	}
}

func TestRelated_UnknownID(t *testing.T) {
	g := New()
	if got := g.Related("tool:ghost"); len(got) != 0 {
		t.Errorf("Related(unknown) = %v, want empty", got)
	}
}

func TestRelated_SortedByWeight(t *testing.T) {
	hub := makeDesc(capability.KindSkill, "hub", "x", []string{"t1", "t2"}, []string{"strong"})
	strong := makeDesc(capability.KindTool, "strong", "y", nil, nil)
	weak := makeDesc(capability.KindTool, "weak", "z", []string{"t1", "t2"}, nil)

	g := buildGraph(t, []capability.Descriptor{hub, strong, weak}, nil)

	related := g.Related("skill:hub")
	if len(related) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(related))
	}
	if related[0].ID != "tool:strong" || related[1].ID != "tool:weak" {
		t.Errorf("neighbors not sorted by weight: %+v", related)
	}
}

func TestSubgraph_InducedAndDeduplicated(t *testing.T) {
	a := makeDesc(capability.KindTool, "a", "cat", nil, nil)
	b := makeDesc(capability.KindTool, "b", "cat", nil, nil)
	c := makeDesc(capability.KindTool, "c", "cat", nil, nil)

	g := buildGraph(t, []capability.Descriptor{a, b, c}, nil)

	nodes, edges := g.Subgraph([]string{"tool:a", "tool:b", "tool:ghost"})
	if len(nodes) != 2 {
		t.Fatalf("nodes = %v, want [tool:a tool:b]", nodes)
	}
	if len(edges) != 1 {
		t.Fatalf("edges = %v, want exactly 1 induced edge", edges)
	}
	e := edges[0]
	if e.Source != "tool:a" || e.Target != "tool:b" || e.Type != EdgeSameCategory {
		t.Errorf("unexpected edge %+v", e)
	}
}

func TestSubgraph_Empty(t *testing.T) {
	g := New()
	nodes, edges := g.Subgraph([]string{"tool:ghost"})
	if len(nodes) != 0 || len(edges) != 0 {
		t.Errorf("Subgraph of unknown IDs = %v/%v, want empty", nodes, edges)
	}
}
