package graph

import (
	"sort"
	"strings"

	"github.com/framersai/capdiscovery/capability"
)

// EdgeType is the reason two capabilities are related.
type EdgeType string

const (
	EdgeDependsOn    EdgeType = "DEPENDS_ON"
	EdgeComposedWith EdgeType = "COMPOSED_WITH"
	EdgeTaggedWith   EdgeType = "TAGGED_WITH"
	EdgeSameCategory EdgeType = "SAME_CATEGORY"
)

// Signal weights, strongest first.
const (
	weightDependsOn    = 1.0
	weightComposedWith = 0.5
	weightTagOverlap   = 0.3

	weightSameCategory = 0.1

	// minTagOverlap is the shared-tag count below which no edge is
	// created.
	minTagOverlap = 2

	// maxCategoryGroup caps same-category groups; larger groups are
	// skipped to avoid near-complete-graph blowup.
	maxCategoryGroup = 8
)

// structural reports whether the edge type may recruit new candidates
// during re-ranking.
func structural(t EdgeType) bool {
	return t == EdgeDependsOn || t == EdgeComposedWith
}

// Edge is one undirected relationship between two capabilities.
type Edge struct {
	Source string
	Target string
	Type   EdgeType
	Weight float64
}

// Neighbor is a one-hop adjacency entry returned by [Graph.Related].
type Neighbor struct {
	ID     string
	Weight float64
	Type   EdgeType
}

// Preset is an external co-occurrence hint: a named grouping of
// capability IDs that are used together (e.g. an agent preset). It is
// consumed only during [Graph.Build] to seed COMPOSED_WITH edges.
type Preset struct {
	Name    string
	Members []string
}

type edgeAttr struct {
	typ    EdgeType
	weight float64
}

// Graph is an undirected, weighted, simple relationship graph over
// capability IDs, stored as an adjacency map. The zero value is not
// usable; call [New].
type Graph struct {
	nodes map[string]struct{}
	adj   map[string]map[string]edgeAttr
	edges int
}

// New returns an empty graph.
func New() *Graph {
	g := &Graph{}
	g.reset()
	return g
}

func (g *Graph) reset() {
	g.nodes = make(map[string]struct{})
	g.adj = make(map[string]map[string]edgeAttr)
	g.edges = 0
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// HasNode reports whether the capability ID is a graph node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// upsert adds an undirected edge, keeping the strictly higher-weight
// signal when the pair is already connected. Self-edges are dropped.
func (g *Graph) upsert(a, b string, typ EdgeType, weight float64) {
	if a == b {
		return
	}
	existing, ok := g.adj[a][b]
	if ok && weight <= existing.weight {
		return
	}
	if !ok {
		g.edges++
	}
	attr := edgeAttr{typ: typ, weight: weight}
	if g.adj[a] == nil {
		g.adj[a] = make(map[string]edgeAttr)
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[string]edgeAttr)
	}
	g.adj[a][b] = attr
	g.adj[b][a] = attr
}

// Build rebuilds the graph from scratch over one descriptor snapshot.
// Prior state is discarded. The five passes run in a fixed order so
// the tie-break rule (ties keep the earlier signal) is deterministic.
func (g *Graph) Build(descs []capability.Descriptor, presets []Preset) {
	g.reset()

	// Pass 1: every descriptor is a node.
	for _, d := range descs {
		g.nodes[d.ID] = struct{}{}
	}

	// Pass 2: required-tool dependencies.
	for _, d := range descs {
		for _, tool := range d.RequiredTools {
			target := capability.DescriptorID(capability.KindTool, tool)
			if g.HasNode(target) {
				g.upsert(d.ID, target, EdgeDependsOn, weightDependsOn)
			}
		}
	}

	// Pass 3: preset co-occurrence.
	for _, preset := range presets {
		members := g.filterNodes(preset.Members)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				g.upsert(members[i], members[j], EdgeComposedWith, weightComposedWith)
			}
		}
	}

	// Pass 4: tag overlap. Pairs sharing >= minTagOverlap tags get an
	// edge weighted by the overlap count.
	g.buildTagEdges(descs)

	// Pass 5: shared (kind, category) groups of bounded size.
	g.buildCategoryEdges(descs)
}

// filterNodes returns the members that exist as nodes, deduplicated,
// preserving order.
func (g *Graph) filterNodes(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !g.HasNode(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (g *Graph) buildTagEdges(descs []capability.Descriptor) {
	byTag := make(map[string][]string)
	for _, d := range descs {
		seen := make(map[string]struct{}, len(d.Tags))
		for _, tag := range d.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			byTag[tag] = append(byTag[tag], d.ID)
		}
	}

	overlap := make(map[[2]string]int)
	for _, ids := range byTag {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				overlap[pairKey(ids[i], ids[j])]++
			}
		}
	}

	pairs := make([][2]string, 0, len(overlap))
	for pair, count := range overlap {
		if count >= minTagOverlap {
			pairs = append(pairs, pair)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	for _, pair := range pairs {
		count := overlap[pair]
		g.upsert(pair[0], pair[1], EdgeTaggedWith, weightTagOverlap*float64(count))
	}
}

func (g *Graph) buildCategoryEdges(descs []capability.Descriptor) {
	groups := make(map[string][]string)
	order := make([]string, 0)
	for _, d := range descs {
		key := string(d.Kind) + "\x00" + d.Category
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], d.ID)
	}

	for _, key := range order {
		ids := groups[key]
		if len(ids) < 2 || len(ids) > maxCategoryGroup {
			continue
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				g.upsert(ids[i], ids[j], EdgeSameCategory, weightSameCategory)
			}
		}
	}
}

func pairKey(a, b string) [2]string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Related returns the one-hop neighbors of a capability sorted by
// weight descending, ID ascending. Unknown IDs yield an empty slice,
// not an error.
func (g *Graph) Related(id string) []Neighbor {
	attrs := g.adj[id]
	if len(attrs) == 0 {
		return nil
	}
	neighbors := make([]Neighbor, 0, len(attrs))
	for nid, attr := range attrs {
		neighbors = append(neighbors, Neighbor{ID: nid, Weight: attr.weight, Type: attr.typ})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Weight != neighbors[j].Weight {
			return neighbors[i].Weight > neighbors[j].Weight
		}
		return neighbors[i].ID < neighbors[j].ID
	})
	return neighbors
}

// Subgraph returns the subgraph induced by the given IDs: the
// intersection of the IDs with existing nodes, and every edge whose
// both endpoints are in that set, deduplicated by unordered pair.
// Nodes are sorted; edges are sorted by (source, target) with
// source < target.
func (g *Graph) Subgraph(ids []string) ([]string, []Edge) {
	nodes := g.filterNodes(ids)
	sort.Strings(nodes)

	inSet := make(map[string]struct{}, len(nodes))
	for _, id := range nodes {
		inSet[id] = struct{}{}
	}

	var edges []Edge
	for _, a := range nodes {
		for b, attr := range g.adj[a] {
			if _, ok := inSet[b]; !ok {
				continue
			}
			if a >= b {
				// Each unordered pair is emitted once, from its
				// lexically smaller endpoint.
				continue
			}
			edges = append(edges, Edge{Source: a, Target: b, Type: attr.typ, Weight: attr.weight})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return nodes, edges
}
