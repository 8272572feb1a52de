package graph

import "sort"

// Scored is one entry in a relevance-ranked result set.
type Scored struct {
	ID    string
	Score float64
	// Boosted marks entries whose score was adjusted, or that were
	// recruited, by graph diffusion.
	Boosted bool
}

type rerankEntry struct {
	score   float64
	boosted bool
}

// Rerank diffuses relevance scores across graph edges.
//
// For every input result, each graph neighbor already present in the
// result set gains boostFactor x edgeWeight, and both sides are marked
// boosted (mutual reinforcement between co-retrieved, related
// capabilities). A neighbor missing from the result set is recruited
// as a new candidate, with score originalScore x boostFactor x
// edgeWeight, only when the connecting edge is structural (DEPENDS_ON
// or COMPOSED_WITH); the weak signals reinforce but never recruit.
//
// Recruited candidates can be reinforced by later input results but do
// not themselves diffuse. Output is sorted by final score descending,
// ID ascending.
func (g *Graph) Rerank(results []Scored, boostFactor float64) []Scored {
	entries := make(map[string]*rerankEntry, len(results))
	order := make([]string, 0, len(results))
	for _, r := range results {
		if _, dup := entries[r.ID]; dup {
			continue
		}
		entries[r.ID] = &rerankEntry{score: r.Score, boosted: r.Boosted}
		order = append(order, r.ID)
	}

	for _, r := range results {
		self, ok := entries[r.ID]
		if !ok {
			continue
		}
		for _, n := range g.Related(r.ID) {
			if other, present := entries[n.ID]; present {
				if n.ID == r.ID {
					continue
				}
				other.score += boostFactor * n.Weight
				other.boosted = true
				self.boosted = true
				continue
			}
			if structural(n.Type) {
				entries[n.ID] = &rerankEntry{
					score:   r.Score * boostFactor * n.Weight,
					boosted: true,
				}
				order = append(order, n.ID)
			}
		}
	}

	out := make([]Scored, 0, len(order))
	for _, id := range order {
		e := entries[id]
		out = append(out, Scored{ID: id, Score: e.score, Boosted: e.boosted})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}
