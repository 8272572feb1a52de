package assemble

import (
	"sort"
	"time"

	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/capdoc"
)

// charsPerToken is the fixed character-per-token approximation applied
// to each tier's concatenated text.
const charsPerToken = 4

// EstimateTokens approximates the prompt-token cost of a text.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// Config holds the per-tier budgets and limits.
type Config struct {
	// Tier1MinRelevance drops candidates scoring below it before any
	// packing.
	Tier1MinRelevance float64

	// Tier1TopK and Tier1TokenBudget bound the summary tier.
	Tier1TopK        int
	Tier1TokenBudget int

	// Tier2TopK and Tier2TokenBudget bound the detail tier. Tier-2
	// candidates are drawn from the accepted tier-1 list, not the raw
	// candidate list.
	Tier2TopK        int
	Tier2TokenBudget int
}

// ScoredCapability is one ranked candidate entering assembly.
type ScoredCapability struct {
	Descriptor capability.Descriptor
	Score      float64
	Boosted    bool
}

// Tier1Entry is one accepted summary-tier entry.
type Tier1Entry struct {
	Capability     capability.Descriptor
	RelevanceScore float64
	SummaryText    string
}

// Tier2Entry is one accepted detail-tier entry.
type Tier2Entry struct {
	Capability capability.Descriptor
	FullText   string
}

// TokenEstimate is the per-tier and total token accounting.
type TokenEstimate struct {
	Tier0Tokens int
	Tier1Tokens int
	Tier2Tokens int
	TotalTokens int
}

// Diagnostics carries timing and count information for one discovery
// call.
type Diagnostics struct {
	// CandidatesScanned is the size of the scored-result input,
	// before relevance filtering.
	CandidatesScanned int

	// CapabilitiesRetrieved is the tier-1 entry count.
	CapabilitiesRetrieved int

	QueryTimeMs          float64
	EmbeddingTimeMs      float64
	GraphTraversalTimeMs float64
}

// Timings carries caller-measured stage durations into assembly
// diagnostics.
type Timings struct {
	EmbeddingMs      float64
	GraphTraversalMs float64
}

// Result is the discovery output: the three tiers with their token and
// diagnostic accounting. It is a pure value, recomputed per call.
type Result struct {
	Tier0         string
	Tier1         []Tier1Entry
	Tier2         []Tier2Entry
	TokenEstimate TokenEstimate
	Diagnostics   Diagnostics
}

// Assemble applies relevance filtering, per-tier token budgets, and
// top-K limits to produce the final three-tier result.
func Assemble(tier0 string, results []ScoredCapability, cfg Config, timings *Timings) Result {
	start := time.Now()

	candidates := make([]ScoredCapability, 0, len(results))
	for _, r := range results {
		if r.Score >= cfg.Tier1MinRelevance {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	tier1, tier1Text := packTier1(candidates, cfg)
	tier2, tier2Text := packTier2(tier1, cfg)

	estimate := TokenEstimate{
		Tier0Tokens: EstimateTokens(tier0),
		Tier1Tokens: EstimateTokens(tier1Text),
		Tier2Tokens: EstimateTokens(tier2Text),
	}
	estimate.TotalTokens = estimate.Tier0Tokens + estimate.Tier1Tokens + estimate.Tier2Tokens

	diag := Diagnostics{
		CandidatesScanned:     len(results),
		CapabilitiesRetrieved: len(tier1),
		QueryTimeMs:           float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if timings != nil {
		diag.EmbeddingTimeMs = timings.EmbeddingMs
		diag.GraphTraversalTimeMs = timings.GraphTraversalMs
	}

	return Result{
		Tier0:         tier0,
		Tier1:         tier1,
		Tier2:         tier2,
		TokenEstimate: estimate,
		Diagnostics:   diag,
	}
}

// packTier1 accepts candidates in relevance order until the top-K
// limit is reached or the next summary would push the tier's
// concatenated text over budget. The first overflow stops packing.
func packTier1(candidates []ScoredCapability, cfg Config) ([]Tier1Entry, string) {
	entries := make([]Tier1Entry, 0, cfg.Tier1TopK)
	text := ""
	for _, c := range candidates {
		if len(entries) >= cfg.Tier1TopK {
			break
		}
		summary := capdoc.Summary(c.Descriptor)
		next := summary
		if text != "" {
			next = text + "\n" + summary
		}
		if EstimateTokens(next) > cfg.Tier1TokenBudget {
			break
		}
		text = next
		entries = append(entries, Tier1Entry{
			Capability:     c.Descriptor,
			RelevanceScore: c.Score,
			SummaryText:    summary,
		})
	}
	return entries, text
}

// packTier2 expands the top tier-1 entries under the tier-2 budget.
// Unlike tier 1, an overflowing candidate is skipped rather than
// stopping the pass, so a later, smaller document can still fit.
func packTier2(tier1 []Tier1Entry, cfg Config) ([]Tier2Entry, string) {
	limit := cfg.Tier2TopK
	if limit > len(tier1) {
		limit = len(tier1)
	}
	if limit <= 0 {
		return nil, ""
	}

	entries := make([]Tier2Entry, 0, limit)
	text := ""
	for _, e := range tier1[:limit] {
		full := capdoc.Detail(e.Capability)
		next := full
		if text != "" {
			next = text + "\n\n" + full
		}
		if EstimateTokens(next) > cfg.Tier2TokenBudget {
			continue
		}
		text = next
		entries = append(entries, Tier2Entry{Capability: e.Capability, FullText: full})
	}
	return entries, text
}
