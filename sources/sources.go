package sources

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/framersai/capdiscovery/capability"
)

// Error values for consistent error handling by callers.
var (
	ErrNotFound          = errors.New("source provider not found")
	ErrInvalidProvider   = errors.New("invalid source provider")
	ErrInvalidProviderID = errors.New("invalid source provider id")
)

// Provider supplies capability records from one backend: a tool
// registry, a skill directory, an extension host, a messaging
// connector, or a manifest tree.
type Provider interface {
	// Name identifies the provider for registration and logging.
	Name() string
	// Collect gathers the provider's current records.
	Collect(ctx context.Context) (capability.SourceSet, error)
}

// Registry holds registered source providers and aggregates their
// records for index builds. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// ProviderID returns a stable provider ID from name/version.
func ProviderID(name, version string) string {
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + ":" + version
}

// Register adds a provider under the given ID, defaulting to the
// provider's name, and returns the resolved ID.
func (r *Registry) Register(id string, p Provider) (string, error) {
	if p == nil || p.Name() == "" {
		return "", ErrInvalidProvider
	}
	if id == "" {
		id = p.Name()
	}
	if id == "" {
		return "", ErrInvalidProviderID
	}

	r.mu.Lock()
	r.providers[id] = p
	r.mu.Unlock()

	return id, nil
}

// Describe returns a provider by ID.
func (r *Registry) Describe(id string) (Provider, error) {
	if id == "" {
		return nil, ErrInvalidProviderID
	}

	r.mu.RLock()
	p, ok := r.providers[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns all registered providers in stable ID order.
func (r *Registry) List() []Provider {
	r.mu.RLock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)

	result := make([]Provider, 0, len(ids))
	r.mu.RLock()
	for _, id := range ids {
		result = append(result, r.providers[id])
	}
	r.mu.RUnlock()

	return result
}

// Collect runs every provider in ID order and merges the record sets.
// The first provider error aborts the pass.
func (r *Registry) Collect(ctx context.Context) (capability.SourceSet, error) {
	var merged capability.SourceSet
	for _, p := range r.List() {
		set, err := p.Collect(ctx)
		if err != nil {
			return capability.SourceSet{}, err
		}
		merged.Tools = append(merged.Tools, set.Tools...)
		merged.Skills = append(merged.Skills, set.Skills...)
		merged.Extensions = append(merged.Extensions, set.Extensions...)
		merged.Channels = append(merged.Channels, set.Channels...)
		merged.Manifest = append(merged.Manifest, set.Manifest...)
	}
	return merged, nil
}
