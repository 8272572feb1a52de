package sources

import (
	"context"

	"github.com/framersai/capdiscovery/capability"
	"github.com/framersai/capdiscovery/manifest"
)

// Static is a provider with a fixed record set, for configuration-time
// registration and tests.
type Static struct {
	ProviderName string
	Set          capability.SourceSet
}

// Name implements Provider.
func (s Static) Name() string { return s.ProviderName }

// Collect implements Provider.
func (s Static) Collect(context.Context) (capability.SourceSet, error) {
	return s.Set, nil
}

// ManifestDir is a provider that loads YAML manifests from a directory
// on every collect, so edited manifests are picked up by the next
// refresh.
type ManifestDir struct {
	ProviderName string
	Dir          string
}

// Name implements Provider.
func (m ManifestDir) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "manifest:" + m.Dir
}

// Collect implements Provider.
func (m ManifestDir) Collect(context.Context) (capability.SourceSet, error) {
	entries, err := manifest.LoadDir(m.Dir)
	if err != nil {
		return capability.SourceSet{}, err
	}
	return capability.SourceSet{Manifest: entries}, nil
}
