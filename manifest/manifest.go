package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framersai/capdiscovery/capability"
)

// File is the YAML manifest document shape.
type File struct {
	Capabilities []Entry `yaml:"capabilities"`
}

// Entry is one capability in a manifest file.
type Entry struct {
	Kind          string   `yaml:"kind"`
	Name          string   `yaml:"name"`
	DisplayName   string   `yaml:"displayName"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Tags          []string `yaml:"tags"`
	RequiredTools []string `yaml:"requiredTools"`
	Secrets       []string `yaml:"secrets"`
	Content       string   `yaml:"content"`
	Disabled      bool     `yaml:"disabled"`
}

// Load reads one manifest file into ManifestEntry records.
func Load(path string) ([]capability.ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	entries := make([]capability.ManifestEntry, 0, len(file.Capabilities))
	for _, e := range file.Capabilities {
		entries = append(entries, capability.ManifestEntry{
			Kind:          capability.Kind(e.Kind),
			Name:          e.Name,
			DisplayName:   e.DisplayName,
			Description:   e.Description,
			Category:      e.Category,
			Tags:          e.Tags,
			RequiredTools: e.RequiredTools,
			Secrets:       e.Secrets,
			Content:       e.Content,
			Disabled:      e.Disabled,
			Path:          path,
		})
	}
	return entries, nil
}

// LoadDir reads every .yaml/.yml manifest in a directory,
// non-recursively, in lexical order.
func LoadDir(dir string) ([]capability.ManifestEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	var entries []capability.ManifestEntry
	for _, name := range names {
		loaded, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return entries, nil
}
