package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framersai/capdiscovery/capability"
)

const sampleManifest = `capabilities:
  - kind: tool
    name: web-search
    displayName: Web Search
    description: Search the web for current information
    category: information
    tags: [search, web]
  - kind: skill
    name: deep-research
    description: Research a topic in depth
    requiredTools: [web-search]
    secrets: [SEARCH_API_KEY]
    content: |
      1. Search broadly.
      2. Synthesize.
    disabled: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "caps.yaml", sampleManifest)

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	tool := entries[0]
	if tool.Kind != capability.KindTool || tool.Name != "web-search" {
		t.Errorf("first entry = %+v", tool)
	}
	if tool.DisplayName != "Web Search" || tool.Category != "information" {
		t.Errorf("tool fields not carried: %+v", tool)
	}
	if len(tool.Tags) != 2 {
		t.Errorf("tags = %v", tool.Tags)
	}
	if tool.Path != path {
		t.Errorf("Path = %q, want source file", tool.Path)
	}

	skill := entries[1]
	if !skill.Disabled {
		t.Errorf("disabled flag lost")
	}
	if len(skill.RequiredTools) != 1 || skill.RequiredTools[0] != "web-search" {
		t.Errorf("requiredTools = %v", skill.RequiredTools)
	}
	if skill.Content == "" {
		t.Errorf("content lost")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file accepted")
	}

	bad := writeFile(t, t.TempDir(), "bad.yaml", "capabilities: [}")
	if _, err := Load(bad); err == nil {
		t.Errorf("malformed YAML accepted")
	}
}

func TestLoadDir_LexicalOrderAndExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "capabilities:\n  - {kind: tool, name: from-b}\n")
	writeFile(t, dir, "a.yml", "capabilities:\n  - {kind: tool, name: from-a}\n")
	writeFile(t, dir, "ignore.txt", "not a manifest")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub"), "c.yaml", "capabilities:\n  - {kind: tool, name: nested}\n")

	entries, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (non-recursive, yaml/yml only)", len(entries))
	}
	if entries[0].Name != "from-a" || entries[1].Name != "from-b" {
		t.Errorf("order = [%s %s], want lexical by filename", entries[0].Name, entries[1].Name)
	}
}

func TestLoadDir_MissingDir(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Errorf("missing directory accepted")
	}
}
