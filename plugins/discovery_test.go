package plugins

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trellishq/trellis/internal/plugin"
)

func TestDiscoverMergesYAMLAndGo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "deploy.yaml"), []byte(sampleDefinition), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "audit.go"), []byte(goPluginSource), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	// audit.go#1 sorts before deploy.yaml.
	if defs[0].Definition.Name != "go-plugin" || defs[1].Definition.Name != "deploy-notes" {
		t.Fatalf("definitions out of order: %s, %s", defs[0].Definition.Name, defs[1].Definition.Name)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	defs, err := Discover(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if defs != nil {
		t.Fatalf("expected no definitions, got %v", defs)
	}
}

func TestRegisterLocalInstallsPlugins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "deploy.yaml"), []byte(sampleDefinition), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	reg := plugin.NewRegistry()
	if err := RegisterLocal(reg, defs); err != nil {
		t.Fatalf("register: %v", err)
	}
	p, err := reg.Get("deploy-notes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Descriptor().RulesPriority != 70 {
		t.Fatalf("descriptor = %+v", p.Descriptor())
	}
}

func TestRegisterLocalRejectsDuplicateNames(t *testing.T) {
	defs := []DefinitionFile{
		{Definition: validDefinition().Normalized(), Path: "a.yaml"},
		{Definition: validDefinition().Normalized(), Path: "b.yaml"},
	}
	reg := plugin.NewRegistry()
	err := RegisterLocal(reg, defs)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	for _, fragment := range []string{"deploy-notes", "a.yaml", "b.yaml"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error should mention %q: %v", fragment, err)
		}
	}
}
