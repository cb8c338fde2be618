package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trellishq/trellis/internal/config"
	"github.com/trellishq/trellis/internal/layout"
)

func TestGenerateWritesWorkspace(t *testing.T) {
	root := initProject(t, `
version: 1
plugins:
  webtools:
    enabled: false
`)
	var buf bytes.Buffer
	if err := runGenerate(&buf, generateOptions{projectDir: root, yes: true}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, rel := range []string{
		"AGENTS.md",
		".agents/commands/plan.md",
		".agents/commands/review.md",
		".agents/skills/deep-research/SKILL.md",
		".agents/rules/10-conventions.md",
		".agents/rules/30-git.md",
		".agents/settings.json",
		".trellis/logs/trellis.log",
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Fatalf("expected %s after generate: %v", rel, err)
		}
	}
	doc := readProjectFile(t, root, "AGENTS.md")
	if !strings.Contains(doc, filepath.Base(root)) {
		t.Fatalf("root document missing project name:\n%s", doc)
	}
	if strings.Contains(doc, "{{") {
		t.Fatalf("root document leaked a placeholder:\n%s", doc)
	}
}

func TestGenerateRerunChangesNothing(t *testing.T) {
	root := initProject(t, `
version: 1
plugins:
  webtools:
    enabled: false
`)
	var first bytes.Buffer
	if err := runGenerate(&first, generateOptions{projectDir: root, yes: true}); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	doc := readProjectFile(t, root, "AGENTS.md")
	settings := readProjectFile(t, root, ".agents/settings.json")

	var second bytes.Buffer
	if err := runGenerate(&second, generateOptions{projectDir: root, yes: true}); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if got := readProjectFile(t, root, "AGENTS.md"); got != doc {
		t.Fatalf("rerun changed the root document:\nfirst:\n%s\nsecond:\n%s", doc, got)
	}
	if got := readProjectFile(t, root, ".agents/settings.json"); got != settings {
		t.Fatalf("rerun changed settings.json:\nfirst:\n%s\nsecond:\n%s", settings, got)
	}
}

func TestGenerateDryRunPlansWithoutWriting(t *testing.T) {
	root := initProject(t, "")
	var buf bytes.Buffer
	if err := runGenerate(&buf, generateOptions{projectDir: root, dryRun: true}); err != nil {
		t.Fatalf("dry run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "AGENTS.md")); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote the root document")
	}
	if _, err := os.Stat(filepath.Join(root, layout.DefaultAgentDir)); !os.IsNotExist(err) {
		t.Fatalf("dry run created the agent directory")
	}
	out := buf.String()
	for _, fragment := range []string{"plan", "deep-research", "settings.json", "fetch", "AGENTS.md"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("plan output missing %q:\n%s", fragment, out)
		}
	}
}

func TestGenerateLocalDefinitionRoundTrip(t *testing.T) {
	root := initProject(t, `
version: 1
plugins:
  webtools:
    enabled: false
`)
	writeProjectFile(t, root, ".trellis/plugins/deploy.yaml", `
name: deploy-notes
version: 1.0.0
description: Deployment notes for the team
dependencies: [core]
rules_priority: 70
commands:
  - name: deploy
    description: Prepare deployment notes
    template: commands/deploy.md
`)
	writeProjectFile(t, root, ".trellis/templates/commands/deploy.md", "Deploy {{PROJECT_NAME}} with care.\n")

	var buf bytes.Buffer
	if err := runGenerate(&buf, generateOptions{projectDir: root, yes: true}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw := readProjectFile(t, root, ".agents/commands/deploy.md")
	if !strings.Contains(raw, "Deploy "+filepath.Base(root)+" with care.") {
		t.Fatalf("local definition's command not rendered:\n%s", raw)
	}
	if !strings.Contains(raw, "description: Prepare deployment notes") {
		t.Fatalf("command header missing:\n%s", raw)
	}
}

func TestCheckReportsUncoveredPlaceholder(t *testing.T) {
	root := initProject(t, "")
	writeProjectFile(t, root, ".trellis/templates/root.md",
		"# {{PROJECT_NAME}}\n\n{{CORE_GUIDELINES}}\n\n{{MYSTERY_SECTION}}\n")

	var buf bytes.Buffer
	err := runCheck(&buf, root, false)
	if err == nil {
		t.Fatalf("check passed despite an uncovered placeholder")
	}
	if !strings.Contains(buf.String(), "MYSTERY_SECTION") {
		t.Fatalf("report does not name the placeholder:\n%s", buf.String())
	}

	writeProjectFile(t, root, ".trellis/templates/root.md",
		"# {{PROJECT_NAME}}\n\n{{CORE_GUIDELINES}}\n")
	buf.Reset()
	if err := runCheck(&buf, root, false); err != nil {
		t.Fatalf("check failed on a covered template: %v", err)
	}
}

func TestPluginsListsRegistryWithEnabledState(t *testing.T) {
	root := initProject(t, `
version: 1
plugins:
  git:
    enabled: false
`)
	var buf bytes.Buffer
	if err := runPlugins(&buf, root); err != nil {
		t.Fatalf("plugins: %v", err)
	}
	out := buf.String()
	for _, name := range []string{"core", "git", "workflows", "research", "webtools"} {
		if !strings.Contains(out, name) {
			t.Fatalf("table missing %s:\n%s", name, out)
		}
	}
	gitRow := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, " git ") {
			gitRow = line
			break
		}
	}
	if gitRow == "" {
		t.Fatalf("no row for git:\n%s", out)
	}
	if !strings.Contains(gitRow, "no") {
		t.Fatalf("git row should read disabled: %q", gitRow)
	}
}

func TestInitSeedsAndReportsRepeat(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	if err := runInit(&buf, root, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(buf.String(), "initialized .trellis") {
		t.Fatalf("init output = %q", buf.String())
	}
	for _, rel := range []string{".trellis/config.yaml", ".trellis/templates/root.md", ".trellis/plugins"} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Fatalf("expected %s after init: %v", rel, err)
		}
	}

	buf.Reset()
	if err := runInit(&buf, root, false); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(buf.String(), "already initialized") {
		t.Fatalf("second init output = %q", buf.String())
	}
}

func TestVersionSubcommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(buf.String(), version) {
		t.Fatalf("version output = %q", buf.String())
	}
}

// initProject materializes .trellis in a temp dir and, when configYAML is
// non-empty, replaces the starter config with it.
func initProject(t *testing.T, configYAML string) string {
	t.Helper()
	root := t.TempDir()
	if err := config.Init(root); err != nil {
		t.Fatalf("init project: %v", err)
	}
	if strings.TrimSpace(configYAML) != "" {
		writeProjectFile(t, root, ".trellis/config.yaml", configYAML)
	}
	return root
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func readProjectFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}
