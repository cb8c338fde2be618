package plugins_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trellishq/trellis/internal/logging"
	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/plugins"
	"github.com/trellishq/trellis/internal/plugins/core"
	"github.com/trellishq/trellis/internal/plugins/git"
	"github.com/trellishq/trellis/internal/plugins/research"
	"github.com/trellishq/trellis/internal/plugins/webtools"
	"github.com/trellishq/trellis/internal/plugins/workflows"
	"github.com/trellishq/trellis/internal/template"
)

func TestBuiltinsRegisterAndResolve(t *testing.T) {
	reg := plugin.NewRegistry()
	plugins.RegisterBuiltins(reg)

	want := []string{"core", "git", "workflows", "research", "webtools"}
	names := reg.Names()
	if len(names) != len(want) {
		t.Fatalf("registered = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("registered = %v, want %v", names, want)
		}
	}

	loader := plugin.NewLoader(reg)
	ctx, _ := newBuiltinContext(t, nil)
	if err := loader.Load(plugin.RunConfig{}, ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	order := loader.Order()
	if order[0] != "core" {
		t.Fatalf("core must execute first, got order %v", order)
	}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want all builtins", order)
	}
}

func TestCoreSeedsProjectFacts(t *testing.T) {
	ctx, root := newBuiltinContext(t, nil)
	ctx = ctx.WithRun("run-123")

	if err := core.New().BeforeInit(ctx); err != nil {
		t.Fatalf("BeforeInit: %v", err)
	}
	if got := ctx.Shared.String("core.project_name"); got != "demo" {
		t.Fatalf("core.project_name = %q", got)
	}
	if got := ctx.Shared.String("core.project_root"); got != root {
		t.Fatalf("core.project_root = %q, want %q", got, root)
	}
	if got := ctx.Shared.String("core.run_id"); got != "run-123" {
		t.Fatalf("core.run_id = %q", got)
	}
}

func TestCoreContributesSettingsAndRule(t *testing.T) {
	ctx, _ := newBuiltinContext(t, map[string]string{
		"rules/conventions.md": "## Conventions\n\nRules for {{PROJECT_NAME}}.\n",
	})
	p := core.New()

	files := p.DataFiles(plugin.Settings{}, ctx)
	if len(files) != 1 {
		t.Fatalf("data files = %+v", files)
	}
	df := files[0]
	if df.Path != "settings.json" || df.Format != plugin.FormatJSON || df.Scope != plugin.ScopeProject {
		t.Fatalf("settings declaration = %+v", df)
	}

	rule := p.Rule()
	if rule == nil || rule.BaseName != "conventions" {
		t.Fatalf("rule = %+v", rule)
	}
	body, err := rule.Generate(plugin.Settings{}, ctx)
	if err != nil {
		t.Fatalf("rule generate: %v", err)
	}
	if !strings.Contains(body, "Rules for demo.") {
		t.Fatalf("rule body = %q", body)
	}
}

func TestGitExecuteOutsideRepository(t *testing.T) {
	ctx, root := newBuiltinContext(t, nil)

	if err := git.New().Execute(ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ctx.Shared.Bool("git.repo") {
		t.Fatal("expected git.repo false outside a repository")
	}
	if _, err := os.Stat(filepath.Join(root, ".gitignore")); !os.IsNotExist(err) {
		t.Fatal("no .gitignore should appear outside a repository")
	}
}

func TestGitExecuteMergesIgnoreEntries(t *testing.T) {
	ctx, root := newBuiltinContext(t, nil)
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := git.New()
	if err := p.Execute(ctx); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ctx.Shared.Bool("git.repo") {
		t.Fatal("expected git.repo true inside a repository")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, fragment := range []string{"node_modules/", "# trellis state", ".trellis/logs/"} {
		if !strings.Contains(string(raw), fragment) {
			t.Fatalf(".gitignore missing %q:\n%s", fragment, raw)
		}
	}

	// A second pass finds every entry present and leaves the bytes alone.
	if err := p.Execute(ctx); err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(raw) {
		t.Fatalf(".gitignore changed on rerun:\n%q\n%q", raw, again)
	}
}

func TestWorkflowsDeclaresPlanAndReview(t *testing.T) {
	ctx, _ := newBuiltinContext(t, map[string]string{
		"sections/workflows.md": "## Workflows\n\nUse /plan first.\n",
	})
	p := workflows.New()

	cmds := p.Commands(plugin.Settings{}, ctx)
	if len(cmds) != 2 || cmds[0].Name != "plan" || cmds[1].Name != "review" {
		t.Fatalf("commands = %+v", cmds)
	}
	for _, cmd := range cmds {
		if cmd.TemplatePath == "" || cmd.Description == "" {
			t.Fatalf("incomplete command declaration: %+v", cmd)
		}
	}

	prompt := p.Prompt()
	if prompt == nil || prompt.Placeholder != "WORKFLOWS" {
		t.Fatalf("prompt = %+v", prompt)
	}
	section, err := prompt.Generate(plugin.Settings{}, ctx)
	if err != nil {
		t.Fatalf("section generate: %v", err)
	}
	if !strings.Contains(section, "Use /plan first.") {
		t.Fatalf("section = %q", section)
	}
}

func TestResearchGateDeclinedHidesSkillAndSection(t *testing.T) {
	ctx, _ := newBuiltinContext(t, map[string]string{
		"sections/research.md": "## Research\n\nDig deeper.\n",
	})
	ctx.UI = scriptedPrompter{confirm: false}
	p := research.New()

	if err := p.BeforeInit(ctx); err != nil {
		t.Fatalf("BeforeInit: %v", err)
	}
	if skills := p.Skills(plugin.Settings{}, ctx); len(skills) != 0 {
		t.Fatalf("declined gate must hide the skill: %+v", skills)
	}
	section, err := p.Prompt().Generate(plugin.Settings{}, ctx)
	if err != nil {
		t.Fatalf("section generate: %v", err)
	}
	if section != "" {
		t.Fatalf("declined gate must empty the section, got %q", section)
	}
}

func TestResearchInstallsWithoutPrompter(t *testing.T) {
	ctx, _ := newBuiltinContext(t, nil)
	p := research.New()

	if err := p.BeforeInit(ctx); err != nil {
		t.Fatalf("BeforeInit: %v", err)
	}
	skills := p.Skills(plugin.Settings{}, ctx)
	if len(skills) != 1 || skills[0].Name != "deep-research" {
		t.Fatalf("skills = %+v", skills)
	}
}

func TestWebtoolsServiceDeclarations(t *testing.T) {
	ctx, _ := newBuiltinContext(t, nil)
	services := webtools.New().Services(plugin.Settings{}, ctx)
	if len(services) != 2 {
		t.Fatalf("services = %+v", services)
	}

	fetch, search := services[0], services[1]
	if fetch.Name != "fetch" || fetch.Condition != nil {
		t.Fatalf("fetch = %+v", fetch)
	}
	if search.Name != "search" || search.Condition == nil {
		t.Fatalf("search = %+v", search)
	}
	if !strings.Contains(search.Command, "{{PROJECT_ROOT}}") {
		t.Fatalf("search command should defer root expansion: %q", search.Command)
	}
	if search.Condition(plugin.Settings{Options: map[string]any{"search": false}}) {
		t.Fatal("search option false must gate the registration")
	}
	if !search.Condition(plugin.Settings{}) {
		t.Fatal("absent search option must default to registering")
	}
}

// newBuiltinContext builds a run context around a temp project whose
// template dir holds the given files.
func newBuiltinContext(t *testing.T, templates map[string]string) (*plugin.Context, string) {
	t.Helper()
	root := t.TempDir()
	tplDir := filepath.Join(root, ".trellis", "templates")
	for rel, content := range templates {
		path := filepath.Join(tplDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	ctx := plugin.NewContext(logging.NewConsole(&buf), plugin.OSFiles{}, template.NewEngine(tplDir), nil, nil)
	return ctx.WithProject(root, "demo"), root
}

// scriptedPrompter answers every prompt without blocking.
type scriptedPrompter struct {
	confirm bool
}

func (s scriptedPrompter) MultiSelect(title string, options, preselected []string) ([]string, error) {
	return preselected, nil
}

func (s scriptedPrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	return options[0], nil
}

func (s scriptedPrompter) Confirm(question string, fallback bool) (bool, error) {
	return s.confirm, nil
}

func (s scriptedPrompter) Input(prompt, placeholder string) (string, error) {
	return placeholder, nil
}
