package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/trellishq/trellis/internal/plugin"
)

func TestServiceWriterExpandsProjectTokens(t *testing.T) {
	registrar := &fakeRegistrar{}
	w := NewServiceWriter(registrar)
	p := &declPlugin{
		desc: writerDescriptor("webtools", 60),
		services: []plugin.ExternalService{{
			Name:    "fetch",
			Scope:   plugin.ScopeProject,
			Command: "{{PROJECT_ROOT}}/bin/fetch --cwd $(pwd)",
			Args:    []string{"--project", "{{PROJECT_NAME}}"},
		}},
	}
	ctx := newWriterContext(nil).WithProject("/work/demo", "demo")

	results := w.Write([]plugin.Plugin{p}, plugin.RunConfig{}, ctx)
	if len(results) != 1 || !results[0].OK() {
		t.Fatalf("results = %+v", results)
	}
	if len(registrar.regs) != 1 {
		t.Fatalf("registrations = %+v", registrar.regs)
	}
	reg := registrar.regs[0]
	if want := "/work/demo/bin/fetch --cwd $(pwd)"; reg.Command != want {
		t.Fatalf("command = %q, want %q", reg.Command, want)
	}
	if len(reg.Args) != 2 || reg.Args[0] != "--project" || reg.Args[1] != "demo" {
		t.Fatalf("args = %v, want [--project demo]", reg.Args)
	}
}

func TestServiceWriterBatchSurvivesOneFailure(t *testing.T) {
	registrar := &fakeRegistrar{failFor: map[string]error{"search": errors.New("exit status 1")}}
	w := NewServiceWriter(registrar)
	p := &declPlugin{
		desc: writerDescriptor("webtools", 60),
		services: []plugin.ExternalService{
			{Name: "fetch", Scope: plugin.ScopeProject, Command: "fetch-server"},
			{Name: "search", Scope: plugin.ScopeProject, Command: "search-server"},
			{Name: "docs", Scope: plugin.ScopeUser, Command: "docs-server"},
		},
	}

	results := w.Write([]plugin.Plugin{p}, plugin.RunConfig{}, newWriterContext(nil))
	if len(results) != 3 {
		t.Fatalf("results = %+v", results)
	}
	written, failed := Tally(results)
	if written != 2 || failed != 1 {
		t.Fatalf("tally = %d, %d", written, failed)
	}
	if len(registrar.regs) != 3 {
		t.Fatalf("a failure must not stop later registrations: %+v", registrar.regs)
	}
	failures := Failed(results)
	if len(failures) != 1 || failures[0].Name != "search" {
		t.Fatalf("failures = %+v", failures)
	}
}

func TestServiceWriterHonorsCondition(t *testing.T) {
	registrar := &fakeRegistrar{}
	w := NewServiceWriter(registrar)
	p := &declPlugin{
		desc: writerDescriptor("webtools", 60),
		services: []plugin.ExternalService{
			{
				Name: "search", Scope: plugin.ScopeProject, Command: "search-server",
				Condition: func(cfg plugin.Settings) bool { return cfg.BoolOption("search", false) },
			},
			{Name: "fetch", Scope: plugin.ScopeProject, Command: "fetch-server"},
		},
	}

	results := w.Write([]plugin.Plugin{p}, plugin.RunConfig{}, newWriterContext(nil))
	if len(results) != 1 || results[0].Name != "fetch" {
		t.Fatalf("condition should gate registration: %+v", results)
	}

	cfg := plugin.RunConfig{"webtools": {Options: map[string]any{"search": true}}}
	registrar.regs = nil
	results = w.Write([]plugin.Plugin{p}, cfg, newWriterContext(nil))
	if len(results) != 2 {
		t.Fatalf("enabled condition should register both: %+v", results)
	}
}

func TestServiceWriterAppliesDeadline(t *testing.T) {
	registrar := &fakeRegistrar{}
	w := NewServiceWriter(registrar)
	p := &declPlugin{
		desc:     writerDescriptor("webtools", 60),
		services: []plugin.ExternalService{{Name: "fetch", Scope: plugin.ScopeProject, Command: "fetch-server"}},
	}

	w.Write([]plugin.Plugin{p}, plugin.RunConfig{}, newWriterContext(nil))
	if !registrar.sawDeadline {
		t.Fatalf("registrar must be called with a deadline")
	}
}

// fakeRegistrar records registrations and fails on demand.
type fakeRegistrar struct {
	regs        []Registration
	failFor     map[string]error
	sawDeadline bool
}

func (f *fakeRegistrar) Register(ctx context.Context, reg Registration) error {
	if _, ok := ctx.Deadline(); ok {
		f.sawDeadline = true
	}
	f.regs = append(f.regs, reg)
	if err := f.failFor[reg.Name]; err != nil {
		return err
	}
	return nil
}
