package writer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/template"
)

// RegisterTimeout bounds one external registration command.
const RegisterTimeout = 30 * time.Second

// Registration is one fully expanded service ready to hand to the registrar.
type Registration struct {
	Name    string
	Scope   plugin.Scope
	Command string
	Args    []string
}

// Registrar enrolls a service with an external tool registry.
type Registrar interface {
	Register(ctx context.Context, reg Registration) error
}

// ExecRegistrar shells out to a registration command such as
// "agentctl mcp add".
type ExecRegistrar struct {
	command string
	args    []string
}

// NewExecRegistrar builds a registrar around the given command line.
func NewExecRegistrar(command string, args ...string) *ExecRegistrar {
	return &ExecRegistrar{command: command, args: args}
}

func (r *ExecRegistrar) Register(ctx context.Context, reg Registration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	argv := append([]string{}, r.args...)
	argv = append(argv, "--scope", string(reg.Scope), reg.Name, reg.Command)
	argv = append(argv, reg.Args...)
	cmd := exec.CommandContext(ctx, r.command, argv...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("writer: register %s: timed out", reg.Name)
		}
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("writer: register %s: %w: %s", reg.Name, err, detail)
		}
		return fmt.Errorf("writer: register %s: %w", reg.Name, err)
	}
	return nil
}

// ServiceWriter registers every declared external service. A failing service
// is logged and recorded; the batch continues.
type ServiceWriter struct {
	registrar Registrar
	timeout   time.Duration
}

// ServiceOption adjusts a ServiceWriter at construction.
type ServiceOption func(*ServiceWriter)

// WithTimeout overrides the per-registration timeout.
func WithTimeout(d time.Duration) ServiceOption {
	return func(w *ServiceWriter) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// NewServiceWriter builds a writer around a registrar.
func NewServiceWriter(registrar Registrar, opts ...ServiceOption) *ServiceWriter {
	w := &ServiceWriter{registrar: registrar, timeout: RegisterTimeout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write runs one registration pass over the given plugins.
func (w *ServiceWriter) Write(plugins []plugin.Plugin, cfg plugin.RunConfig, ctx *plugin.Context) []Result {
	var results []Result
	for _, p := range plugins {
		desc := p.Descriptor()
		settings := cfg.For(desc.Name)
		if !settings.IsEnabled() {
			continue
		}
		provider, ok := p.(plugin.ServiceProvider)
		if !ok {
			continue
		}
		for _, svc := range provider.Services(settings, ctx) {
			if svc.Condition != nil && !svc.Condition(settings) {
				continue
			}
			results = append(results, w.register(desc.Name, svc, ctx))
		}
	}
	return results
}

func (w *ServiceWriter) register(pluginName string, svc plugin.ExternalService, ctx *plugin.Context) Result {
	result := Result{Kind: KindService, Plugin: pluginName, Name: svc.Name}
	args := make([]string, 0, len(svc.Args))
	for _, arg := range svc.Args {
		args = append(args, expandProjectTokens(arg, ctx))
	}
	reg := Registration{
		Name:    svc.Name,
		Scope:   svc.Scope,
		Command: expandProjectTokens(svc.Command, ctx),
		Args:    args,
	}
	execCtx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.registrar.Register(execCtx, reg); err != nil {
		result.Err = err
		ctx.Console.Warning("%s", err)
		return result
	}
	ctx.Console.Success("registered %s", svc.Name)
	return result
}

// expandProjectTokens substitutes the two project tokens into a declared
// command or argument. A $(pwd) form stays untouched for the shell to
// expand later.
func expandProjectTokens(command string, ctx *plugin.Context) string {
	command = template.Replace(command, "PROJECT_ROOT", ctx.ProjectRoot)
	command = template.Replace(command, "PROJECT_NAME", ctx.ProjectName)
	return command
}
