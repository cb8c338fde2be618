package main

import (
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/trellishq/trellis/internal/compose"
	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/logging"
	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/ui"
	"github.com/trellishq/trellis/internal/writer"
)

type generateOptions struct {
	projectDir string
	dryRun     bool
	yes        bool
	quiet      bool
}

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var dryRun, yes bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run every enabled plugin and write the workspace",
		Long: `Generate drives the full run: plugins load in dependency order, their
lifecycle hooks fire, and three writer passes materialize commands,
skills, data files, rules, and service registrations. The root document
assembles last and merges over anything already at the project root.

A failing artifact is reported and the run continues; only registration,
ordering, and lifecycle errors abort.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), generateOptions{
				projectDir: opts.project,
				dryRun:     dryRun,
				yes:        yes,
				quiet:      opts.quiet,
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list planned artifacts without writing")
	cmd.Flags().BoolVar(&yes, "yes", false, "answer every prompt with its default, accepting confirms")
	return cmd
}

func runGenerate(out io.Writer, opts generateOptions) error {
	env, err := newRunEnv(opts.projectDir)
	if err != nil {
		return err
	}
	lay := env.layout
	runID := uuid.NewString()

	var journal *logging.Journal
	if !opts.dryRun {
		journal, err = logging.NewJournal(lay.JournalPath(), logging.WithRun(runID))
		if err != nil {
			return err
		}
	}
	console := logging.NewConsole(out, logging.WithQuiet(opts.quiet), logging.WithJournal(journal))

	var prompter plugin.Prompter = ui.NewTerminal()
	if opts.yes {
		prompter = ui.Auto{Accept: true}
	}
	ctx := plugin.NewContext(console, plugin.OSFiles{}, env.engine, prompter, env.locale).
		WithRun(runID).
		WithProject(lay.Root(), lay.ProjectName())

	console.Step("%s", env.locale.Tf("generate.start", ctx.ProjectName))
	journal.Info("run started for %s", ctx.ProjectName)

	loader := plugin.NewLoader(env.registry)
	runCfg := env.cfg.Plugins()
	if err := loader.Load(runCfg, ctx); err != nil {
		journal.Error("%v", err)
		return err
	}
	loaded := loader.Loaded()
	console.Info("%s", env.locale.Tf("generate.plugins", len(loaded)))

	vars := staticVars(ctx.ProjectRoot, ctx.ProjectName, runID)

	if opts.dryRun {
		printPlan(console, lay, loaded, runCfg, ctx)
		console.Info("%s", env.locale.T("generate.dry_run"))
		return nil
	}

	console.Step("%s", env.locale.T("generate.hooks"))
	for _, hook := range plugin.Lifecycle {
		if err := loader.ExecuteHook(hook, ctx); err != nil {
			journal.Error("%v", err)
			return err
		}
	}

	files := plugin.OSFiles{}
	var results []writer.Result

	console.Step("%s", env.locale.T("resources.pass"))
	resources := writer.NewResourceWriter(lay, files, writer.WithVars(vars))
	results = append(results, resources.Write(loaded, runCfg, ctx)...)

	console.Step("%s", env.locale.T("rules.pass"))
	rules := writer.NewRulesWriter(lay, files)
	results = append(results, rules.Write(loaded, runCfg, ctx)...)

	console.Step("%s", env.locale.T("services.pass"))
	registrarCmd, registrarArgs := env.cfg.Registrar()
	services := writer.NewServiceWriter(writer.NewExecRegistrar(registrarCmd, registrarArgs...))
	results = append(results, services.Write(loaded, runCfg, ctx)...)

	console.Step("%s", env.locale.T("generate.assemble"))
	text, err := compose.New(rootTemplate, vars).Assemble(loaded, runCfg, ctx)
	if err != nil {
		// The root template failing to load costs the document, not the run.
		docPath := lay.RootDocPath()
		console.Warning("%s", err.Error())
		results = append(results, writer.Result{Kind: writer.KindDocument, Name: filepath.Base(docPath), Path: docPath, Err: err})
	} else {
		results = append(results, writer.NewDocumentWriter(lay, files).Write(text, ctx))
	}

	written, failed := writer.Tally(results)
	console.Blank()
	console.Info("%s", env.locale.Tf("summary.tally", written, failed))
	journal.Info("run finished: %d written, %d failed", written, failed)
	console.Success("%s", env.locale.T("generate.done"))
	return nil
}

// printPlan lists every artifact a full run would produce, without firing
// hooks or touching the tree.
func printPlan(console *logging.Console, lay *layout.Layout, loaded []plugin.Plugin, cfg plugin.RunConfig, ctx *plugin.Context) {
	root := lay.Root()
	for _, p := range loaded {
		name := p.Descriptor().Name
		settings := cfg.For(name)
		if provider, ok := p.(plugin.CommandProvider); ok {
			for _, cmd := range provider.Commands(settings, ctx) {
				console.Info("command   %-16s %s", cmd.Name, displayPath(root, lay.CommandPath(cmd.Name)))
			}
		}
		if provider, ok := p.(plugin.SkillProvider); ok {
			for _, skill := range provider.Skills(settings, ctx) {
				console.Info("skill     %-16s %s", skill.Name, displayPath(root, lay.SkillPath(skill.Name)))
			}
		}
		if provider, ok := p.(plugin.DataFileProvider); ok {
			for _, df := range provider.DataFiles(settings, ctx) {
				console.Info("data      %-16s %s", df.Path, displayPath(root, lay.DataFilePath(df.Scope, df.Path)))
			}
		}
		if provider, ok := p.(plugin.RuleProvider); ok {
			if rule := provider.Rule(); rule != nil {
				console.Info("rule      %-16s %s", rule.BaseName, displayPath(root, lay.RulePath(p.Descriptor().RulesPriority, rule.BaseName)))
			}
		}
		if provider, ok := p.(plugin.ServiceProvider); ok {
			for _, svc := range provider.Services(settings, ctx) {
				if svc.Condition != nil && !svc.Condition(settings) {
					continue
				}
				console.Info("service   %-16s %s scope", svc.Name, svc.Scope)
			}
		}
	}
	docPath := lay.RootDocPath()
	console.Info("document  %-16s %s", filepath.Base(docPath), displayPath(root, docPath))
}
