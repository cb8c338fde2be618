package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/trellishq/trellis/internal/compose"
	"github.com/trellishq/trellis/internal/logging"
	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/ui"
)

func newPreviewCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render the root document without writing it",
		Long: `Preview assembles the root document in memory, exactly as generate
would, and renders it to the terminal. No hook fires and nothing is
written, so sections that depend on earlier plugin work show their
defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.project)
		},
	}
}

func runPreview(out, errOut io.Writer, projectDir string) error {
	env, err := newRunEnv(projectDir)
	if err != nil {
		return err
	}
	lay := env.layout
	// Warnings go to stderr so the rendered document stays clean on stdout.
	console := logging.NewConsole(errOut)
	ctx := plugin.NewContext(console, plugin.OSFiles{}, env.engine, ui.Auto{}, env.locale).
		WithProject(lay.Root(), lay.ProjectName())

	loader := plugin.NewLoader(env.registry)
	runCfg := env.cfg.Plugins()
	if err := loader.Load(runCfg, ctx); err != nil {
		return err
	}

	assembler := compose.New(rootTemplate, staticVars(lay.Root(), lay.ProjectName(), ""))
	text, err := assembler.Assemble(loader.Loaded(), runCfg, ctx)
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("preview: renderer: %w", err)
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("preview: render: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
