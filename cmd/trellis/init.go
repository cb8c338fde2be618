package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/trellishq/trellis/internal/config"
	"github.com/trellishq/trellis/internal/i18n"
	"github.com/trellishq/trellis/internal/layout"
	"github.com/trellishq/trellis/internal/logging"
	"github.com/trellishq/trellis/internal/plugin"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Materialize .trellis/ with config and editable templates",
		Long: `Init creates the tool state directory: .trellis/config.yaml, the
template directory seeded with the default templates, the run log
directory, and the local plugin directory. Files you already edited are
left alone, so init is safe to repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), opts.project, opts.quiet)
		},
	}
}

func runInit(out io.Writer, projectDir string, quiet bool) error {
	existed := plugin.OSFiles{}.Exists(layout.New(projectDir).ConfigPath())
	if err := config.Init(projectDir); err != nil {
		return err
	}
	// Loading right after seeding also validates the starter config.
	cfg, err := config.Load(projectDir)
	if err != nil {
		return err
	}
	bundle, err := i18n.Load()
	if err != nil {
		return err
	}
	locale := bundle.Resolve(cfg.Language())
	console := logging.NewConsole(out, logging.WithQuiet(quiet))

	lay := cfg.Layout()
	dir := displayPath(lay.Root(), lay.TrellisDir())
	if existed {
		console.Info("%s", locale.Tf("init.exists", dir))
		return nil
	}
	console.Success("%s", locale.Tf("init.done", dir))
	return nil
}
