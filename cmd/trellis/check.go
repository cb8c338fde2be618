package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trellishq/trellis/internal/compose"
	"github.com/trellishq/trellis/internal/logging"
	"github.com/trellishq/trellis/internal/plugin"
	"github.com/trellishq/trellis/internal/ui"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every root-template placeholder has a contributor",
		Long: `Check loads the root template and reports every placeholder that no
static variable and no registered plugin covers. A disabled plugin still
counts as coverage; its section assembles to nothing instead of leaking a
token. Exits non-zero when anything is unmatched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), opts.project, opts.quiet)
		},
	}
}

func runCheck(out io.Writer, projectDir string, quiet bool) error {
	env, err := newRunEnv(projectDir)
	if err != nil {
		return err
	}
	lay := env.layout
	console := logging.NewConsole(out, logging.WithQuiet(quiet))
	ctx := plugin.NewContext(console, plugin.OSFiles{}, env.engine, ui.Auto{}, env.locale).
		WithProject(lay.Root(), lay.ProjectName())

	assembler := compose.New(rootTemplate, staticVars(lay.Root(), lay.ProjectName(), ""))
	unmatched, err := assembler.Check(env.registry.All(), ctx)
	if err != nil {
		return err
	}
	if len(unmatched) == 0 {
		console.Success("%s", env.locale.T("check.clean"))
		return nil
	}
	for _, token := range unmatched {
		console.Warning("{{%s}} has no contributor", token)
	}
	return fmt.Errorf("check: %s", env.locale.Tf("check.unmatched", len(unmatched)))
}
