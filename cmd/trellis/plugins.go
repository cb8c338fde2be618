package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newPluginsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List every registered plugin",
		Long: `Plugins lists the builtin set plus any local definitions discovered
under .trellis/plugins/, in registration order, with each plugin's
version, rules priority, dependencies, and whether the project config
enables it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd.OutOrStdout(), opts.project)
		},
	}
}

func runPlugins(out io.Writer, projectDir string) error {
	env, err := newRunEnv(projectDir)
	if err != nil {
		return err
	}
	runCfg := env.cfg.Plugins()

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("NAME", "VERSION", "PRIORITY", "DEPENDS ON", "ENABLED")
	for _, p := range env.registry.All() {
		desc := p.Descriptor()
		deps := strings.Join(desc.Dependencies, ", ")
		if deps == "" {
			deps = "-"
		}
		enabled := "yes"
		if !runCfg.IsEnabled(desc.Name) {
			enabled = "no"
		}
		t.Row(desc.Name, desc.Version, fmt.Sprintf("%02d", desc.RulesPriority), deps, enabled)
	}
	fmt.Fprintln(out, t.String())
	return nil
}
