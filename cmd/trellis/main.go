// Command trellis outfits a repository with an AI-assistant workspace:
// slash commands, skills, policy rules, agent settings, service
// registrations, and an assembled root document, all contributed by plugins
// and rendered from the editable templates under .trellis/.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is the binary's release identity; release builds override it.
var version = "0.1.0"

// rootOptions carries the persistent flags every subcommand shares.
type rootOptions struct {
	project string
	quiet   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "trellis",
		Short: "Scaffold an AI-assistant workspace from plugins",
		Long: `Trellis outfits a repository with an assistant workspace. Plugins
contribute slash commands, skills, prioritized policy rules, agent
settings, external tool-server registrations, and sections of the root
document; trellis orchestrates them in dependency order and writes the
result into the project tree, merging with whatever is already there.

Start with "trellis init" to materialize .trellis/ (config and editable
templates), then run "trellis generate".`,
		Version:      version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVarP(&opts.project, "project", "p", ".", "project directory to scaffold")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only report problems and results")
	root.AddCommand(
		newInitCommand(opts),
		newGenerateCommand(opts),
		newPluginsCommand(opts),
		newCheckCommand(opts),
		newPreviewCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the trellis version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trellis %s\n", version)
		},
	}
}
