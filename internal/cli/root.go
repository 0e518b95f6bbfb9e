// Package cli wires the cobra command surface. Commands translate flags
// into engine calls and render results; all compilation semantics live in
// the pkg packages, which never print or exit themselves.
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scrub/internal/version"
	"github.com/arthur-debert/scrub/pkg/logging"
)

// Homepage is substituted into collection start/end code via
// {{ $homepage }}.
const Homepage = "https://github.com/arthur-debert/scrub"

// rootFlags holds flags shared by every command that loads a collection.
type rootFlags struct {
	verbosity      int
	osName         string
	file           string
	url            string
	collectionsDir string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "scrub",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVar(&flags.osName, "os", "", "Collection OS target (default: current system)")
	pf.StringVar(&flags.file, "file", "", "Load the collection from this file")
	pf.StringVar(&flags.url, "url", "", "Load the collection from this URL")
	pf.StringVar(&flags.collectionsDir, "collections-dir", "", "Directory containing collection documents")
	rootCmd.MarkFlagsMutuallyExclusive("file", "url")

	rootCmd.AddCommand(newScriptCmd(flags))
	rootCmd.AddCommand(newRunCmd(flags))
	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newDocsCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
