package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scrub/pkg/assembler"
	"github.com/arthur-debert/scrub/pkg/compiler"
	"github.com/arthur-debert/scrub/pkg/runner"
	"github.com/arthur-debert/scrub/pkg/scruberr"
)

// newRunCmd creates the run command
func newRunCmd(flags *rootFlags) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:     "run [names...]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, cfg, err := loadCollection(cmd.Context(), flags)
			if err != nil {
				return err
			}

			selection, err := buildSelection(args, sel, cfg.Level)
			if err != nil {
				return err
			}

			fragments, err := compiler.Compile(coll, selection)
			if err != nil {
				return err
			}

			script := assembler.Assemble(fragments, coll.Scripting, assembleOptions(sel.revert))

			code, err := runner.New().Run(cmd.Context(), script, coll.Scripting)
			if err != nil {
				return err
			}
			if code != 0 {
				log.Warn().Int("exitCode", code).Msg("Script finished with a non-zero status")
				return scruberr.Newf(scruberr.ErrExec, "script exited with status %d", code).
					WithDetail("exitCode", code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.level, "level", "", "Only include scripts recommended at this tier (standard or strict)")
	cmd.Flags().BoolVar(&sel.revert, "revert", false, "Run the revert script instead")

	return cmd
}
