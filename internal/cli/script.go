package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scrub/pkg/assembler"
	"github.com/arthur-debert/scrub/pkg/compiler"
	"github.com/arthur-debert/scrub/pkg/runner"
)

// newScriptCmd creates the script command
func newScriptCmd(flags *rootFlags) *cobra.Command {
	var (
		sel    selectionFlags
		output string
		check  bool
	)

	cmd := &cobra.Command{
		Use:     "script [names...]",
		Short:   MsgScriptShort,
		Long:    MsgScriptLong,
		Example: MsgScriptExample,
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

			if check {
				if err := runner.Validate(script, coll.Scripting); err != nil {
					return err
				}
			}

			if output != "" {
				return os.WriteFile(output, []byte(script), 0755)
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.level, "level", "", "Only include scripts recommended at this tier (standard or strict)")
	cmd.Flags().BoolVar(&sel.revert, "revert", false, "Compile the revert script instead")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script to this file instead of stdout")
	cmd.Flags().BoolVar(&check, "check", false, "Validate the assembled script's shell syntax")

	return cmd
}
