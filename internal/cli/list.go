package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scrub/pkg/style"
)

// newListCmd creates the list command
func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, _, err := loadCollection(cmd.Context(), flags)
			if err != nil {
				return err
			}

			renderer := style.NewRenderer(style.UseColor(os.Stdout))
			fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderCollection(coll))
			return nil
		},
	}
}
