// Package browsecmder provides the browse command, an interactive TUI over
// the vault.
package browsecmder

import (
	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
)

const browseLongDesc string = `Browse the vault interactively.

Opens a terminal UI listing the memories in each category. Navigate with
j/k, switch categories with tab, and open an entry to read its content
rendered as markdown. Opening an entry counts as a read.

Examples:
  mnemo browse
  mnemo browse -c projects`

const browseShortDesc string = "Browse the vault interactively"

type browseCommander struct {
	category string
}

func NewBrowseCmd() *cobra.Command {
	cmder := &browseCommander{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: browseShortDesc,
		Long:  browseLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt)
		},
	}

	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Category to open first")

	return cmd
}
