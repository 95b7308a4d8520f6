// Package clearcmder provides the clear command for wiping the vault.
package clearcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
)

const clearLongDesc string = `Clear the entire vault.

Deletes every memory, every category directory, and the index, then
re-initializes an empty vault with the configured categories. This cannot
be undone.

Prompts for confirmation unless --force is given.

Examples:
  mnemo clear
  mnemo clear --force`

const clearShortDesc string = "Delete every memory in the vault"

type clearCommander struct {
	force bool
}

func NewClearCmd() *cobra.Command {
	cmder := &clearCommander{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: clearShortDesc,
		Long:  clearLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt)
		},
	}

	cmd.Flags().BoolVar(&cmder.force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func (c *clearCommander) run(ctx context.Context, rt *cmdutil.Runtime) error {
	if !c.force {
		fmt.Printf("This permanently deletes everything under %s.\nType 'yes' to continue: ", rt.Store.Root())

		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}

		if strings.TrimSpace(answer) != "yes" {
			fmt.Printf("  %s\n", cliui.DimStyle.Render("Aborted."))
			return nil
		}
	}

	if err := rt.Store.Clear(ctx); err != nil {
		return err
	}

	fmt.Printf("%s Vault cleared\n", cliui.SuccessMark)

	return nil
}
