// Package rmcmder provides the rm command for deleting a memory.
package rmcmder

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
)

const rmLongDesc string = `Remove a memory from the vault.

Deletes the memory's file and its index record. This cannot be undone.

Examples:
  mnemo rm greeting
  mnemo rm api-notes -c projects`

const rmShortDesc string = "Remove a memory"

type rmCommander struct {
	category string
}

func NewRmCmd() *cobra.Command {
	cmder := &rmCommander{}

	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: rmShortDesc,
		Long:  rmLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Category subpath (defaults to the configured default)")

	return cmd
}

func (c *rmCommander) run(ctx context.Context, rt *cmdutil.Runtime, name string) error {
	if err := rt.Store.Remove(ctx, name, c.category); err != nil {
		return err
	}

	label := name
	if c.category != "" {
		label = path.Join(c.category, name)
	}

	fmt.Printf("%s Removed %s\n", cliui.SuccessMark, cliui.KeyStyle.Render(label))

	return nil
}
