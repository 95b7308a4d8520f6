// Package appendcmder provides the append command for adding to an
// existing memory.
package appendcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
)

const appendLongDesc string = `Append text to an existing memory.

Adds a newline plus the given text to the end of the memory's current
content. The memory must already exist. Appending counts as a write, so
the access count resets to zero.

Examples:
  mnemo append worklog "2026-08-23: fixed the index migration"
  mnemo append api-notes "see also the v2 endpoints" -c projects`

const appendShortDesc string = "Append text to a memory"

type appendCommander struct {
	category string
}

func NewAppendCmd() *cobra.Command {
	cmder := &appendCommander{}

	cmd := &cobra.Command{
		Use:   "append <name> <text>",
		Short: appendShortDesc,
		Long:  appendLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Category subpath (defaults to the configured default)")

	return cmd
}

func (c *appendCommander) run(ctx context.Context, rt *cmdutil.Runtime, name, text string) error {
	meta, err := rt.Store.Append(ctx, name, text, c.category)
	if err != nil {
		return err
	}

	rt.Logger.Debug("appended to memory", "path", meta.RelativePath, "size", meta.Size)

	fmt.Printf("%s Appended to %s (now %s)\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(meta.RelativePath),
		cliui.DimStyle.Render(cliui.FormatBytes(meta.Size)),
	)

	return nil
}
