// Package storecmder provides the store command for writing a memory into
// the vault.
package storecmder

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
	"github.com/mnemohq/mnemo/pkg/utils"
)

const storeLongDesc string = `Store a memory in the vault.

Writes the given content under <category>/<name>, fully replacing any
existing content for that name. Content can come from an argument, a file,
or stdin when neither is given.

The category may be a nested subpath like personalities/technical. When
omitted, the configured default category is used.

Examples:
  mnemo store greeting "hello world"
  mnemo store api-notes --file ./notes.md -c projects
  cat notes.md | mnemo store api-notes -c projects`

const storeShortDesc string = "Store a memory"

type storeCommander struct {
	category string
	file     string
}

func NewStoreCmd() *cobra.Command {
	cmder := &storeCommander{}

	cmd := &cobra.Command{
		Use:   "store <name> [content]",
		Short: storeShortDesc,
		Long:  storeLongDesc,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), rt, args)
		},
	}

	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Category subpath (defaults to the configured default)")
	cmd.Flags().StringVar(&cmder.file, "file", "", "Read content from a file instead of an argument")

	return cmd
}

func (c *storeCommander) run(ctx context.Context, rt *cmdutil.Runtime, args []string) error {
	content, err := c.resolveContent(args)
	if err != nil {
		return err
	}

	meta, err := rt.Store.Store(ctx, args[0], content, c.category)
	if err != nil {
		return err
	}

	rt.Logger.Debug("stored memory", "path", meta.RelativePath, "hash", meta.ContentHash)

	fmt.Printf("%s Stored %s (%s) %s\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(meta.RelativePath),
		cliui.DimStyle.Render(cliui.FormatBytes(meta.Size)),
		cliui.DimStyle.Render(utils.Truncate(utils.FirstLine(content), 60)),
	)

	return nil
}

// resolveContent picks the content source: --file wins, then the positional
// argument, then stdin.
func (c *storeCommander) resolveContent(args []string) (string, error) {
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 2 {
		return args[1], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
