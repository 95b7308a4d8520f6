// Package listcmder provides the list command for showing the memories in
// a category.
package listcmder

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
)

const listLongDesc string = `List the memories in a category.

Shows indexed entries most recently touched first. Files in the category
directory that are not tracked by the vault index are not shown.

Examples:
  mnemo list
  mnemo list projects
  mnemo list personalities/technical`

const listShortDesc string = "List memories in a category"

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}

			category := ""
			if len(args) == 1 {
				category = args[0]
			}

			return runList(cmd.Context(), rt, category)
		},
	}

	return cmd
}

func runList(ctx context.Context, rt *cmdutil.Runtime, category string) error {
	entries, err := rt.Store.List(ctx, category)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("  %s\n", cliui.DimStyle.Render("No memories found."))
		return nil
	}

	// Size the name column to its widest entry.
	nameWidth := len("NAME")
	for _, meta := range entries {
		if n := len(path.Base(meta.RelativePath)); n > nameWidth {
			nameWidth = n
		}
	}

	fmt.Printf("\n  %s\n", cliui.HeaderStyle.Render(
		fmt.Sprintf("%-*s  %9s  %8s  %6s", nameWidth, "NAME", "SIZE", "AGE", "READS"),
	))

	for _, meta := range entries {
		fmt.Printf("  %-*s  %9s  %8s  %6d\n",
			nameWidth,
			path.Base(meta.RelativePath),
			cliui.FormatBytes(meta.Size),
			cliui.FormatAge(meta.LastUpdated),
			meta.AccessCount,
		)
	}

	fmt.Println()

	return nil
}
