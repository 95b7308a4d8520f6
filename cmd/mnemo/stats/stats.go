// Package statscmder provides the stats command for summarizing the vault.
package statscmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
	"github.com/mnemohq/mnemo/pkg/utils"
)

const statsLongDesc string = `Show vault statistics.

Aggregates the vault index: total entry count, total content size, the
configured categories, and the most-read memories.

Examples:
  mnemo stats`

const statsShortDesc string = "Show vault statistics"

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := cmdutil.NewRuntime(cmd)
			if err != nil {
				return err
			}
			return runStats(cmd.Context(), rt)
		},
	}

	return cmd
}

func runStats(ctx context.Context, rt *cmdutil.Runtime) error {
	stats, err := rt.Store.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render("Vault:     "), cliui.DimStyle.Render(rt.Store.Root()))
	fmt.Printf("  %s %d\n", cliui.KeyStyle.Render("Memories:  "), stats.TotalFiles)
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Total size:"), cliui.ValueStyle.Render(cliui.FormatBytes(stats.TotalSize)))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Categories:"), cliui.ValueStyle.Render(strings.Join(stats.Categories, ", ")))

	if len(stats.MostAccessed) == 0 {
		fmt.Println()
		return nil
	}

	fmt.Printf("\n  %s\n", cliui.HeaderStyle.Render("Most read"))
	for i, meta := range stats.MostAccessed {
		fmt.Printf("  %s %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.ValueStyle.Render(utils.Truncate(meta.RelativePath, 48)),
			cliui.DimStyle.Render(fmt.Sprintf("(%d reads)", meta.AccessCount)),
		)
	}

	fmt.Println()

	return nil
}
