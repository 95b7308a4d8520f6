// Package getcmder provides the get command for reading a memory out of
// the vault.
package getcmder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mnemohq/mnemo/cmd/mnemo/cmdutil"
	"github.com/mnemohq/mnemo/pkg/cliui"
	"github.com/mnemohq/mnemo/pkg/memory"
)

const getLongDesc string = `Retrieve a memory from the vault.

Prints the memory's content to stdout. Every retrieval counts as a read:
the entry's access count goes up and its last-updated time is refreshed.

Examples:
  mnemo get greeting
  mnemo get api-notes -c projects
  mnemo get api-notes -c projects --render
  mnemo get greeting --meta`

const getShortDesc string = "Retrieve a memory"

type getCommander struct {
	category string
	meta     bool
	render   bool
}

func NewGetCmd() *cobra.Command {
	cmder := &getCommander{}

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: getShortDesc,
		Long:  getLongDesc,
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
	cmd.Flags().BoolVar(&cmder.meta, "meta", false, "Show the entry's metadata after the content")
	cmd.Flags().BoolVar(&cmder.render, "render", false, "Render the content as markdown")

	return cmd
}

func (c *getCommander) run(ctx context.Context, rt *cmdutil.Runtime, name string) error {
	entry, err := rt.Store.Retrieve(ctx, name, c.category)
	if err != nil {
		return err
	}

	if c.render {
		rendered, err := renderMarkdown(entry.Content)
		if err != nil {
			// Fall back to plain text if glamour fails
			fmt.Println(entry.Content)
		} else {
			fmt.Print(rendered)
		}
	} else {
		fmt.Println(entry.Content)
	}

	if c.meta {
		printMetadata(&entry.Metadata)
	}

	return nil
}

func printMetadata(meta *memory.Metadata) {
	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("path:   "), cliui.ValueStyle.Render(meta.RelativePath))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("hash:   "), cliui.DimStyle.Render(meta.ContentHash))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("size:   "), cliui.ValueStyle.Render(cliui.FormatBytes(meta.Size)))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("updated:"), cliui.ValueStyle.Render(cliui.FormatAge(meta.LastUpdated)))
	fmt.Printf("  %s  %s\n\n", cliui.KeyStyle.Render("reads:  "), cliui.ValueStyle.Render(fmt.Sprintf("%d", meta.AccessCount)))
}

// renderMarkdown renders markdown content for terminal display using glamour.
func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	return r.Render(content)
}
