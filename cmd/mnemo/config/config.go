// Package configcmder provides the config command for managing persistent
// mnemo configuration stored in the .mnemo/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent mnemo configuration.

Configuration is stored as config.toml in the .mnemo/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values, and MNEMO_* environment variables sit between the two.

Keys use dotted notation matching the TOML section structure:
  vault.root, vault.default_category, vault.categories,
  log.format

Use subcommands to get, set, or list configuration values:
  mnemo config set <key> <value>    Set a configuration value
  mnemo config get <key>            Get a configuration value
  mnemo config list                 List all configuration values

Examples:
  mnemo config set vault.default_category projects
  mnemo config set vault.categories "system,personalities,projects,drafts"
  mnemo config get vault.root
  mnemo config list`

const configShortDesc string = "Manage persistent mnemo configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
