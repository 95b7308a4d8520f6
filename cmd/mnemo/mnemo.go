// Package mnemocmder
package mnemocmder

import (
	"github.com/spf13/cobra"

	appendcmder "github.com/mnemohq/mnemo/cmd/mnemo/append"
	browsecmder "github.com/mnemohq/mnemo/cmd/mnemo/browse"
	clearcmder "github.com/mnemohq/mnemo/cmd/mnemo/clear"
	configcmder "github.com/mnemohq/mnemo/cmd/mnemo/config"
	getcmder "github.com/mnemohq/mnemo/cmd/mnemo/get"
	listcmder "github.com/mnemohq/mnemo/cmd/mnemo/list"
	rmcmder "github.com/mnemohq/mnemo/cmd/mnemo/rm"
	statscmder "github.com/mnemohq/mnemo/cmd/mnemo/stats"
	storecmder "github.com/mnemohq/mnemo/cmd/mnemo/store"
	watchcmder "github.com/mnemohq/mnemo/cmd/mnemo/watch"
	versioncmder "github.com/mnemohq/mnemo/cmd/version"
	"github.com/mnemohq/mnemo/pkg/config"
)

const mnemoLongDesc string = `Mnemo is a persistent memory vault for agents and humans.

Memories are named text files grouped under category subpaths, with
per-entry metadata (content hash, size, last updated, access count)
tracked in a vault index that survives restarts.

Common commands:
  mnemo store <name> [content]   Store a memory
  mnemo get <name>               Retrieve a memory
  mnemo list [category]          List memories in a category
  mnemo browse                   Browse the vault interactively`

const mnemoShortDesc string = "Mnemo - Persistent Memory Vault"

func NewMnemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemo",
		Short: mnemoShortDesc,
		Long:  mnemoLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .mnemo/ directory location")

	var vaultRoot, defaultCategory, logFormat string
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagVaultRoot, &vaultRoot)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagDefaultCategory, &defaultCategory)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagLogFormat, &logFormat)

	// Add subcommands
	cmd.AddCommand(storecmder.NewStoreCmd())
	cmd.AddCommand(getcmder.NewGetCmd())
	cmd.AddCommand(appendcmder.NewAppendCmd())
	cmd.AddCommand(rmcmder.NewRmCmd())
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(clearcmder.NewClearCmd())
	cmd.AddCommand(browsecmder.NewBrowseCmd())
	cmd.AddCommand(watchcmder.NewWatchCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
