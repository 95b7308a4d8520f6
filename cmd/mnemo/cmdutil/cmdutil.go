// Package cmdutil resolves shared flags, configuration, and logging into a
// ready-to-use vault store for mnemo subcommands.
package cmdutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mnemohq/mnemo/pkg/config"
	"github.com/mnemohq/mnemo/pkg/dotdir"
	"github.com/mnemohq/mnemo/pkg/logger"
	"github.com/mnemohq/mnemo/pkg/memory/vaultfs"
)

// Runtime bundles everything a vault-touching subcommand needs: the opened
// store, the resolved logger, and the viper instance behind both.
type Runtime struct {
	Store  *vaultfs.Store
	Logger *slog.Logger
	Viper  *viper.Viper
}

// NewRuntime resolves configuration with the standard precedence
// (flags > environment > config.toml > defaults), builds the logger, and
// opens the vault store.
func NewRuntime(cmd *cobra.Command) (*Runtime, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagVaultRoot,
		config.FlagDefaultCategory,
		config.FlagLogFormat,
	})

	log := NewLogger(v, debug)

	root := v.GetString("vault.root")
	if root == "" {
		root, err = dotdir.NewManager().VaultRoot(configDir)
		if err != nil {
			return nil, fmt.Errorf("resolving vault root: %w", err)
		}
	}

	store, err := vaultfs.New(vaultfs.Config{
		Root:            root,
		DefaultCategory: v.GetString("vault.default_category"),
		Categories:      v.GetStringSlice("vault.categories"),
		Logger:          log,
	})
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}

	return &Runtime{Store: store, Logger: log, Viper: v}, nil
}

// NewLogger builds the CLI logger from resolved config. A configured json
// format always wins; pretty output additionally requires stderr to be a
// terminal so piped output stays machine-readable.
func NewLogger(v *viper.Viper, debug bool) *slog.Logger {
	format := v.GetString("log.format")
	pretty := format != "json" && term.IsTerminal(int(os.Stderr.Fd()))

	return logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(format == "json"),
		logger.WithPretty(pretty),
		logger.WithWriter(os.Stderr),
	)
}
