package config

import "github.com/mnemohq/mnemo/pkg/memory/vaultfs"

const defaultLogFormat = "pretty"

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values. The vault root
// defaults to empty, which callers resolve to <dotdir>/vault.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Vault: VaultConfig{
			DefaultCategory: vaultfs.DefaultCategory,
			Categories:      vaultfs.DefaultCategories,
		},
		Log: LogConfig{
			Format: defaultLogFormat,
		},
	}
}
