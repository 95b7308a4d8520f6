package config

import (
	"fmt"
	"strings"
)

// Config represents the persistent mnemo configuration stored as config.toml
// in the .mnemo/ directory. The TOML layout uses sections for logical
// grouping.
type Config struct {
	Version int         `toml:"version"`
	Vault   VaultConfig `toml:"vault"`
	Log     LogConfig   `toml:"log"`
}

// VaultConfig holds vault layout settings.
type VaultConfig struct {
	// Root is the vault root directory. Empty means <dotdir>/vault.
	Root string `toml:"root,omitempty"`

	// DefaultCategory receives entries when commands omit --category.
	DefaultCategory string `toml:"default_category,omitempty"`

	// Categories are the directories guaranteed to exist after init.
	Categories []string `toml:"categories,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Format is "pretty" or "json". Pretty only applies on a terminal.
	Format string `toml:"format,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on
// *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"vault.root": {
		get: func(c *Config) string { return c.Vault.Root },
		set: func(c *Config, v string) error { c.Vault.Root = v; return nil },
	},
	"vault.default_category": {
		get: func(c *Config) string { return c.Vault.DefaultCategory },
		set: func(c *Config, v string) error { c.Vault.DefaultCategory = v; return nil },
	},
	"vault.categories": {
		get: func(c *Config) string { return strings.Join(c.Vault.Categories, ",") },
		set: func(c *Config, v string) error {
			var categories []string
			for _, part := range strings.Split(v, ",") {
				part = strings.TrimSpace(part)
				if part != "" {
					categories = append(categories, part)
				}
			}
			if len(categories) == 0 {
				return fmt.Errorf("invalid value for vault.categories: %q", v)
			}
			c.Vault.Categories = categories
			return nil
		},
	},
	"log.format": {
		get: func(c *Config) string { return c.Log.Format },
		set: func(c *Config, v string) error {
			if v != "pretty" && v != "json" {
				return fmt.Errorf("invalid value for log.format: %q (expected pretty or json)", v)
			}
			c.Log.Format = v
			return nil
		},
	},
}
