// Package config loads and validates the marketd configuration from a TOML
// file, environment variables and built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the complete marketd configuration.
type Config struct {
	Server  ServerConfig  `toml:"server" mapstructure:"server"`
	Ledger  LedgerConfig  `toml:"ledger" mapstructure:"ledger"`
	Archive ArchiveConfig `toml:"archive" mapstructure:"archive"`
	Market  MarketConfig  `toml:"market" mapstructure:"market"`

	// GenesisFile points at a JSON file of accounts to fund when the
	// ledger is bootstrapped. Ignored once the market state exists.
	GenesisFile string `toml:"genesis_file" mapstructure:"genesis_file"`

	LogLevel string `toml:"log_level" mapstructure:"log_level"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr" mapstructure:"listen_addr"`
}

// LedgerConfig configures the state store.
type LedgerConfig struct {
	// Backend selects the key/value store, "pebble" or "leveldb".
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
}

// ArchiveConfig configures transaction history storage.
type ArchiveConfig struct {
	// Backend is "sqlite", "postgres" or "none".
	Backend string `toml:"backend" mapstructure:"backend"`
	// DSN is the sqlite file path or the postgres connection string.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// MarketConfig holds the genesis market parameters. They take effect only
// when the ledger is bootstrapped for the first time.
type MarketConfig struct {
	GateAccount        string `toml:"gate_account" mapstructure:"gate_account"`
	FeeReceiver        string `toml:"fee_receiver" mapstructure:"fee_receiver"`
	FeeRate            uint32 `toml:"fee_rate" mapstructure:"fee_rate"`
	MinDuration        uint64 `toml:"min_duration" mapstructure:"min_duration"`
	MaxDuration        uint64 `toml:"max_duration" mapstructure:"max_duration"`
	MinBidIncrementPct uint32 `toml:"min_bid_increment_pct" mapstructure:"min_bid_increment_pct"`
	ExtensionWindow    uint64 `toml:"extension_window" mapstructure:"extension_window"`
}

// GetConfigPath returns the path the configuration was loaded from, or ""
// when it came from defaults and environment only.
func (c *Config) GetConfigPath() string { return c.configPath }

// GenesisAccount is one account funded at bootstrap.
type GenesisAccount struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
	Credit  uint64 `json:"credit"`
}

// LoadGenesis reads the genesis accounts file named by the configuration.
// A missing GenesisFile yields no accounts.
func (c *Config) LoadGenesis() ([]GenesisAccount, error) {
	if c.GenesisFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.GenesisFile)
	if err != nil {
		return nil, fmt.Errorf("read genesis file: %w", err)
	}

	var accounts []GenesisAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse genesis file %s: %w", c.GenesisFile, err)
	}
	return accounts, nil
}
