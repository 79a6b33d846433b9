package config

import (
	"fmt"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

// Validate checks the configuration for values the node cannot run with.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}

	switch cfg.Ledger.Backend {
	case "pebble", "leveldb":
	default:
		return fmt.Errorf("unknown ledger backend %q (supported: pebble, leveldb)", cfg.Ledger.Backend)
	}
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}

	switch cfg.Archive.Backend {
	case "sqlite", "postgres":
		if cfg.Archive.DSN == "" {
			return fmt.Errorf("archive.dsn is required for backend %q", cfg.Archive.Backend)
		}
	case "none":
	default:
		return fmt.Errorf("unknown archive backend %q (supported: sqlite, postgres, none)", cfg.Archive.Backend)
	}

	if cfg.Market.GateAccount == "" {
		return fmt.Errorf("market.gate_account is required")
	}
	if _, err := address.Decode(cfg.Market.GateAccount); err != nil {
		return fmt.Errorf("market.gate_account: %w", err)
	}
	if cfg.Market.FeeReceiver == "" {
		return fmt.Errorf("market.fee_receiver is required")
	}
	if _, err := address.Decode(cfg.Market.FeeReceiver); err != nil {
		return fmt.Errorf("market.fee_receiver: %w", err)
	}

	// Rates are basis points of the sale price.
	if cfg.Market.FeeRate > 10000 {
		return fmt.Errorf("market.fee_rate %d exceeds 10000 basis points", cfg.Market.FeeRate)
	}
	if cfg.Market.MinDuration > cfg.Market.MaxDuration {
		return fmt.Errorf("market.min_duration %d exceeds market.max_duration %d",
			cfg.Market.MinDuration, cfg.Market.MaxDuration)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return nil
}
