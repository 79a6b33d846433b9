package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", "127.0.0.1:5005")

	v.SetDefault("ledger.backend", "pebble")
	v.SetDefault("ledger.path", "data/ledger")

	v.SetDefault("archive.backend", "sqlite")
	v.SetDefault("archive.dsn", "data/archive.db")

	// Genesis market parameters, used only on first bootstrap.
	v.SetDefault("market.fee_rate", 250)
	v.SetDefault("market.min_duration", 60)
	v.SetDefault("market.max_duration", 30*24*3600)
	v.SetDefault("market.min_bid_increment_pct", 5)
	v.SetDefault("market.extension_window", 600)

	v.SetDefault("log_level", "info")
}
