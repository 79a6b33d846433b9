package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load builds the configuration in priority order: defaults, then the TOML
// file at path, then MARKETD_-prefixed environment variables. An empty path
// skips the file step.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("MARKETD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.configPath = path

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// bindEnvKeys registers every known key so AutomaticEnv sees values for
// keys that appear in neither the defaults nor the file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"server.listen_addr",
		"ledger.backend", "ledger.path",
		"archive.backend", "archive.dsn",
		"market.gate_account", "market.fee_receiver", "market.fee_rate",
		"market.min_duration", "market.max_duration",
		"market.min_bid_increment_pct", "market.extension_window",
		"genesis_file", "log_level",
	} {
		v.BindEnv(key)
	}
}
