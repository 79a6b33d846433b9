package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
)

func testAddress(b byte) string {
	var id [20]byte
	id[0] = b
	return address.Encode(id)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marketd.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func minimalConfig(t *testing.T) string {
	return writeConfig(t, `
[market]
gate_account = "`+testAddress(1)+`"
fee_receiver = "`+testAddress(2)+`"
`)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(minimalConfig(t))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:5005", cfg.Server.ListenAddr)
	require.Equal(t, "pebble", cfg.Ledger.Backend)
	require.Equal(t, "sqlite", cfg.Archive.Backend)
	require.Equal(t, uint32(250), cfg.Market.FeeRate)
	require.Equal(t, uint64(600), cfg.Market.ExtensionWindow)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[server]
listen_addr = "0.0.0.0:8080"

[ledger]
backend = "leveldb"
path = "/tmp/market-ledger"

[archive]
backend = "none"

[market]
gate_account = "`+testAddress(1)+`"
fee_receiver = "`+testAddress(2)+`"
fee_rate = 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.ListenAddr)
	require.Equal(t, "leveldb", cfg.Ledger.Backend)
	require.Equal(t, "/tmp/market-ledger", cfg.Ledger.Path)
	require.Equal(t, "none", cfg.Archive.Backend)
	require.Equal(t, uint32(100), cfg.Market.FeeRate)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, path, cfg.GetConfigPath())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("MARKETD_LEDGER_BACKEND", "leveldb")
	t.Setenv("MARKETD_LOG_LEVEL", "warn")

	cfg, err := Load(minimalConfig(t))
	require.NoError(t, err)

	require.Equal(t, "leveldb", cfg.Ledger.Backend)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestValidationFailures(t *testing.T) {
	cases := map[string]string{
		"bad ledger backend": `
[ledger]
backend = "bolt"

[market]
gate_account = "` + testAddress(1) + `"
fee_receiver = "` + testAddress(2) + `"
`,
		"missing gate account": `
[market]
fee_receiver = "` + testAddress(2) + `"
`,
		"malformed fee receiver": `
[market]
gate_account = "` + testAddress(1) + `"
fee_receiver = "nobody"
`,
		"fee rate above divisor": `
[market]
gate_account = "` + testAddress(1) + `"
fee_receiver = "` + testAddress(2) + `"
fee_rate = 10001
`,
		"inverted durations": `
[market]
gate_account = "` + testAddress(1) + `"
fee_receiver = "` + testAddress(2) + `"
min_duration = 100
max_duration = 10
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadGenesis(t *testing.T) {
	genesisPath := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(genesisPath, []byte(`[
		{"address": "`+testAddress(3)+`", "balance": 1000000, "credit": 500}
	]`), 0o644))

	path := writeConfig(t, `
genesis_file = "`+genesisPath+`"

[market]
gate_account = "`+testAddress(1)+`"
fee_receiver = "`+testAddress(2)+`"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	accounts, err := cfg.LoadGenesis()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, testAddress(3), accounts[0].Address)
	require.Equal(t, uint64(1_000_000), accounts[0].Balance)
	require.Equal(t, uint64(500), accounts[0].Credit)
}
