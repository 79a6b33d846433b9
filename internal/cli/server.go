package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Gravikko/nft-marketplace-sub000/internal/codec/address"
	"github.com/Gravikko/nft-marketplace-sub000/internal/config"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/ledger"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/tx"
	crypto "github.com/Gravikko/nft-marketplace-sub000/internal/crypto/common"
	"github.com/Gravikko/nft-marketplace-sub000/internal/server"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/archive"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"

	_ "github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv/leveldb"
	_ "github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv/pebble"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the market settlement node",
	Long: `Start marketd: opens the ledger store, bootstraps the market state on
first run, and serves the JSON-RPC API and the websocket event stream.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}
}

// custodyAccount is the market escrow account. It is derived from a fixed
// label, so no key for it exists and funds only move by transaction logic.
func custodyAccount() [20]byte {
	var id [20]byte
	h := crypto.Sha512Half([]byte("market.custody"))
	copy(id[:], h[:20])
	return id
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := kv.Open(cfg.Ledger.Backend, cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("open %s store at %s: %w", cfg.Ledger.Backend, cfg.Ledger.Path, err)
	}
	defer db.Close()

	led, err := ledger.Open(db)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	if err := bootstrap(led, cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	arch, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	if arch != nil {
		defer arch.Close()
	}

	hub := server.NewHub(logger)
	node := server.NewNode(led, tx.EngineConfig{MarketAccount: custodyAccount()}, arch, hub, logger)

	logger.Info("marketd starting",
		zap.String("ledger", cfg.Ledger.Backend),
		zap.String("archive", cfg.Archive.Backend),
		zap.String("listen", cfg.Server.ListenAddr),
	)
	return server.NewServer(node, cfg.Server.ListenAddr, logger).Run(ctx)
}

// bootstrap seeds the market state and genesis accounts on first run.
func bootstrap(led *ledger.Ledger, cfg *config.Config, logger *zap.Logger) error {
	done, err := tx.Bootstrapped(led)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	gate, err := address.Decode(cfg.Market.GateAccount)
	if err != nil {
		return err
	}
	feeReceiver, err := address.Decode(cfg.Market.FeeReceiver)
	if err != nil {
		return err
	}

	ms := tx.DefaultMarketState(gate, feeReceiver)
	ms.FeeRate = cfg.Market.FeeRate
	ms.MinDuration = cfg.Market.MinDuration
	ms.MaxDuration = cfg.Market.MaxDuration
	ms.MinBidIncrementPct = cfg.Market.MinBidIncrementPct
	ms.ExtensionWindow = cfg.Market.ExtensionWindow

	if err := tx.Bootstrap(led, ms); err != nil {
		return fmt.Errorf("bootstrap market state: %w", err)
	}

	accounts, err := cfg.LoadGenesis()
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		id, err := address.Decode(acct.Address)
		if err != nil {
			return fmt.Errorf("genesis account %s: %w", acct.Address, err)
		}
		if err := tx.FundAccount(led, id, acct.Balance, acct.Credit); err != nil {
			return fmt.Errorf("fund genesis account %s: %w", acct.Address, err)
		}
	}

	logger.Info("market state bootstrapped",
		zap.String("gateAccount", cfg.Market.GateAccount),
		zap.Int("genesisAccounts", len(accounts)),
	)
	return nil
}

func openArchive(ctx context.Context, cfg *config.Config) (archive.Archive, error) {
	switch cfg.Archive.Backend {
	case "sqlite":
		return archive.OpenSQLite(ctx, cfg.Archive.DSN)
	case "postgres":
		return archive.OpenPostgres(ctx, cfg.Archive.DSN)
	default:
		return nil, nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
