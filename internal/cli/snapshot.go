package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gravikko/nft-marketplace-sub000/internal/config"
	"github.com/Gravikko/nft-marketplace-sub000/internal/core/ledger"
	"github.com/Gravikko/nft-marketplace-sub000/internal/storage/kv"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save or restore a compressed snapshot of the ledger state",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Write the current ledger state to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		led, closeFn, err := openLedger()
		if err != nil {
			return err
		}
		defer closeFn()

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if err := led.WriteSnapshot(cmd.Context(), f); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		return f.Sync()
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Load ledger state from a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		led, closeFn, err := openLedger()
		if err != nil {
			return err
		}
		defer closeFn()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if err := led.RestoreSnapshot(cmd.Context(), f); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func openLedger() (*ledger.Ledger, func() error, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	db, err := kv.Open(cfg.Ledger.Backend, cfg.Ledger.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store at %s: %w", cfg.Ledger.Backend, cfg.Ledger.Path, err)
	}

	led, err := ledger.Open(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return led, db.Close, nil
}
