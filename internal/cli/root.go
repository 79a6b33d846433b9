// Package cli wires the marketd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "marketd",
	Short: "marketd - NFT market settlement node",
	Long: `marketd runs a single-node settlement ledger for NFT trading: signed
order and offer execution, time-boxed auctions with anti-sniping
extension, and royalty and fee settlement. State lives in a local
key-value store; transaction history is archived to SQL.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
}
