package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"invoicectl/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "invoicectl - batch invoice upload, enrichment, and Xero booking",
	Long: `invoicectl drives an invoice-processing backend from the command line:
upload PDF invoices for parsing, edit the resulting batch, enrich line items
with AI category and description suggestions, and book the batch to Xero.
It also uploads bank statements for reconciliation and books matched
transactions.

The current batch is kept locally between commands and discarded with
"invoicectl clear".`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("invoicectl executed")

		fmt.Println("invoicectl - invoice batch processing")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
