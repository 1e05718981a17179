package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/batch"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Generate invoice descriptions for the current batch",
	Long: `Ask the backend to generate an invoice-level description for every
record in the current batch. Line item categories and recorded suggestions
are left untouched; a failed call leaves the affected record unchanged.`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("describe")

	cfg, client, err := loadRuntime()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Load()
	if err != nil {
		return err
	}
	if len(snap.Records) == 0 {
		return invoice.ErrEmptyBatch
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	enricher := batch.NewEnricher(client)
	snap.Records = enricher.DescribeAll(ctx, snap.Records)

	if err := store.Save(snap); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	log.Info().Int("invoices", len(snap.Records)).Msg("Descriptions applied")
	return printJSON(snap.Records)
}
