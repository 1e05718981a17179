package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/batch"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book the current batch to Xero",
	Long: `Validate the current batch and submit it to the accounting backend in a
single request.

Validation is batch-wide: every line item of every invoice must carry a
description and a category or account code, otherwise nothing is sent.
The backend answers per invoice; one invoice's failure does not affect the
others, and each outcome is reported at its invoice's position.`,
	Example: `  # Book the whole batch
  invoicectl book

  # Book a single invoice from the batch
  invoicectl book --invoice 2`,
	RunE: runBook,
}

func init() {
	rootCmd.AddCommand(bookCmd)

	bookCmd.Flags().Int("invoice", 0, "Book only this 1-based invoice instead of the whole batch")
}

func runBook(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("book")
	invoiceIdx, _ := cmd.Flags().GetInt("invoice")

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

	booker := batch.NewBooker(client)

	if invoiceIdx != 0 {
		if invoiceIdx < 1 || invoiceIdx > len(snap.Records) {
			return fmt.Errorf("invoice index %d out of range (batch has %d)", invoiceIdx, len(snap.Records))
		}
		confirmation, err := booker.BookOne(ctx, snap.Records[invoiceIdx-1])
		if err != nil {
			snap.LastError = err.Error()
			_ = store.Save(snap)
			return err
		}
		snap.LastError = ""
		if saveErr := store.Save(snap); saveErr != nil {
			log.Warn().Err(saveErr).Msg("Failed to save batch")
		}
		return printJSON(confirmation)
	}

	outcomes, err := booker.BookAll(ctx, snap.Records)
	if err != nil {
		snap.LastError = err.Error()
		_ = store.Save(snap)
		return err
	}

	snap.Outcomes = outcomes
	snap.LastError = ""
	if err := store.Save(snap); err != nil {
		return fmt.Errorf("failed to save outcomes: %w", err)
	}

	printOutcomes(snap.Records, outcomes)
	return nil
}

func printOutcomes(records []models.InvoiceRecord, outcomes []models.BookingOutcome) {
	for i, o := range outcomes {
		number := records[i].Parsed.InvoiceNumber
		if o.OK {
			fmt.Printf("#%d %s: booked\n", i+1, number)
		} else {
			fmt.Printf("#%d %s: FAILED: %s\n", i+1, number, o.Error)
		}
	}
}
