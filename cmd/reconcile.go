package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/logger"
	"invoicectl/internal/reconciliation"
	"invoicectl/pkg/models"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile [statement.pdf]",
	Short: "Upload a bank statement for reconciliation",
	Long: `Upload a bank statement PDF to the backend, which matches its
transactions against known records. The report lists matched and unmatched
transactions; unmatched ones can then be booked by id with --book.

The last report is kept locally, so --book also works in a later
invocation than the upload. A successful booking moves the transaction to
the matched list of the stored report.`,
	Example: `  # Upload a statement and show the report
  invoicectl reconcile statement.pdf

  # Later: book an unmatched transaction from the last report
  invoicectl reconcile --book txn-42

  # Upload and immediately book one transaction
  invoicectl reconcile statement.pdf --book txn-42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().String("book", "", "Book the bank transaction with this id")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("reconcile")
	bookID, _ := cmd.Flags().GetString("book")

	if len(args) == 0 && bookID == "" {
		return fmt.Errorf("give a statement PDF to upload, --book with a transaction id, or both")
	}

	cfg, client, err := loadRuntime()
	if err != nil {
		return err
	}

	store, err := reconciliation.NewBoltStore(cfg.BatchDBPath)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer store.Close()

	ctx, cancel := commandContext(log)
	defer cancel()

	manager := reconciliation.NewManager(client)

	var report models.ReconciliationReport
	if len(args) == 1 {
		report, err = manager.Upload(ctx, args[0])
		if err != nil {
			return err
		}
	} else {
		// Booking only: continue from the last stored report.
		stored, err := store.Load()
		if err != nil {
			return err
		}
		manager.Restore(stored)
	}

	if bookID != "" {
		message, err := manager.Book(ctx, bookID)
		if err != nil {
			return fmt.Errorf("booking failed: %w", err)
		}
		fmt.Println(message)
		report = manager.Report()
	}

	if err := store.Save(manager.Report()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	if report.Filename == "" && len(report.Matched) == 0 && len(report.Unmatched) == 0 {
		return nil
	}
	return printJSON(report)
}
