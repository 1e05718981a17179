package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a record or line item in the current batch",
	Long: `Edit fields of one invoice record, or of one of its line items, in the
current batch. Indices are 1-based batch positions as shown by "list".

Edits replace the addressed record wholesale; an amount set here is never
recomputed from the parsed invoice fields.`,
	Example: `  # Change the due date of invoice 2
  invoicectl edit --invoice 2 --due-date 2024-03-01

  # Set description and amount of line item 1 of invoice 1
  invoicectl edit --invoice 1 --item 1 --description "Consulting" --amount 1200.50

  # Pick a ledger account for a line item
  invoicectl edit --invoice 1 --item 1 --account-code 429`,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().Int("invoice", 0, "1-based invoice index in the batch (required)")
	editCmd.Flags().Int("item", 0, "1-based line item index within the invoice")
	editCmd.Flags().String("due-date", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().String("currency", "", "New currency code")
	editCmd.Flags().String("description", "", "New line item description")
	editCmd.Flags().Float64("amount", 0, "New line item amount")
	editCmd.Flags().String("account-code", "", "New line item ledger account code")
	editCmd.Flags().String("category", "", "New line item category")
	_ = editCmd.MarkFlagRequired("invoice")
}

func runEdit(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("edit")

	invoiceIdx, _ := cmd.Flags().GetInt("invoice")
	itemIdx, _ := cmd.Flags().GetInt("item")

	cfg, _, err := loadRuntime()
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
	if invoiceIdx < 1 || invoiceIdx > len(snap.Records) {
		return fmt.Errorf("invoice index %d out of range (batch has %d)", invoiceIdx, len(snap.Records))
	}

	rec := snap.Records[invoiceIdx-1]

	if v, _ := cmd.Flags().GetString("due-date"); v != "" {
		rec = invoice.SetDueDate(rec, v)
	}
	if v, _ := cmd.Flags().GetString("currency"); v != "" {
		rec = invoice.SetCurrency(rec, v)
	}

	if itemFlagsUsed(cmd) {
		if itemIdx < 1 || itemIdx > len(rec.LineItems) {
			return fmt.Errorf("line item index %d out of range (invoice has %d)", itemIdx, len(rec.LineItems))
		}
		i := itemIdx - 1
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			rec = invoice.SetLineItemDescription(rec, i, v)
		}
		if cmd.Flags().Changed("amount") {
			v, _ := cmd.Flags().GetFloat64("amount")
			rec = invoice.SetLineItemAmount(rec, i, v)
		}
		if cmd.Flags().Changed("account-code") {
			v, _ := cmd.Flags().GetString("account-code")
			rec = invoice.SetLineItemAccountCode(rec, i, v)
		}
		if cmd.Flags().Changed("category") {
			v, _ := cmd.Flags().GetString("category")
			rec = invoice.SetLineItemCategory(rec, i, v)
		}
	}

	records := make([]models.InvoiceRecord, len(snap.Records))
	copy(records, snap.Records)
	records[invoiceIdx-1] = rec
	snap.Records = records

	if err := store.Save(snap); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	log.Info().Int("invoice", invoiceIdx).Msg("Record updated")
	return printJSON(rec)
}

func itemFlagsUsed(cmd *cobra.Command) bool {
	for _, name := range []string{"description", "amount", "account-code", "category"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
