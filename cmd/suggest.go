package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/batch"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Fetch AI category suggestions for the current batch",
	Long: `Ask the backend to suggest an expense category for every line item of
every record in the current batch.

Suggestions never overwrite a category you chose yourself: a category is
only filled in while it is empty or still equal to the previous suggestion.
The latest suggestion is always recorded per item so a later edit can be
compared against it. A failed suggestion call leaves the affected record
unchanged; it is not an error.`,
	Example: `  # Suggest freely
  invoicectl suggest

  # Restrict suggestions to the chart of expense accounts
  invoicectl suggest --from-accounts`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().Bool("from-accounts", false, "Restrict suggestions to expense account names")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("suggest")
	fromAccounts, _ := cmd.Flags().GetBool("from-accounts")

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

	var allowed []string
	if fromAccounts {
		accounts, err := client.ExpenseAccounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list expense accounts: %w", err)
		}
		allowed = make([]string, len(accounts))
		for i, a := range accounts {
			allowed[i] = a.Name
		}
	}

	enricher := batch.NewEnricher(client)
	snap.Records = enricher.SuggestCategories(ctx, snap.Records, allowed)

	if err := store.Save(snap); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	log.Info().Int("invoices", len(snap.Records)).Msg("Suggestions applied")
	return printJSON(snap.Records)
}
