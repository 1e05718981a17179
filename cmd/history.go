package cmd

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the backend message history for a client",
	Long: `Fetch the backend's message history for a client and print it, or
export it to a CSV file with timestamp, role, and content columns.`,
	Example: `  invoicectl history
  invoicectl history --client-id acme --csv history.csv`,
	RunE: runHistory,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a client's backend context",
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(summarizeCmd)

	historyCmd.Flags().String("client-id", "", "Client id (default: configured INVOICE_CLIENT_ID)")
	historyCmd.Flags().String("csv", "", "Export to this CSV file instead of printing")

	summarizeCmd.Flags().String("client-id", "", "Client id (default: configured INVOICE_CLIENT_ID)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("history")
	clientID, _ := cmd.Flags().GetString("client-id")
	csvPath, _ := cmd.Flags().GetString("csv")

	_, client, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	messages, err := client.MessageHistory(ctx, clientID)
	if err != nil {
		return err
	}

	if csvPath != "" {
		if err := writeHistoryCSV(csvPath, messages); err != nil {
			return err
		}
		log.Info().Str("file", csvPath).Int("messages", len(messages)).Msg("History exported")
		fmt.Printf("Exported %d messages to %s\n", len(messages), csvPath)
		return nil
	}

	return printJSON(messages)
}

func writeHistoryCSV(path string, messages []models.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "role", "content"}); err != nil {
		return err
	}
	for _, m := range messages {
		if err := w.Write([]string{m.Timestamp, m.Role, m.Content}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summarize")
	clientID, _ := cmd.Flags().GetString("client-id")

	_, client, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(log)
	defer cancel()

	summary, err := client.SummarizeContext(ctx, clientID)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}
