package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current batch",
	Long: `Print the current batch as JSON: records with their line items, the
outcomes of the last booking attempt, and the last error message, if any.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	if len(snap.Records) == 0 && snap.LastError == "" {
		fmt.Println("No batch loaded. Use \"invoicectl upload\" to start one.")
		return nil
	}

	return printJSON(snap)
}
