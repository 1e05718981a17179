package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/logger"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the current batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("clear")

		cfg, _, err := loadRuntime()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear batch: %w", err)
		}

		log.Info().Msg("Batch cleared")
		fmt.Println("Batch cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
