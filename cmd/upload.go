package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"invoicectl/internal/batch"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [pdf-file...]",
	Short: "Upload and parse PDF invoices into a new batch",
	Long: `Upload one or more PDF invoices to the processing backend and build a
normalized invoice batch from the parsed results.

All files are uploaded concurrently; records keep the order the files were
given on the command line. If any single file fails, the whole batch is
aborted and nothing is kept. The new batch replaces any previous one.`,
	Example: `  # Start a batch from three invoices
  invoicectl upload a.pdf b.pdf c.pdf

  # Re-parse a single invoice into a fresh batch
  invoicectl upload invoice.pdf`,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("upload")

	cfg, client, err := loadRuntime()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := commandContext(log)
	defer cancel()

	uploader := batch.NewUploader(client, invoice.NewBuilder(cfg.DefaultAccountCode))

	records, err := uploader.UploadAll(ctx, args)
	if err != nil {
		if errors.Is(err, invoice.ErrNoFiles) {
			return fmt.Errorf("select at least one PDF")
		}
		// Batch aborted; clear stale records but keep the message.
		if saveErr := store.Save(batch.Snapshot{LastError: err.Error()}); saveErr != nil {
			log.Warn().Err(saveErr).Msg("Failed to record upload error")
		}
		return err
	}

	if err := store.Save(batch.Snapshot{Records: records}); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	log.Info().Int("invoices", len(records)).Msg("Batch ready")
	return printJSON(records)
}
