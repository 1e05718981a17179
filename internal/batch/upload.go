// Package batch drives the batch lifecycle: concurrent upload and parse of
// invoice files, suggestion enrichment, validation, and booking. The batch
// itself is a single state slot held in the local store; every transition
// replaces it wholesale.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// Parser extracts structured data from one invoice file.
type Parser interface {
	ProcessInvoice(ctx context.Context, fileName string, r io.Reader) (models.RawParsedInvoice, error)
}

// Uploader fans out one parse request per file and reassembles the records
// in input order.
type Uploader struct {
	parser  Parser
	builder *invoice.Builder
	open    func(string) (io.ReadCloser, error)
	log     zerolog.Logger
}

// NewUploader creates an Uploader reading files from the local filesystem.
func NewUploader(parser Parser, builder *invoice.Builder) *Uploader {
	return &Uploader{
		parser:  parser,
		builder: builder,
		open:    func(path string) (io.ReadCloser, error) { return os.Open(path) },
		log:     logger.WithComponent("batch-upload"),
	}
}

// UploadAll parses every file concurrently, without a concurrency cap, and
// places each record at its input index regardless of completion order.
//
// An empty file list fails before any request is issued. The failure policy
// is abort-the-whole-batch: the first file error cancels the remaining
// requests' context and is returned as the single batch-level error, with
// no partial result.
func (u *Uploader) UploadAll(ctx context.Context, files []string) ([]models.InvoiceRecord, error) {
	if len(files) == 0 {
		return nil, invoice.ErrNoFiles
	}

	u.log.Info().Int("files", len(files)).Msg("Starting batch upload")

	records := make([]models.InvoiceRecord, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			name := filepath.Base(path)

			f, err := u.open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			defer f.Close()

			raw, err := u.parser.ProcessInvoice(ctx, name, f)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			records[i] = u.builder.Build(name, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		u.log.Error().Err(err).Msg("Batch upload aborted")
		return nil, err
	}

	u.log.Info().Int("records", len(records)).Msg("Batch upload completed")
	return records, nil
}
