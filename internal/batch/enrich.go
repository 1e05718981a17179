package batch

import (
	"context"

	"github.com/rs/zerolog"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// EnrichmentClient provides the optional AI enrichment calls.
type EnrichmentClient interface {
	CategorizeExpense(ctx context.Context, req models.CategorizeRequest) ([]models.CategorySuggestion, error)
	DescribeInvoice(ctx context.Context, req models.DescribeRequest) (string, error)
}

// Enricher applies category and description suggestions to a batch.
// Enrichment is best-effort: a failed call degrades to "no suggestions"
// for that record and is never surfaced as an error.
type Enricher struct {
	client EnrichmentClient
	log    zerolog.Logger
}

// NewEnricher creates an Enricher.
func NewEnricher(client EnrichmentClient) *Enricher {
	return &Enricher{
		client: client,
		log:    logger.WithComponent("batch-enrich"),
	}
}

// SuggestCategories fetches category suggestions for every record and
// reconciles them into a new record list, preserving user-chosen
// categories. allowed optionally restricts the suggestion vocabulary to
// the chart of expense accounts.
func (e *Enricher) SuggestCategories(ctx context.Context, records []models.InvoiceRecord, allowed []string) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, len(records))
	for i, rec := range records {
		req := models.CategorizeRequest{
			InvoiceNumber:     rec.Parsed.InvoiceNumber,
			Supplier:          rec.Parsed.Supplier,
			LineItems:         enrichmentItems(rec),
			AllowedCategories: allowed,
		}

		suggestions, err := e.client.CategorizeExpense(ctx, req)
		if err != nil {
			e.log.Warn().
				Err(err).
				Str("invoice_number", rec.Parsed.InvoiceNumber).
				Msg("Categorization unavailable, keeping record unchanged")
			out[i] = rec
			continue
		}

		out[i] = invoice.Reconcile(rec, invoice.SuggestionMap(suggestions))
	}
	return out
}

// DescribeAll fetches a generated description for every record. Categories
// and AI suggestions are untouched; failures leave the record unchanged.
func (e *Enricher) DescribeAll(ctx context.Context, records []models.InvoiceRecord) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, len(records))
	for i, rec := range records {
		req := models.DescribeRequest{
			Supplier:      rec.Parsed.Supplier,
			InvoiceNumber: rec.Parsed.InvoiceNumber,
			Date:          rec.Parsed.Date,
			Total:         rec.Parsed.Total,
			LineItems:     enrichmentItems(rec),
		}

		description, err := e.client.DescribeInvoice(ctx, req)
		if err != nil {
			e.log.Warn().
				Err(err).
				Str("invoice_number", rec.Parsed.InvoiceNumber).
				Msg("Description unavailable, keeping record unchanged")
			out[i] = rec
			continue
		}

		out[i] = invoice.Describe(rec, description)
	}
	return out
}

func enrichmentItems(rec models.InvoiceRecord) []models.BookingLineItem {
	items := make([]models.BookingLineItem, len(rec.LineItems))
	for i, li := range rec.LineItems {
		items[i] = models.BookingLineItem{Description: li.Description, Amount: li.Amount}
	}
	return items
}
