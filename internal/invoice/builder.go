package invoice

import (
	"time"

	"github.com/rs/zerolog"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// DefaultAccountCode is the ledger code seeded into default line items when
// no account has been chosen yet.
const DefaultAccountCode = "200"

// DefaultLineDescription is the description of the single seeded line item
// when the parser did not segment the invoice body.
const DefaultLineDescription = "Invoice Subtotal"

// Builder converts raw parsed-invoice payloads into normalized invoice
// records. Build never fails: a malformed payload yields a record with
// zeroed numeric fields rather than an error.
type Builder struct {
	accountCode string
	now         func() time.Time
	log         zerolog.Logger
}

// NewBuilder returns a Builder seeding line items with the given default
// ledger account code. An empty code falls back to DefaultAccountCode.
func NewBuilder(accountCode string) *Builder {
	if accountCode == "" {
		accountCode = DefaultAccountCode
	}
	return &Builder{
		accountCode: accountCode,
		now:         time.Now,
		log:         logger.WithComponent("invoice-builder"),
	}
}

// WithClock replaces the builder's time source, used by the date fallback.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build normalizes one raw extraction result into an invoice record.
//
// Every monetary and percentage field goes through ParseAmount, the issue
// date through NormalizeDate, and the due date is derived as issue + 30
// calendar days. When the backend supplied line items they seed the record
// with per-item amount normalization; otherwise exactly one default line
// item is created whose amount equals the normalized net subtotal.
func (b *Builder) Build(fileName string, raw models.RawParsedInvoice) models.InvoiceRecord {
	date := NormalizeDate(raw.Date, b.now())

	currency := raw.Currency
	if currency == "" {
		currency = "USD"
	}

	parsed := models.ParsedInvoice{
		Supplier:      raw.Supplier,
		Date:          date,
		InvoiceNumber: raw.InvoiceNumber,
		Total:         ParseAmount(raw.Total),
		VATRate:       ParseAmount(raw.VATRate),
		TaxableBase:   ParseAmount(raw.TaxableBase),
		DiscountTotal: ParseAmount(raw.DiscountTotal),
		VATAmount:     ParseAmount(raw.VATAmount),
		NetSubtotal:   ParseAmount(raw.NetSubtotal),
		Currency:      currency,
	}

	record := models.InvoiceRecord{
		FileName:  fileName,
		Parsed:    parsed,
		DueDate:   DueDate(date),
		LineItems: b.buildLineItems(raw, parsed),
	}

	b.log.Debug().
		Str("file", fileName).
		Str("invoice_number", parsed.InvoiceNumber).
		Str("supplier", parsed.Supplier).
		Float64("total", parsed.Total).
		Str("due_date", record.DueDate).
		Int("line_items", len(record.LineItems)).
		Msg("Built invoice record")

	return record
}

func (b *Builder) buildLineItems(raw models.RawParsedInvoice, parsed models.ParsedInvoice) []models.LineItem {
	if len(raw.LineItems) == 0 {
		return []models.LineItem{{
			Description: DefaultLineDescription,
			Amount:      parsed.NetSubtotal,
			AccountCode: b.accountCode,
			Category:    "",
		}}
	}

	items := make([]models.LineItem, 0, len(raw.LineItems))
	for _, li := range raw.LineItems {
		code := li.AccountCode
		if code == "" {
			code = b.accountCode
		}
		items = append(items, models.LineItem{
			Description: li.Description,
			Amount:      ParseAmount(li.Amount),
			AccountCode: code,
		})
	}
	return items
}
