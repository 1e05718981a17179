package invoice

import "invoicectl/pkg/models"

// ValidateBookable checks the booking precondition over an entire batch:
// every line item of every record must carry a description and either a
// category or a ledger account code. The first violation fails the whole
// batch before any network request is made.
func ValidateBookable(records []models.InvoiceRecord) error {
	if len(records) == 0 {
		return ErrEmptyBatch
	}
	for r, rec := range records {
		for i, li := range rec.LineItems {
			if li.Description == "" {
				return &ValidationError{Record: r, Item: i, Field: "description", Err: ErrIncompleteLineItems}
			}
			if li.Category == "" && li.AccountCode == "" {
				return &ValidationError{Record: r, Item: i, Field: "category", Err: ErrIncompleteLineItems}
			}
		}
	}
	return nil
}

// BookingPayload converts a batch of records into the index-aligned booking
// request list for /batch/book-invoices/.
func BookingPayload(records []models.InvoiceRecord) []models.BookingRequest {
	payload := make([]models.BookingRequest, len(records))
	for i, rec := range records {
		payload[i] = bookingRequest(rec)
	}
	return payload
}

func bookingRequest(rec models.InvoiceRecord) models.BookingRequest {
	items := make([]models.BookingLineItem, len(rec.LineItems))
	for i, li := range rec.LineItems {
		items[i] = models.BookingLineItem{
			Description: li.Description,
			Amount:      li.Amount,
			AccountCode: li.AccountCode,
			Category:    li.Category,
		}
	}
	return models.BookingRequest{
		InvoiceNumber: rec.Parsed.InvoiceNumber,
		Supplier:      rec.Parsed.Supplier,
		Date:          rec.Parsed.Date,
		DueDate:       rec.DueDate,
		CurrencyCode:  rec.Parsed.Currency,
		Total:         rec.Parsed.Total,
		VATRate:       rec.Parsed.VATRate,
		LineItems:     items,
	}
}

// SingleBookingRequest builds the /book-invoice/ payload for one record.
func SingleBookingRequest(rec models.InvoiceRecord) models.BookingRequest {
	return bookingRequest(rec)
}
