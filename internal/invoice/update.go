package invoice

import "invoicectl/pkg/models"

// Field-level record edits. Every function returns a new record with the
// addressed element replaced wholesale; nested state is never mutated
// through a shallow copy. An out-of-range line item index is a no-op that
// returns the input unchanged. A user-set amount is never recomputed from
// parsed fields.

// SetDueDate replaces the record's due date.
func SetDueDate(rec models.InvoiceRecord, dueDate string) models.InvoiceRecord {
	rec.DueDate = dueDate
	return rec
}

// SetCurrency replaces the record's currency code.
func SetCurrency(rec models.InvoiceRecord, currency string) models.InvoiceRecord {
	rec.Parsed.Currency = currency
	return rec
}

// SetLineItemDescription replaces line item i's description.
// AISuggestedCategory is untouched by description edits.
func SetLineItemDescription(rec models.InvoiceRecord, i int, description string) models.InvoiceRecord {
	return replaceLineItem(rec, i, func(li models.LineItem) models.LineItem {
		li.Description = description
		return li
	})
}

// SetLineItemAmount replaces line item i's amount.
func SetLineItemAmount(rec models.InvoiceRecord, i int, amount float64) models.InvoiceRecord {
	return replaceLineItem(rec, i, func(li models.LineItem) models.LineItem {
		li.Amount = amount
		return li
	})
}

// SetLineItemAccountCode replaces line item i's ledger account code.
func SetLineItemAccountCode(rec models.InvoiceRecord, i int, code string) models.InvoiceRecord {
	return replaceLineItem(rec, i, func(li models.LineItem) models.LineItem {
		li.AccountCode = code
		return li
	})
}

// SetLineItemCategory replaces line item i's category. The AI suggestion
// is retained so the edit can still be compared against it.
func SetLineItemCategory(rec models.InvoiceRecord, i int, category string) models.InvoiceRecord {
	return replaceLineItem(rec, i, func(li models.LineItem) models.LineItem {
		li.Category = category
		return li
	})
}

func replaceLineItem(rec models.InvoiceRecord, i int, update func(models.LineItem) models.LineItem) models.InvoiceRecord {
	if i < 0 || i >= len(rec.LineItems) {
		return rec
	}
	items := make([]models.LineItem, len(rec.LineItems))
	copy(items, rec.LineItems)
	items[i] = update(items[i])
	rec.LineItems = items
	return rec
}
