package invoice

import "invoicectl/pkg/models"

// Reconcile merges category suggestions into a record's line items and
// returns a new record; the input is never mutated.
//
// For each line item with a suggestion keyed by its current description,
// AISuggestedCategory is updated unconditionally, while Category is set
// only when it is empty or still equal to the previous suggestion. A
// category the user chose that differs from any prior suggestion is
// never overwritten.
func Reconcile(rec models.InvoiceRecord, suggestions map[string]string) models.InvoiceRecord {
	if len(suggestions) == 0 {
		return rec
	}

	items := make([]models.LineItem, len(rec.LineItems))
	for i, li := range rec.LineItems {
		suggested, ok := suggestions[li.Description]
		if ok && suggested != "" {
			if li.Category == "" || li.Category == li.AISuggestedCategory {
				li.Category = suggested
			}
			li.AISuggestedCategory = suggested
		}
		items[i] = li
	}

	rec.LineItems = items
	return rec
}

// Describe returns a new record with the invoice-level description
// replaced. Line items, their categories, and AI suggestions are carried
// over verbatim: description enrichment and categorization are independent
// and must not clobber each other's state.
func Describe(rec models.InvoiceRecord, description string) models.InvoiceRecord {
	rec.Description = description
	return rec
}

// SuggestionMap flattens a categorize response into a description-keyed
// lookup for Reconcile.
func SuggestionMap(suggestions []models.CategorySuggestion) map[string]string {
	m := make(map[string]string, len(suggestions))
	for _, s := range suggestions {
		m[s.Description] = s.Category
	}
	return m
}
