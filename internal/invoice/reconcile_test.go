package invoice

import (
	"testing"

	"invoicectl/pkg/models"
)

func recordWithItems(items ...models.LineItem) models.InvoiceRecord {
	return models.InvoiceRecord{
		FileName:  "test.pdf",
		LineItems: items,
	}
}

func TestReconcileFillsEmptyCategory(t *testing.T) {
	rec := recordWithItems(models.LineItem{Description: "Invoice Subtotal", Amount: 100})

	got := Reconcile(rec, map[string]string{"Invoice Subtotal": "Office Supplies"})

	li := got.LineItems[0]
	if li.Category != "Office Supplies" {
		t.Errorf("category: got %q, want Office Supplies", li.Category)
	}
	if li.AISuggestedCategory != "Office Supplies" {
		t.Errorf("ai_suggested_category: got %q, want Office Supplies", li.AISuggestedCategory)
	}
}

func TestReconcileNeverOverwritesUserCategory(t *testing.T) {
	// User chose "Travel" with no prior suggestion matching it.
	rec := recordWithItems(models.LineItem{Description: "Taxi", Category: "Travel"})

	got := Reconcile(rec, map[string]string{"Taxi": "Meals"})

	li := got.LineItems[0]
	if li.Category != "Travel" {
		t.Errorf("category: got %q, want user-set Travel preserved", li.Category)
	}
	if li.AISuggestedCategory != "Meals" {
		t.Errorf("ai_suggested_category: got %q, want Meals", li.AISuggestedCategory)
	}
}

func TestReconcileReplacesStaleSuggestion(t *testing.T) {
	// Category still equals the previous suggestion, so a new one may take over.
	rec := recordWithItems(models.LineItem{
		Description:         "Lunch",
		Category:            "Office Supplies",
		AISuggestedCategory: "Office Supplies",
	})

	got := Reconcile(rec, map[string]string{"Lunch": "Meals"})

	li := got.LineItems[0]
	if li.Category != "Meals" {
		t.Errorf("category: got %q, want Meals", li.Category)
	}
	if li.AISuggestedCategory != "Meals" {
		t.Errorf("ai_suggested_category: got %q, want Meals", li.AISuggestedCategory)
	}
}

func TestReconcileLeavesUnmatchedItemsAlone(t *testing.T) {
	rec := recordWithItems(models.LineItem{Description: "Unknown", Category: "Misc", AISuggestedCategory: "Misc"})

	got := Reconcile(rec, map[string]string{"Other": "Meals"})

	if got.LineItems[0] != rec.LineItems[0] {
		t.Errorf("item changed without a matching suggestion: %+v", got.LineItems[0])
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	rec := recordWithItems(models.LineItem{Description: "Invoice Subtotal"})

	_ = Reconcile(rec, map[string]string{"Invoice Subtotal": "Meals"})

	if rec.LineItems[0].Category != "" || rec.LineItems[0].AISuggestedCategory != "" {
		t.Errorf("input record mutated: %+v", rec.LineItems[0])
	}
}

func TestDescribePreservesCategoryState(t *testing.T) {
	rec := recordWithItems(models.LineItem{
		Description:         "Taxi",
		Category:            "Travel",
		AISuggestedCategory: "Meals",
	})

	got := Describe(rec, "December travel expenses")

	if got.Description != "December travel expenses" {
		t.Errorf("description: got %q", got.Description)
	}
	li := got.LineItems[0]
	if li.Category != "Travel" || li.AISuggestedCategory != "Meals" {
		t.Errorf("category state clobbered: %+v", li)
	}
}

func TestSuggestionMap(t *testing.T) {
	m := SuggestionMap([]models.CategorySuggestion{
		{Description: "Taxi", Category: "Travel"},
		{Description: "Lunch", Category: "Meals"},
	})
	if len(m) != 2 || m["Taxi"] != "Travel" || m["Lunch"] != "Meals" {
		t.Errorf("unexpected map: %v", m)
	}
}
