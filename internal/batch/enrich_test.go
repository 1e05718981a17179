package batch

import (
	"context"
	"errors"
	"testing"

	"invoicectl/pkg/models"
)

type fakeEnrichmentClient struct {
	suggestions map[string][]models.CategorySuggestion // keyed by invoice number
	catErr      error
	description string
	descErr     error
	catRequests []models.CategorizeRequest
}

func (c *fakeEnrichmentClient) CategorizeExpense(ctx context.Context, req models.CategorizeRequest) ([]models.CategorySuggestion, error) {
	c.catRequests = append(c.catRequests, req)
	if c.catErr != nil {
		return nil, c.catErr
	}
	return c.suggestions[req.InvoiceNumber], nil
}

func (c *fakeEnrichmentClient) DescribeInvoice(ctx context.Context, req models.DescribeRequest) (string, error) {
	if c.descErr != nil {
		return "", c.descErr
	}
	return c.description, nil
}

func enrichableRecord(number, description string) models.InvoiceRecord {
	return models.InvoiceRecord{
		Parsed: models.ParsedInvoice{InvoiceNumber: number, Supplier: "Acme"},
		LineItems: []models.LineItem{
			{Description: description, Amount: 100},
		},
	}
}

func TestSuggestCategoriesAppliesPerRecord(t *testing.T) {
	client := &fakeEnrichmentClient{suggestions: map[string][]models.CategorySuggestion{
		"INV-1": {{Description: "Invoice Subtotal", Category: "Office Supplies"}},
		"INV-2": {{Description: "Hosting", Category: "IT Services"}},
	}}
	enricher := NewEnricher(client)

	records := []models.InvoiceRecord{
		enrichableRecord("INV-1", "Invoice Subtotal"),
		enrichableRecord("INV-2", "Hosting"),
	}

	got := enricher.SuggestCategories(context.Background(), records, nil)

	if got[0].LineItems[0].Category != "Office Supplies" {
		t.Errorf("record 0 category: got %q", got[0].LineItems[0].Category)
	}
	if got[1].LineItems[0].Category != "IT Services" {
		t.Errorf("record 1 category: got %q", got[1].LineItems[0].Category)
	}
	if len(client.catRequests) != 2 {
		t.Fatalf("categorize calls: got %d, want 2", len(client.catRequests))
	}
	// Only description and amount travel to the categorizer.
	if client.catRequests[0].LineItems[0].AccountCode != "" {
		t.Errorf("account code leaked into categorize request")
	}
}

func TestSuggestCategoriesFailureIsSoft(t *testing.T) {
	client := &fakeEnrichmentClient{catErr: errors.New("service unavailable")}
	enricher := NewEnricher(client)

	records := []models.InvoiceRecord{enrichableRecord("INV-1", "Invoice Subtotal")}

	got := enricher.SuggestCategories(context.Background(), records, nil)

	if len(got) != 1 {
		t.Fatalf("records: got %d, want 1", len(got))
	}
	if got[0].LineItems[0].Category != "" || got[0].LineItems[0].AISuggestedCategory != "" {
		t.Errorf("record changed despite failure: %+v", got[0].LineItems[0])
	}
}

func TestSuggestCategoriesPassesAllowedList(t *testing.T) {
	client := &fakeEnrichmentClient{}
	enricher := NewEnricher(client)

	allowed := []string{"Office Supplies", "Travel"}
	enricher.SuggestCategories(context.Background(), []models.InvoiceRecord{enrichableRecord("INV-1", "x")}, allowed)

	if len(client.catRequests) != 1 || len(client.catRequests[0].AllowedCategories) != 2 {
		t.Fatalf("allowed categories not forwarded: %+v", client.catRequests)
	}
}

func TestDescribeAll(t *testing.T) {
	client := &fakeEnrichmentClient{description: "Monthly hosting invoice"}
	enricher := NewEnricher(client)

	rec := enrichableRecord("INV-1", "Hosting")
	rec.LineItems[0].Category = "IT Services"
	rec.LineItems[0].AISuggestedCategory = "IT Services"

	got := enricher.DescribeAll(context.Background(), []models.InvoiceRecord{rec})

	if got[0].Description != "Monthly hosting invoice" {
		t.Errorf("description: got %q", got[0].Description)
	}
	if got[0].LineItems[0].Category != "IT Services" || got[0].LineItems[0].AISuggestedCategory != "IT Services" {
		t.Errorf("category state clobbered: %+v", got[0].LineItems[0])
	}
}

func TestDescribeAllFailureIsSoft(t *testing.T) {
	client := &fakeEnrichmentClient{descErr: errors.New("service unavailable")}
	enricher := NewEnricher(client)

	got := enricher.DescribeAll(context.Background(), []models.InvoiceRecord{enrichableRecord("INV-1", "x")})

	if got[0].Description != "" {
		t.Errorf("description set despite failure: %q", got[0].Description)
	}
}
