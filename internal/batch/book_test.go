package batch

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"invoicectl/internal/invoice"
	"invoicectl/pkg/models"
)

type fakeBookingClient struct {
	batchCalls  atomic.Int32
	singleCalls atomic.Int32
	outcomes    []models.BookingOutcome
	err         error
	block       chan struct{}
}

func (c *fakeBookingClient) BookBatch(ctx context.Context, reqs []models.BookingRequest) ([]models.BookingOutcome, error) {
	c.batchCalls.Add(1)
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.outcomes != nil {
		return c.outcomes, nil
	}
	outcomes := make([]models.BookingOutcome, len(reqs))
	for i := range outcomes {
		outcomes[i] = models.BookingOutcome{OK: true, Confirmation: json.RawMessage(`{"status":"booked"}`)}
	}
	return outcomes, nil
}

func (c *fakeBookingClient) BookInvoice(ctx context.Context, req models.BookingRequest) (json.RawMessage, error) {
	c.singleCalls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return json.RawMessage(`{"status":"booked"}`), nil
}

func completeRecord(number string) models.InvoiceRecord {
	return models.InvoiceRecord{
		Parsed: models.ParsedInvoice{InvoiceNumber: number, Supplier: "Acme", Date: "2024-01-10", Currency: "CHF"},
		LineItems: []models.LineItem{
			{Description: "Invoice Subtotal", Amount: 100, AccountCode: "200"},
		},
	}
}

func TestBookAllValidationFailureSendsNothing(t *testing.T) {
	client := &fakeBookingClient{}
	booker := NewBooker(client)

	records := []models.InvoiceRecord{completeRecord("A"), completeRecord("B")}
	records[0].LineItems[0].Description = ""

	_, err := booker.BookAll(context.Background(), records)
	if !errors.Is(err, invoice.ErrIncompleteLineItems) {
		t.Fatalf("got %v, want ErrIncompleteLineItems", err)
	}
	if client.batchCalls.Load() != 0 {
		t.Errorf("backend called %d times, want 0", client.batchCalls.Load())
	}
	if booker.State() != StateIdle {
		t.Errorf("state after failure: got %q, want idle", booker.State())
	}
	if booker.LastError() == "" {
		t.Error("failure message not retained")
	}
}

func TestBookAllMapsMixedOutcomesByIndex(t *testing.T) {
	client := &fakeBookingClient{outcomes: []models.BookingOutcome{
		{OK: true, Confirmation: json.RawMessage(`{"status":"booked"}`)},
		{Error: "duplicate"},
	}}
	booker := NewBooker(client)

	outcomes, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("A"), completeRecord("B")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !outcomes[0].OK {
		t.Errorf("invoice 1 should be booked: %+v", outcomes[0])
	}
	if outcomes[1].OK || outcomes[1].Error != "duplicate" {
		t.Errorf("invoice 2 should have failed independently: %+v", outcomes[1])
	}
	if booker.State() != StateDone {
		t.Errorf("state: got %q, want done", booker.State())
	}
	if booker.LastError() != "" {
		t.Errorf("unexpected retained error: %q", booker.LastError())
	}
}

func TestBookAllBackendErrorReturnsToIdle(t *testing.T) {
	client := &fakeBookingClient{err: errors.New("backend down")}
	booker := NewBooker(client)

	_, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("A")})
	if err == nil {
		t.Fatal("expected error")
	}
	if booker.State() != StateIdle {
		t.Errorf("state: got %q, want idle", booker.State())
	}
	if booker.LastError() != "backend down" {
		t.Errorf("retained message: got %q", booker.LastError())
	}

	// A later successful run clears the retained message.
	client.err = nil
	if _, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("A")}); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if booker.LastError() != "" {
		t.Errorf("message not cleared on next action: %q", booker.LastError())
	}
}

func TestBookAllOutcomeCountMismatchFails(t *testing.T) {
	client := &fakeBookingClient{outcomes: []models.BookingOutcome{{OK: true}}}
	booker := NewBooker(client)

	_, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("A"), completeRecord("B")})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestBookerRejectsConcurrentOperations(t *testing.T) {
	client := &fakeBookingClient{block: make(chan struct{})}
	booker := NewBooker(client)

	done := make(chan error, 1)
	go func() {
		_, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("A")})
		done <- err
	}()

	// Wait for the first operation to reach the backend.
	for booker.State() != StateSubmitting {
		time.Sleep(time.Millisecond)
	}

	if _, err := booker.BookAll(context.Background(), []models.InvoiceRecord{completeRecord("B")}); !errors.Is(err, ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}

	close(client.block)
	if err := <-done; err != nil {
		t.Fatalf("first operation failed: %v", err)
	}
	if client.batchCalls.Load() != 1 {
		t.Errorf("backend called %d times, want 1", client.batchCalls.Load())
	}
}

func TestBookOne(t *testing.T) {
	client := &fakeBookingClient{}
	booker := NewBooker(client)

	confirmation, err := booker.BookOne(context.Background(), completeRecord("A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(confirmation) != `{"status":"booked"}` {
		t.Errorf("confirmation: got %s", confirmation)
	}
	if client.singleCalls.Load() != 1 {
		t.Errorf("single endpoint called %d times, want 1", client.singleCalls.Load())
	}
}
