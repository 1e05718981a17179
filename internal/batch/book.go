package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/pkg/models"
)

// ErrBusy is returned when a batch operation is requested while another is
// still in flight. Exactly one batch operation may be active at a time.
var ErrBusy = errors.New("another batch operation is in progress")

// State is the booking state machine position:
// idle -> validating -> submitting -> {done | failed}. A failure returns
// to idle with the error message retained until the next action.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

// BookingClient submits booking requests to the backend.
type BookingClient interface {
	BookBatch(ctx context.Context, reqs []models.BookingRequest) ([]models.BookingOutcome, error)
	BookInvoice(ctx context.Context, req models.BookingRequest) (json.RawMessage, error)
}

// Booker validates a batch and submits it for booking.
type Booker struct {
	client BookingClient
	log    zerolog.Logger

	mu      sync.Mutex
	busy    bool
	state   State
	lastErr string
}

// NewBooker creates an idle Booker.
func NewBooker(client BookingClient) *Booker {
	return &Booker{
		client: client,
		state:  StateIdle,
		log:    logger.WithComponent("batch-booking"),
	}
}

// State returns the current state machine position.
func (b *Booker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// LastError returns the message of the most recent failure. It is cleared
// when the next operation starts.
func (b *Booker) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// BookAll validates every record and submits the whole batch in a single
// request.
//
// The precondition is batch-wide: any line item missing its description or
// category fails the entire call before any network request is sent. On
// success, the returned outcomes are index-aligned with the records; a
// per-invoice error outcome does not affect its siblings.
func (b *Booker) BookAll(ctx context.Context, records []models.InvoiceRecord) ([]models.BookingOutcome, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}

	if err := invoice.ValidateBookable(records); err != nil {
		b.fail(err)
		return nil, err
	}

	b.transition(StateSubmitting)
	b.log.Info().Int("invoices", len(records)).Msg("Submitting batch booking")

	outcomes, err := b.client.BookBatch(ctx, invoice.BookingPayload(records))
	if err != nil {
		b.fail(err)
		return nil, err
	}
	if len(outcomes) != len(records) {
		err := fmt.Errorf("backend returned %d outcomes for %d invoices", len(outcomes), len(records))
		b.fail(err)
		return nil, err
	}

	b.finish()

	booked := 0
	for _, o := range outcomes {
		if o.OK {
			booked++
		}
	}
	b.log.Info().
		Int("booked", booked).
		Int("failed", len(outcomes)-booked).
		Msg("Batch booking completed")

	return outcomes, nil
}

// BookOne validates and books a single record via the per-invoice endpoint,
// returning the raw booking confirmation.
func (b *Booker) BookOne(ctx context.Context, rec models.InvoiceRecord) (json.RawMessage, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}

	if err := invoice.ValidateBookable([]models.InvoiceRecord{rec}); err != nil {
		b.fail(err)
		return nil, err
	}

	b.transition(StateSubmitting)

	confirmation, err := b.client.BookInvoice(ctx, invoice.SingleBookingRequest(rec))
	if err != nil {
		b.fail(err)
		return nil, err
	}

	b.finish()
	return confirmation, nil
}

// begin claims the busy flag and enters validating, clearing any retained
// error from a previous failure.
func (b *Booker) begin() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.busy {
		return ErrBusy
	}
	b.busy = true
	b.state = StateValidating
	b.lastErr = ""
	return nil
}

func (b *Booker) transition(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

func (b *Booker) finish() {
	b.mu.Lock()
	b.state = StateDone
	b.busy = false
	b.mu.Unlock()
}

func (b *Booker) fail(err error) {
	b.log.Error().Err(err).Msg("Booking failed")
	b.mu.Lock()
	b.state = StateIdle
	b.lastErr = err.Error()
	b.busy = false
	b.mu.Unlock()
}
