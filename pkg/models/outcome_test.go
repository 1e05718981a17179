package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBookingOutcomeClassification(t *testing.T) {
	var outcomes []BookingOutcome
	body := `[{"id":"bk-1","status":"booked"},{"error":"duplicate invoice"},{"id":"bk-2"}]`
	if err := json.Unmarshal([]byte(body), &outcomes); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	if !outcomes[0].OK || outcomes[0].Error != "" {
		t.Errorf("outcome 0: %+v", outcomes[0])
	}
	if !strings.Contains(string(outcomes[0].Confirmation), "bk-1") {
		t.Errorf("confirmation 0: %s", outcomes[0].Confirmation)
	}

	if outcomes[1].OK || outcomes[1].Error != "duplicate invoice" {
		t.Errorf("outcome 1: %+v", outcomes[1])
	}
	if outcomes[1].Confirmation != nil {
		t.Errorf("failure kept confirmation: %s", outcomes[1].Confirmation)
	}

	if !outcomes[2].OK {
		t.Errorf("outcome 2: %+v", outcomes[2])
	}
}

func TestBookingOutcomeCopiesConfirmation(t *testing.T) {
	buf := []byte(`{"id":"bk-1"}`)

	var o BookingOutcome
	if err := o.UnmarshalJSON(buf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	copy(buf, `{"id":"XXXX"}`)
	if string(o.Confirmation) != `{"id":"bk-1"}` {
		t.Errorf("confirmation aliases the input buffer: %s", o.Confirmation)
	}
}

func TestBookingOutcomeEmptyErrorIsSuccess(t *testing.T) {
	var o BookingOutcome
	if err := json.Unmarshal([]byte(`{"error":"","id":"bk-3"}`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !o.OK {
		t.Errorf("empty error treated as failure: %+v", o)
	}
}
