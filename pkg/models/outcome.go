package models

import "encoding/json"

// BookingOutcome is one element of a batch booking response. The backend
// returns, per invoice and index-aligned with the request, either a booking
// confirmation object or an error object of the form {"error": "..."}.
// A failed invoice does not affect its siblings' outcomes.
type BookingOutcome struct {
	// OK reports whether this invoice was booked.
	OK bool `json:"ok"`

	// Error carries the backend's per-invoice error message when OK is false.
	Error string `json:"error,omitempty"`

	// Confirmation holds the raw booking confirmation object when OK is true.
	Confirmation json.RawMessage `json:"confirmation,omitempty"`
}

// UnmarshalJSON classifies a response element: an object carrying a
// non-empty "error" member is a failure, anything else a confirmation.
func (o *BookingOutcome) UnmarshalJSON(b []byte) error {
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if probe.Error != "" {
		*o = BookingOutcome{Error: probe.Error}
		return nil
	}
	// Unmarshaler contract: the input slice may be reused by the caller.
	*o = BookingOutcome{OK: true, Confirmation: append(json.RawMessage(nil), b...)}
	return nil
}
