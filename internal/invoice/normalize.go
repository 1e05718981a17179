// Package invoice normalizes raw backend extraction results into editable
// invoice records and reconciles AI suggestions into them.
//
// Backends emit monetary fields as locale-formatted strings ("2'600.00",
// "2 600,00") and dates in several regional formats. Normalization never
// fails the caller: unparsable amounts become 0 and unparsable dates fall
// back to the current date, so one bad field cannot abort a whole batch.
package invoice

import (
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// dateLayouts in order of precedence. Dotted and slashed European formats
// first, then ISO, then RFC3339 timestamps.
var dateLayouts = []string{
	"02.01.2006",
	"02/01/2006",
	isoDate,
	time.RFC3339,
}

// ParseAmount converts a locale-formatted numeric string to a float64.
//
// Order is fixed: a decimal comma is mapped to "." first, then every rune
// that is not a digit, ".", or "-" is stripped. A comma counts as the
// decimal separator only when it is the last separator in the string and
// is followed by at most two digits; in that case any dot before it is a
// thousands separator and is removed, while any other comma is dropped by
// the strip. Returns 0 when the cleaned string does not parse; there is
// no error path.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		if i > strings.LastIndexByte(s, '.') && len(s)-i-1 <= 2 {
			s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
		}
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeDate parses a raw date string into canonical ISO form
// (YYYY-MM-DD). Recognized formats, in order: DD.MM.YYYY, DD/MM/YYYY,
// ISO, RFC3339. Day and month must be zero-padded; "1.2.2023" is not a
// valid date. On total failure it returns now formatted as ISO instead
// of an error: availability over correctness, a bad date must never abort
// the upload pipeline.
func NormalizeDate(raw string, now time.Time) string {
	s := strings.TrimSpace(raw)
	if s != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(isoDate)
			}
		}
	}
	return now.Format(isoDate)
}

// DueDate returns the canonical ISO date 30 calendar days after the given
// canonical ISO issue date, rolling over month and year boundaries. A
// non-canonical input is returned unchanged.
func DueDate(iso string) string {
	t, err := time.Parse(isoDate, iso)
	if err != nil {
		return iso
	}
	return t.AddDate(0, 0, 30).Format(isoDate)
}
