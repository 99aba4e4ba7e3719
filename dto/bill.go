package dto

import "time"

// BillRecord is the universal candidate/output type of the extraction
// pipeline. Every field is optional: a nil pointer means "not recovered",
// which is not the same as an empty value. Records are built fresh per
// extraction call and never mutated after construction.
type BillRecord struct {
	TicketNumber   *string    `json:"ticket_number,omitempty"`
	Amount         *float64   `json:"amount,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	Origin         *string    `json:"origin,omitempty"`
	Destination    *string    `json:"destination,omitempty"`
	EmissionsSaved *string    `json:"emissions_saved,omitempty"`
	RawText        *string    `json:"raw_text,omitempty"`
}

// HasAnyValue reports whether any semantic field was recovered. RawText is
// excluded on purpose: retained source text alone does not make a decode
// successful.
func (r BillRecord) HasAnyValue() bool {
	return r.TicketNumber != nil ||
		r.Amount != nil ||
		r.Date != nil ||
		r.Origin != nil ||
		r.Destination != nil ||
		r.EmissionsSaved != nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// FloatPtr returns a pointer to f.
func FloatPtr(f float64) *float64 { return &f }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
