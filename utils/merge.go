package utils

import (
	"time"

	"github.com/mayur-kachare/jagrut/dto"
)

// UnknownLocation fills a route endpoint neither input recovered.
const UnknownLocation = "Unknown"

// QROnlyMarker is stored in RawText when recognition produced nothing and
// the record was rebuilt from a QR payload alone.
const QROnlyMarker = "[no recognized text: QR payload only]"

// MergeRecords combines the OCR-derived and QR-derived candidates under a
// fixed precedence. The QR payload is authoritative for ticket number,
// amount and date; recognized text is authoritative for the route
// endpoints, since payloads rarely carry readable route text. A field
// present in either input is never lost.
func MergeRecords(ocr, qr dto.BillRecord) dto.BillRecord {
	merged := dto.BillRecord{
		TicketNumber:   firstString(qr.TicketNumber, ocr.TicketNumber),
		Amount:         firstFloat(qr.Amount, ocr.Amount),
		Date:           firstTime(qr.Date, ocr.Date),
		Origin:         firstString(ocr.Origin, qr.Origin),
		Destination:    firstString(ocr.Destination, qr.Destination),
		EmissionsSaved: firstString(ocr.EmissionsSaved, qr.EmissionsSaved),
	}

	if merged.Origin == nil {
		merged.Origin = dto.StringPtr(UnknownLocation)
	}
	if merged.Destination == nil {
		merged.Destination = dto.StringPtr(UnknownLocation)
	}

	if ocr.RawText != nil {
		merged.RawText = ocr.RawText
	} else {
		merged.RawText = dto.StringPtr(QROnlyMarker)
	}

	return merged
}

func firstString(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

func firstFloat(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func firstTime(a, b *time.Time) *time.Time {
	if a != nil {
		return a
	}
	return b
}
