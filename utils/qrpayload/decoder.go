// Package qrpayload turns raw scanned QR/barcode payload strings into
// candidate bill records. The payloads follow several undocumented,
// overlapping encodings (JSON, key=value text, a custom segmented format),
// so decoding is a fixed cascade of format-specific strategies: the first
// one producing any recognizable value wins, and an unrecognizable payload
// yields an empty record rather than an error.
package qrpayload

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mayur-kachare/jagrut/dto"
	"github.com/mayur-kachare/jagrut/utils"
)

// minTicketLength mirrors the OCR-side constraint: identifiers shorter
// than this after cleaning are dropped, not padded.
const minTicketLength = 6

var (
	kvPairRegex   = regexp.MustCompile(`([A-Za-z][A-Za-z0-9 _]*)\s*[:=]\s*([^;\n]+)`)
	nonAlnumRegex = regexp.MustCompile(`[^A-Za-z0-9]`)

	freeFareRegex   = regexp.MustCompile(`(?i)\b(?:fare|amount|amt|price)\b\s*[:=]?\s*(?:INR|Rs\.?|₹)?\s*([0-9]+(?:\.[0-9]+)?)`)
	freeTicketRegex = regexp.MustCompile(`(?i)\b(?:ticket|bill|tkt|invoice)\b\s*(?:no|number|num)?\s*[:=#]?\s*([A-Za-z0-9]{6,})`)
	freeFromRegex   = regexp.MustCompile(`(?i)\bfrom\b\s*[:=]?\s*([A-Za-z][A-Za-z .]*[A-Za-z])`)
	freeToRegex     = regexp.MustCompile(`(?i)\bto\b\s*[:=]?\s*([A-Za-z][A-Za-z .]*[A-Za-z])`)
	toCutRegex      = regexp.MustCompile(`(?i)\s+to\b.*$`)
)

// Decoder classifies raw payload strings and extracts bill fields from
// them. It holds only the immutable station table and is safe for
// concurrent use.
type Decoder struct {
	stations StationMap
}

// NewDecoder builds a Decoder around the given station table; nil selects
// the defaults.
func NewDecoder(stations StationMap) *Decoder {
	if stations == nil {
		stations = DefaultStations()
	}
	return &Decoder{stations: stations}
}

// Decode runs the strategy cascade over one payload. It never fails; the
// worst case is an empty record.
func (d *Decoder) Decode(payload string) dto.BillRecord {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return dto.BillRecord{}
	}

	strategies := []func(string) dto.BillRecord{
		d.decodeJSON,
		d.decodeKeyValue,
		d.decodeSegmented,
		d.decodeFreeText,
	}
	for _, decode := range strategies {
		if rec := decode(payload); rec.HasAnyValue() {
			return rec
		}
	}
	return dto.BillRecord{}
}

// decodeJSON handles payloads that are a JSON object. Parse failures fall
// through silently to the next strategy.
func (d *Decoder) decodeJSON(payload string) dto.BillRecord {
	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return dto.BillRecord{}
	}

	fields := make(map[string]string, len(obj))
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			fields[canonicalKey(key)] = v
		case float64:
			fields[canonicalKey(key)] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return recordFromFields(fields)
}

// decodeKeyValue handles "label:value" / "label=value" text with pairs
// separated by semicolons or newlines.
func (d *Decoder) decodeKeyValue(payload string) dto.BillRecord {
	if !strings.ContainsAny(payload, ":=") {
		return dto.BillRecord{}
	}

	fields := make(map[string]string)
	for _, m := range kvPairRegex.FindAllStringSubmatch(payload, -1) {
		fields[canonicalKey(m[1])] = strings.TrimSpace(m[2])
	}
	return recordFromFields(fields)
}

// decodeFreeText is the last resort: keyword-adjacent matches anywhere in
// the raw payload. Dates in this family are written day-first.
func (d *Decoder) decodeFreeText(payload string) dto.BillRecord {
	var rec dto.BillRecord

	if m := freeTicketRegex.FindStringSubmatch(payload); len(m) > 1 {
		rec.TicketNumber = dto.StringPtr(m[1])
	}
	if m := freeFareRegex.FindStringSubmatch(payload); len(m) > 1 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 {
			rec.Amount = dto.FloatPtr(v)
		}
	}
	if t, ok := utils.ParseDayFirstDate(payload); ok {
		rec.Date = dto.TimePtr(t)
	}
	if m := freeFromRegex.FindStringSubmatch(payload); len(m) > 1 {
		// "from X to Y" captures through Y; cut at the "to" keyword.
		origin := toCutRegex.ReplaceAllString(m[1], "")
		if origin = strings.TrimSpace(origin); origin != "" {
			rec.Origin = dto.StringPtr(origin)
		}
	}
	if m := freeToRegex.FindStringSubmatch(payload); len(m) > 1 {
		rec.Destination = dto.StringPtr(strings.TrimSpace(m[1]))
	}

	return rec
}

// recordFromFields applies the shared field-synonym lookup used by the
// JSON and key-value strategies.
func recordFromFields(fields map[string]string) dto.BillRecord {
	var rec dto.BillRecord

	for _, key := range []string{"billnumber", "billno", "ticketnumber", "ticketno", "ticket", "id"} {
		if v, ok := fields[key]; ok {
			if id := cleanIdentifier(v); len(id) >= minTicketLength {
				rec.TicketNumber = dto.StringPtr(id)
				break
			}
		}
	}

	for _, key := range []string{"amount", "fare", "total", "price"} {
		if v, ok := fields[key]; ok {
			v = strings.TrimSpace(v)
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
				rec.Amount = dto.FloatPtr(f)
				break
			}
		}
	}

	for _, key := range []string{"date", "timestamp"} {
		if v, ok := fields[key]; ok {
			if t, parsed := parseFlexibleDate(v); parsed {
				rec.Date = dto.TimePtr(t)
				break
			}
		}
	}

	for _, key := range []string{"from", "source", "origin"} {
		if v, ok := fields[key]; ok && strings.TrimSpace(v) != "" {
			rec.Origin = dto.StringPtr(strings.TrimSpace(v))
			break
		}
	}
	for _, key := range []string{"to", "destination"} {
		if v, ok := fields[key]; ok && strings.TrimSpace(v) != "" {
			rec.Destination = dto.StringPtr(strings.TrimSpace(v))
			break
		}
	}

	return rec
}

// canonicalKey lowercases a field name and drops spaces and underscores,
// so "Bill_No", "bill no" and "billNo" collapse to one synonym.
func canonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "")
	return strings.ReplaceAll(key, "_", "")
}

// cleanIdentifier strips everything but letters and digits.
func cleanIdentifier(v string) string {
	return nonAlnumRegex.ReplaceAllString(v, "")
}

// parseFlexibleDate accepts the date spellings observed across payloads:
// ISO, day-first slash/dash forms, RFC3339, and epoch seconds.
func parseFlexibleDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	if t, ok := utils.ParseDayFirstDate(v); ok {
		return t, true
	}
	if len(v) >= 10 && digitsRegex.MatchString(v) {
		return parseEpochSeconds(v)
	}
	return time.Time{}, false
}
