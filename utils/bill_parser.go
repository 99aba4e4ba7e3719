package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mayur-kachare/jagrut/dto"
)

// MinTicketLength is the shortest identifier accepted as a ticket number
// after cleaning. Shorter candidates are dropped, never padded.
const MinTicketLength = 6

// maxEmissionsGrams is the plausibility ceiling for an emissions-saved
// figure on a single metro journey. Larger parses lost their decimal point.
const maxEmissionsGrams = 2.0

var (
	ticketLabels      = []string{"ticket no", "ticket number", "bill no", "bill number", "invoice no", "receipt no"}
	amountLabels      = []string{"fare", "amount", "total"}
	dateLabels        = []string{"date", "dated"}
	originLabels      = []string{"from", "source", "origin"}
	destinationLabels = []string{"to", "destination"}
)

var (
	// Keyword fallback tolerates the usual misreadings of "ticket",
	// "bill" and "invoice".
	ticketKeywordRegex = regexp.MustCompile(`(?i)\b(?:ticket|tlcket|t1cket|bill|blll|b1ll|invoice|1nvoice|tkt)\b[\s:.#-]*(?:no|number|num|n0)?[\s:.#-]*([A-Za-z0-9]{6,})`)
	longAlnumRegex     = regexp.MustCompile(`[A-Za-z0-9]{8,}`)
	nonAlnumRegex      = regexp.MustCompile(`[^A-Za-z0-9]`)

	fromLineRegex = regexp.MustCompile(`(?im)^(?:from|source)\s*[:\-]\s*(.+)$`)
	toLineRegex   = regexp.MustCompile(`(?im)^(?:to|destination)\s*[:\-]\s*(.+)$`)

	// Tolerant inline search for route endpoints when no labeled line
	// survived recognition.
	fromAnywhereRegex = regexp.MustCompile(`(?i)\b(?:from|fr0m|frorn)\b[\s:]+([A-Za-z][A-Za-z .()&-]+)`)
	toAnywhereRegex   = regexp.MustCompile(`(?i)\b(?:to|t0)\b[\s:]+([A-Za-z][A-Za-z .()&-]+)`)

	locationAllowRegex = regexp.MustCompile(`[^A-Za-z0-9 .()&-]`)

	// An emissions figure the way a low-end camera reads it: digits with
	// the usual confusions (O for 0, S for 5, B for 8), an optional mass
	// unit in correct or misread spelling, and some rendering of "CO2".
	emissionsRegex = regexp.MustCompile(`(?i)\b([0-9OSB]+(?:[ \t]+[0-9OSB]+)*(?:\.[0-9OSB]+)?)[ \t]*(grams|gms|gm|gr|g|9m|q)?[ \t]*(c[o0]2|co₂)`)
)

// ParseBillText runs the OCR-side extraction pipeline over raw recognized
// text and returns the candidate record. It never fails: fields that
// cannot be recovered stay nil, except amount and date, which a paper
// ticket always carries and therefore default to zero and the current
// date.
func ParseBillText(raw string) dto.BillRecord {
	text := NormalizeText(raw)
	if text == "" {
		return dto.BillRecord{}
	}

	orphans := LocateOrphans(text)
	fields := BuildFieldMap(LabelOrphans(text))

	rec := dto.BillRecord{RawText: dto.StringPtr(text)}

	if v := extractTicketNumber(fields, text); v != "" {
		rec.TicketNumber = dto.StringPtr(v)
	}
	rec.Amount = dto.FloatPtr(extractAmount(fields, text, orphans))
	rec.Date = dto.TimePtr(extractDate(fields, text, orphans))

	if v, ok := extractLocation(fields, originLabels, text, fromLineRegex, fromAnywhereRegex); ok {
		rec.Origin = dto.StringPtr(v)
	}
	if v, ok := extractLocation(fields, destinationLabels, text, toLineRegex, toAnywhereRegex); ok {
		rec.Destination = dto.StringPtr(v)
	}
	if v, ok := extractEmissions(text); ok {
		rec.EmissionsSaved = dto.StringPtr(v)
	}

	return rec
}

// extractTicketNumber tries labeled lookup, then a misread-tolerant
// keyword match, then the first long alphanumeric run anywhere in text.
// Returns "" when every stage fails; the caller decides whether to
// synthesize a placeholder.
func extractTicketNumber(fields FieldMap, text string) string {
	for _, label := range ticketLabels {
		if v, ok := fields[label]; ok {
			cleaned := nonAlnumRegex.ReplaceAllString(v, "")
			if len(cleaned) >= MinTicketLength {
				return cleaned
			}
			// Too short to be an identifier: fall through.
		}
	}

	if m := ticketKeywordRegex.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}

	return longAlnumRegex.FindString(text)
}

// extractAmount tries labeled lookup, then a currency-marker pattern, then
// the orphan amount candidate, and defaults to zero. The parsed value goes
// through the correction rules in every case.
func extractAmount(fields FieldMap, text string, orphans OrphanValues) float64 {
	for _, label := range amountLabels {
		if v, ok := fields[label]; ok {
			if f, parsed := ParseAmountValue(v); parsed {
				return CorrectAmount(f, DefaultAmountRules())
			}
		}
	}

	if m := currencyAmountRegex.FindStringSubmatch(text); len(m) > 1 {
		if f, parsed := ParseAmountValue(m[1]); parsed {
			return CorrectAmount(f, DefaultAmountRules())
		}
	}

	if orphans.Amount != "" {
		if f, parsed := ParseAmountValue(orphans.Amount); parsed {
			return CorrectAmount(f, DefaultAmountRules())
		}
	}

	return 0
}

// extractDate tries labeled lookup, then any D/M/Y token in the text, then
// the orphan date candidate. An unrecoverable or impossible date falls back
// to the current date rather than propagating an error.
func extractDate(fields FieldMap, text string, orphans OrphanValues) time.Time {
	for _, label := range dateLabels {
		if v, ok := fields[label]; ok {
			if t, parsed := ParseDayFirstDate(v); parsed {
				return t
			}
		}
	}

	if t, parsed := ParseDayFirstDate(text); parsed {
		return t
	}
	if t, parsed := ParseDayFirstDate(orphans.Date); parsed {
		return t
	}

	return time.Now()
}

// extractLocation tries labeled lookup, a labeled-line pattern, then a
// misread-tolerant inline search.
func extractLocation(fields FieldMap, labels []string, text string, lineRe, anywhereRe *regexp.Regexp) (string, bool) {
	for _, label := range labels {
		if v, ok := fields[label]; ok {
			if c := CleanLocation(v); c != "" {
				return c, true
			}
		}
	}

	if m := lineRe.FindStringSubmatch(text); len(m) > 1 {
		if c := CleanLocation(m[1]); c != "" {
			return c, true
		}
	}

	if m := anywhereRe.FindStringSubmatch(text); len(m) > 1 {
		if c := CleanLocation(m[1]); c != "" {
			return c, true
		}
	}

	return "", false
}

// CleanLocation strips newlines, trailing commas and anything outside the
// station-name allow-list from a route endpoint value.
func CleanLocation(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.TrimRight(strings.TrimSpace(v), ",")
	v = locationAllowRegex.ReplaceAllString(v, "")
	v = hspaceRunRegex.ReplaceAllString(v, " ")
	return strings.TrimSpace(v)
}

// extractEmissions recovers the "you saved N g CO2" figure some networks
// print on tickets. Substituted characters are mapped back to digits; if
// the token carries no decimal point, the first internal whitespace run is
// treated as the misread separator. Values above the plausibility ceiling
// are divided by 10 until they fit.
func extractEmissions(text string) (string, bool) {
	m := emissionsRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	num := digitRepairs.Replace(m[1])
	if !strings.Contains(num, ".") {
		if i := strings.IndexAny(num, " \t"); i >= 0 {
			num = num[:i] + "." + strings.TrimLeft(num[i:], " \t")
		}
	}
	num = strings.ReplaceAll(num, " ", "")
	num = strings.ReplaceAll(num, "\t", "")

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return "", false
	}
	for v > maxEmissionsGrams {
		v /= 10
	}

	return fmt.Sprintf("%.2f g CO2", v), true
}
