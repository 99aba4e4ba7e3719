package utils

import (
	"regexp"
	"strings"
)

// OrphanValues are recognizable values that appear with no adjacent label:
// bare station names printed in capitals, bare dates, bare amounts. They
// are attributed by shape and line position, and serve both to relabel
// orphan lines and as direct fallbacks when the FieldMap has no entry.
type OrphanValues struct {
	Locations []string // in line order; first two are origin, destination
	Date      string
	Amount    string
}

var (
	orphanDateRegex     = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	currencyAmountRegex = regexp.MustCompile(`(?i)(?:INR|Rs\.?|₹)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	bareDecimalRegex    = regexp.MustCompile(`\b[0-9]{1,5}\.[0-9]{1,2}\b`)
	anyDigitRegex       = regexp.MustCompile(`[0-9]`)
	anyLetterRegex      = regexp.MustCompile(`[A-Za-z]`)
)

// boilerplateWords are shouting lines that look like station names but are
// really ticket boilerplate.
var boilerplateWords = map[string]bool{
	"ticket": true, "bill": true, "invoice": true, "receipt": true,
	"fare": true, "amount": true, "total": true, "date": true,
	"from": true, "to": true, "source": true, "destination": true,
	"metro": true, "rail": true, "railway": true, "corporation": true,
	"limited": true, "ltd": true, "gst": true, "cash": true, "token": true,
	"single": true, "journey": true, "thank": true, "you": true, "co": true,
}

// LocateOrphans scans normalized text for values without labels.
func LocateOrphans(text string) OrphanValues {
	var o OrphanValues

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if isLocationCandidate(line) {
			o.Locations = append(o.Locations, line)
		}
	}

	o.Date = orphanDateRegex.FindString(text)

	if m := currencyAmountRegex.FindStringSubmatch(text); len(m) > 1 {
		o.Amount = m[1]
	} else {
		o.Amount = bareDecimalRegex.FindString(text)
	}

	return o
}

// isLocationCandidate reports whether a line looks like a bare station
// name: all uppercase, at least 3 characters, no digits, and not ticket
// boilerplate.
func isLocationCandidate(line string) bool {
	if len(line) < 3 || line != strings.ToUpper(line) {
		return false
	}
	if anyDigitRegex.MatchString(line) || !anyLetterRegex.MatchString(line) {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(line)) {
		if !boilerplateWords[word] {
			return true
		}
	}
	return false
}

// LabelOrphans rewrites normalized text, prefixing synthesized labels onto
// lines holding orphan values so the FieldMap picks them up: the first two
// bare location lines become From/To, a bare date line becomes Date, a
// bare amount line becomes Fare. All other lines pass through unchanged.
func LabelOrphans(text string) string {
	locations := 0
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case isLocationCandidate(trimmed):
			if locations == 0 {
				line = "From : " + trimmed
			} else if locations == 1 {
				line = "To : " + trimmed
			}
			locations++
		case trimmed != "" && trimmed == orphanDateRegex.FindString(trimmed):
			line = "Date : " + trimmed
		case trimmed != "" && (trimmed == bareDecimalRegex.FindString(trimmed) ||
			trimmed == currencyAmountRegex.FindString(trimmed)):
			line = "Fare : " + trimmed
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
