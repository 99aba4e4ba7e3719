package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// digitRepairs maps the letters a recognizer confuses for digits back to
// the digits they stand for. Applied only to tokens already believed to be
// numeric.
var digitRepairs = strings.NewReplacer(
	"O", "0", "o", "0",
	"S", "5", "s", "5",
	"B", "8",
	"l", "1", "I", "1",
)

var (
	dayFirstDateRegex   = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	currencyMarkerRegex = regexp.MustCompile(`(?i)^(?:₹|INR|Rs\.?)\s*`)
)

// ParseAmountValue converts a raw amount token to a float, tolerating
// misread digits, thousands separators and a stray currency marker.
func ParseAmountValue(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	v = currencyMarkerRegex.ReplaceAllString(v, "")
	v = digitRepairs.Replace(v)
	v = strings.ReplaceAll(v, ",", "")
	v = strings.ReplaceAll(v, " ", "")

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// AmountRule is a named, swappable correction applied to a raw parsed
// amount. The default rules are tuned to one regional metro ticket family;
// they are policy, not law, and callers may supply their own list.
type AmountRule struct {
	Name  string
	Apply func(v float64) (float64, bool)
}

// DefaultAmountRules returns the metro-ticket correction policy:
//
//   - currency-glyph-merge: a misread rupee glyph merges into the leading
//     digits and leaves values in the (200, 300) band; subtract 200.
//   - missing-decimal-point: fares on this network never reach triple
//     digits, so a value >= 100 lost its decimal point; divide by 10.
func DefaultAmountRules() []AmountRule {
	return []AmountRule{
		{
			Name: "currency-glyph-merge",
			Apply: func(v float64) (float64, bool) {
				if v > 200 && v < 300 {
					return v - 200, true
				}
				return v, false
			},
		},
		{
			Name: "missing-decimal-point",
			Apply: func(v float64) (float64, bool) {
				if v >= 100 {
					return v / 10, true
				}
				return v, false
			},
		},
	}
}

// CorrectAmount runs each rule over the raw value in order.
func CorrectAmount(v float64, rules []AmountRule) float64 {
	for _, rule := range rules {
		v, _ = rule.Apply(v)
	}
	return v
}

// ParseDayFirstDate finds the first D/M/Y token in s and builds a calendar
// date from it. Two-digit years are assumed to be in the 2000s. Impossible
// dates (month 13, day 32) are rejected rather than coerced.
func ParseDayFirstDate(s string) (time.Time, bool) {
	m := dayFirstDateRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	return MakeDate(year, month, day)
}

// MakeDate validates day/month/year by round-tripping through time.Date:
// out-of-range components normalize to a different day and are rejected.
func MakeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
