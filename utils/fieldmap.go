package utils

import (
	"regexp"
	"strings"
)

// FieldMap maps a canonical lowercase label (e.g. "ticket no", "fare") to
// the raw value string that followed it. It is built once per normalized
// text and consumed read-only by every field extractor. Later occurrences
// of a label overwrite earlier ones.
type FieldMap map[string]string

var (
	labeledLineRegex = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9 ]+?)\s*[:\-]\s*(\S.*)$`)
	bareLabelRegex   = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9 ]+?)\s*[:\-]\s*$`)
)

// labelRepairs undoes the misreadings cheap cameras produce on the handful
// of domain words that appear as ticket labels. Longer forms come first so
// they win over their substrings.
var labelRepairs = strings.NewReplacer(
	"tlcket", "ticket",
	"t1cket", "ticket",
	"ticke1", "ticket",
	"tickel", "ticket",
	"blll", "bill",
	"b1ll", "bill",
	"bi11", "bill",
	"1nvoice", "invoice",
	"lnvoice", "invoice",
	"invo1ce", "invoice",
	"rece1pt", "receipt",
	"am0unt", "amount",
	"amoun1", "amount",
	"t0tal", "total",
	"tota1", "total",
	"fane", "fare",
	"0ate", "date",
	"da1e", "date",
	"dale", "date",
	"fr0m", "from",
	"frorn", "from",
	"t0", "to",
	" n0", " no",
)

// NormalizeLabel lowercases a raw label, strips punctuation, collapses
// internal spacing and repairs known OCR misreadings so "T1CKET NO." and
// "ticket no" land on the same key.
func NormalizeLabel(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	label := hspaceRunRegex.ReplaceAllString(b.String(), " ")
	label = strings.TrimSpace(label)
	return labelRepairs.Replace(label)
}

// BuildFieldMap splits normalized text into lines and collects every
// "label separator value" pair. A line that is only a label ("Fare:")
// becomes pending and captures the following line as its value, provided
// that line is not itself labeled. Lines matching neither rule are left
// for later stages.
func BuildFieldMap(text string) FieldMap {
	fields := make(FieldMap)
	pending := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := bareLabelRegex.FindStringSubmatch(line); m != nil {
			pending = NormalizeLabel(m[1])
			continue
		}

		if m := labeledLineRegex.FindStringSubmatch(line); m != nil {
			if label := NormalizeLabel(m[1]); label != "" {
				fields[label] = strings.TrimSpace(m[2])
			}
			pending = ""
			continue
		}

		if pending != "" {
			fields[pending] = line
			pending = ""
		}
	}

	return fields
}
