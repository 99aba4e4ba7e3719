package qrpayload

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mayur-kachare/jagrut/dto"
	"github.com/mayur-kachare/jagrut/utils"
)

// The segmented payload grammar is positional and undocumented: it was
// reverse-engineered from one family of metro-ticket QR codes and has to
// be treated as a frozen schema version. A payload holds one or more
// brace-delimited blocks; a block with 4+ pipe-delimited segments is the
// data block, a block with angle-bracket tokens is the route block.
// dataBlock names the meaningful positions so nothing else in the package
// indexes raw segments.

const minDataSegments = 4

var (
	braceBlockRegex = regexp.MustCompile(`\{[^{}]*\}`)
	angleTokenRegex = regexp.MustCompile(`<([^<>]+)>`)
	hexFloatRegex   = regexp.MustCompile(`^0[xX]([0-9a-fA-F]+)(?:\.([0-9a-fA-F]*))?[pP]([+-]?\d+)$`)
	alnumIDRegex    = regexp.MustCompile(`^[A-Za-z0-9]{10,}$`)
	digitsRegex     = regexp.MustCompile(`^[0-9]+$`)
	decimalRegex    = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)
	letterRegex     = regexp.MustCompile(`[A-Za-z]`)
)

type dataBlock struct {
	segs []string
}

func parseDataBlock(block string) (dataBlock, bool) {
	inner := strings.Trim(block, "{}")
	if !strings.Contains(inner, "|") {
		return dataBlock{}, false
	}
	segs := strings.Split(inner, "|")
	if len(segs) < minDataSegments {
		return dataBlock{}, false
	}
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}
	return dataBlock{segs: segs}, true
}

// Named accessors for the positional schema (version observed in the
// wild; positions are not self-describing).
func (b dataBlock) sequenceToken() string   { return b.seg(4) }
func (b dataBlock) originCode() string      { return b.seg(7) }
func (b dataBlock) destinationCode() string { return b.seg(8) }

func (b dataBlock) seg(i int) string {
	if i >= len(b.segs) {
		return ""
	}
	return b.segs[i]
}

// decodeSegmented decodes the bespoke brace/pipe/angle-bracket grammar.
// A payload with no pipe anywhere cannot belong to this family and is
// rejected before any block splitting.
func (d *Decoder) decodeSegmented(payload string) dto.BillRecord {
	if !strings.Contains(payload, "|") {
		return dto.BillRecord{}
	}

	var (
		db       dataBlock
		haveData bool
		route    []string
	)
	for _, block := range braceBlockRegex.FindAllString(payload, -1) {
		if angleTokenRegex.MatchString(block) {
			for _, m := range angleTokenRegex.FindAllStringSubmatch(block, -1) {
				route = append(route, strings.TrimSpace(m[1]))
			}
			continue
		}
		if !haveData {
			if b, ok := parseDataBlock(block); ok {
				db, haveData = b, true
			}
		}
	}
	if !haveData && len(route) == 0 {
		return dto.BillRecord{}
	}

	var rec dto.BillRecord

	if haveData {
		d.decodeDataBlock(db, &rec)
	}
	if len(route) > 0 {
		d.applyRouteBlock(route, db, haveData, &rec)
	}

	return rec
}

// decodeDataBlock fills rec from the positional segments.
func (d *Decoder) decodeDataBlock(db dataBlock, rec *dto.BillRecord) {
	// Segment 4 is either a compact timestamp or the ticket number.
	if tok := db.sequenceToken(); tok != "" {
		if ts, ok := parseCompactTimestamp(tok); ok {
			rec.Date = dto.TimePtr(ts)
		} else if id := cleanIdentifier(tok); len(id) >= minTicketLength {
			rec.TicketNumber = dto.StringPtr(id)
		}
	}

	for i, seg := range db.segs {
		if i == 4 {
			// Schema-reserved position, consumed above.
			continue
		}
		switch {
		case rec.TicketNumber == nil && alnumIDRegex.MatchString(seg) && letterRegex.MatchString(seg):
			rec.TicketNumber = dto.StringPtr(seg)
		case rec.Amount == nil && hexFloatRegex.MatchString(seg):
			if v, ok := parseHexFloat(seg); ok {
				rec.Amount = dto.FloatPtr(v)
			}
		case rec.Amount == nil && decimalRegex.MatchString(seg):
			if v, err := strconv.ParseFloat(seg, 64); err == nil && v >= 0 {
				rec.Amount = dto.FloatPtr(v)
			}
		case rec.Date == nil && digitsRegex.MatchString(seg) && len(seg) >= 10:
			if ts, ok := parseEpochSeconds(seg); ok {
				rec.Date = dto.TimePtr(ts)
			}
		}
	}

	// Last resort: any long digit run serves as the ticket number.
	if rec.TicketNumber == nil {
		for i, seg := range db.segs {
			if i == 4 {
				continue
			}
			if digitsRegex.MatchString(seg) && len(seg) >= minTicketLength {
				rec.TicketNumber = dto.StringPtr(seg)
				break
			}
		}
	}

	if code := db.originCode(); code != "" {
		rec.Origin = dto.StringPtr(d.stationName(code))
	}
	if code := db.destinationCode(); code != "" {
		rec.Destination = dto.StringPtr(d.stationName(code))
	}
}

// applyRouteBlock overrides route endpoints with the angle-bracket tokens:
// first token origin, second destination, third an optional d|m|yy date
// triple. Station-code decoding still contributes a parenthetical name
// when it adds information beyond the route text.
func (d *Decoder) applyRouteBlock(route []string, db dataBlock, haveData bool, rec *dto.BillRecord) {
	if len(route) >= 1 && route[0] != "" {
		code := ""
		if haveData {
			code = db.originCode()
		}
		rec.Origin = dto.StringPtr(annotateStation(route[0], code, d.stations))
	}
	if len(route) >= 2 && route[1] != "" {
		code := ""
		if haveData {
			code = db.destinationCode()
		}
		rec.Destination = dto.StringPtr(annotateStation(route[1], code, d.stations))
	}
	if len(route) >= 3 && rec.Date == nil {
		if t, ok := parseRouteDate(route[2]); ok {
			rec.Date = dto.TimePtr(t)
		}
	}
}

// stationName decodes a code, logging a note for codes missing from the
// table.
func (d *Decoder) stationName(code string) string {
	name, known := d.stations.Decode(code)
	if !known {
		log.Printf("qrpayload: unknown station code %q, passing through", code)
	}
	return name
}

// annotateStation appends the decoded station name to the route text in
// parentheses unless it would merely duplicate it.
func annotateStation(routeText, code string, stations StationMap) string {
	if code == "" {
		return routeText
	}
	decoded, _ := stations.Decode(code)
	if strings.EqualFold(decoded, routeText) {
		return routeText
	}
	return routeText + " (" + decoded + ")"
}

// parseCompactTimestamp reads the compact timestamp token carried in
// segment 4: date digits, a literal T, then HHMMSS. Both four- and
// two-digit-year spellings occur.
func parseCompactTimestamp(tok string) (time.Time, bool) {
	for _, layout := range []string{"20060102T150405", "060102T150405"} {
		if t, err := time.Parse(layout, tok); err == nil && t.Year() >= 2000 && t.Year() <= 2100 {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseHexFloat reconstructs a hexadecimal floating-point literal of the
// form 0x<int>.<frac>p<exp>, e.g. "0x1.8p+3" = (1 + 8/16) * 2^3 = 12. The
// mantissa and exponent are rebuilt explicitly so a malformed literal
// falls through instead of half-parsing.
func parseHexFloat(s string) (float64, bool) {
	m := hexFloatRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	intPart, err := strconv.ParseUint(m[1], 16, 64)
	if err != nil {
		return 0, false
	}
	mantissa := float64(intPart)

	scale := 1.0 / 16.0
	for _, r := range m[2] {
		digit, err := strconv.ParseUint(string(r), 16, 8)
		if err != nil {
			return 0, false
		}
		mantissa += float64(digit) * scale
		scale /= 16
	}

	exp, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false
	}

	return mantissa * math.Pow(2, float64(exp)), true
}

// parseEpochSeconds treats a 10+ digit segment as a Unix timestamp,
// accepting it only when it lands in a sane year range.
func parseEpochSeconds(seg string) (time.Time, bool) {
	sec, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	t := time.Unix(sec, 0)
	if t.Year() < 2000 || t.Year() > 2100 {
		return time.Time{}, false
	}
	return t, true
}

// parseRouteDate builds a date from the route block's day|month|yy triple.
// Two-digit years at or above 70 belong to the 1900s.
func parseRouteDate(tok string) (time.Time, bool) {
	parts := strings.Split(tok, "|")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		if year >= 70 {
			year += 1900
		} else {
			year += 2000
		}
	}

	return utils.MakeDate(year, month, day)
}
