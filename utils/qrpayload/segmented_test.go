package qrpayload

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSegmentedTimestampAndStations(t *testing.T) {
	payload := "{A|B|C|D|20240115T113000|F|G|STN1|STN2}"

	rec := NewDecoder(nil).Decode(payload)

	assert.Equal(t, time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC), *rec.Date)
	// Codes missing from the table pass through upper-cased.
	assert.Equal(t, "STN1", *rec.Origin)
	assert.Equal(t, "STN2", *rec.Destination)
	assert.Nil(t, rec.TicketNumber)
}

func TestDecodeSegmentedTicketInSequenceSlot(t *testing.T) {
	payload := "{A|B|C|D|NMR452188|F|G|SIT|KHP}"

	rec := NewDecoder(nil).Decode(payload)

	assert.Equal(t, "NMR452188", *rec.TicketNumber)
	assert.Equal(t, "Sitabuldi", *rec.Origin)
	assert.Equal(t, "Khapri", *rec.Destination)
}

func TestDecodeSegmentedHexFloatAmount(t *testing.T) {
	payload := "{T|0x1.8p+3|X|Y|ID123456}"

	rec := NewDecoder(nil).Decode(payload)

	assert.Equal(t, 12.0, *rec.Amount)
	assert.Equal(t, "ID123456", *rec.TicketNumber)
}

func TestDecodeSegmentedDecimalAmount(t *testing.T) {
	rec := NewDecoder(nil).Decode("{A|25.50|C|D|E}")

	assert.Equal(t, 25.5, *rec.Amount)
	assert.Nil(t, rec.TicketNumber)
}

func TestDecodeSegmentedEpochDate(t *testing.T) {
	rec := NewDecoder(nil).Decode("{A|B|C|D|E|1705315800}")

	assert.NotNil(t, rec.Date)
	assert.Equal(t, int64(1705315800), rec.Date.Unix())
}

func TestDecodeSegmentedRouteBlock(t *testing.T) {
	payload := "{A|B|C|D|E|F|G|SIT|KHP}{<Central><Airport><15|01|24>}"

	rec := NewDecoder(nil).Decode(payload)

	// Route text wins; the decoded station name rides along in parentheses.
	assert.Equal(t, "Central (Sitabuldi)", *rec.Origin)
	assert.Equal(t, "Airport (Khapri)", *rec.Destination)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), *rec.Date)
}

func TestDecodeSegmentedRouteBlockOnly(t *testing.T) {
	rec := NewDecoder(nil).Decode("{<Sitabuldi><Khapri><01|06|75>}")

	assert.Equal(t, "Sitabuldi", *rec.Origin)
	assert.Equal(t, "Khapri", *rec.Destination)
	assert.Equal(t, time.Date(1975, 6, 1, 0, 0, 0, 0, time.Local), *rec.Date)
}

func TestDecodeSegmentedRouteDateDoesNotOverride(t *testing.T) {
	payload := "{A|B|C|D|20240115T113000|F|G|SIT|KHP}{<X><Y><01|06|75>}"

	rec := NewDecoder(nil).Decode(payload)

	assert.Equal(t, 2024, rec.Date.Year())
}

func TestDecodeSegmentedRejectsWithoutPipe(t *testing.T) {
	d := NewDecoder(nil)

	rec := d.decodeSegmented("{20240115T113000}")

	assert.False(t, rec.HasAnyValue())
}

func TestParseRouteDate(t *testing.T) {
	got, ok := parseRouteDate("15|01|24")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), got)

	_, ok = parseRouteDate("30|02|24")
	assert.False(t, ok)
	_, ok = parseRouteDate("15|01")
	assert.False(t, ok)
}

func TestParseHexFloat(t *testing.T) {
	cases := map[string]float64{
		"0x1.8p+3": 12.0,
		"0x1p0":    1.0,
		"0xA.8p-1": 5.25,
	}
	for in, want := range cases {
		got, ok := parseHexFloat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := parseHexFloat("0x1.8")
	assert.False(t, ok)
	_, ok = parseHexFloat("1.8p3")
	assert.False(t, ok)
}

func TestParseCompactTimestamp(t *testing.T) {
	got, ok := parseCompactTimestamp("240115T113000")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC), got)

	_, ok = parseCompactTimestamp("NMR452188")
	assert.False(t, ok)
}

func TestStationMapDecode(t *testing.T) {
	stations := DefaultStations()

	name, known := stations.Decode("sit")
	assert.True(t, known)
	assert.Equal(t, "Sitabuldi", name)

	name, known = stations.Decode("XYZ")
	assert.False(t, known)
	assert.Equal(t, "XYZ", name)
}

func TestLoadStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	data, err := json.Marshal(map[string]string{"xyz": "New Stop", "SIT": "Sitabuldi Interchange"})
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(path, data, 0644))

	stations, err := LoadStations(path)
	assert.NoError(t, err)

	name, known := stations.Decode("XYZ")
	assert.True(t, known)
	assert.Equal(t, "New Stop", name)

	name, _ = stations.Decode("SIT")
	assert.Equal(t, "Sitabuldi Interchange", name)

	// Defaults survive the merge.
	name, known = stations.Decode("KHP")
	assert.True(t, known)
	assert.Equal(t, "Khapri", name)
}

func TestLoadStationsMissingFile(t *testing.T) {
	_, err := LoadStations(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
