package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBillText(t *testing.T) {
	text := `
		NAGPUR METRO RAIL
		Ticket No: NMR452188
		Date: 15/01/2024
		From: Sitabuldi
		To: Khapri
		Fare: Rs. 25.00
		You saved 0 59 g C02 on this trip
	`

	rec := ParseBillText(text)

	assert.Equal(t, "NMR452188", *rec.TicketNumber)
	assert.Equal(t, 25.0, *rec.Amount)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), *rec.Date)
	assert.Equal(t, "Sitabuldi", *rec.Origin)
	assert.Equal(t, "Khapri", *rec.Destination)
	assert.Equal(t, "0.59 g CO2", *rec.EmissionsSaved)
	assert.NotNil(t, rec.RawText)
}

func TestParseBillTextOrphanValues(t *testing.T) {
	// No labels survived recognition: bare station lines, a bare date
	// and a bare amount.
	text := "SITABULDI\nKHAPRI\n15/01/2024\nRs. 25.00"

	rec := ParseBillText(text)

	assert.Equal(t, "SITABULDI", *rec.Origin)
	assert.Equal(t, "KHAPRI", *rec.Destination)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), *rec.Date)
	assert.Equal(t, 25.0, *rec.Amount)
}

func TestParseBillTextEmpty(t *testing.T) {
	rec := ParseBillText("")

	assert.Nil(t, rec.TicketNumber)
	assert.Nil(t, rec.Amount)
	assert.Nil(t, rec.Date)
	assert.Nil(t, rec.RawText)
}

func TestParseBillTextNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\x02garbage\xff",
		"::::----||||;;;;",
		"{<>}{<>}|||",
		"१५/०१/२०२४ ₹ ₹ ₹",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() { ParseBillText(input) })
	}
}

func TestExtractTicketNumberRejectsShort(t *testing.T) {
	// A field-map hit below the minimum length falls through instead of
	// being accepted.
	text := "Bill No: AB12\nHave a nice day"

	rec := ParseBillText(text)

	assert.Nil(t, rec.TicketNumber)
}

func TestExtractTicketNumberKeywordFallback(t *testing.T) {
	text := "NAGPUR METRO\nT1cket NMR452188 single journey"

	rec := ParseBillText(text)

	assert.Equal(t, "NMR452188", *rec.TicketNumber)
}

func TestExtractTicketNumberLongRunFallback(t *testing.T) {
	text := "metro 45X92B817Q stub"

	rec := ParseBillText(text)

	assert.Equal(t, "45X92B817Q", *rec.TicketNumber)
}

func TestParseBillTextDateFallsBackToNow(t *testing.T) {
	rec := ParseBillText("Fare: Rs. 10.00\nno date anywhere")

	assert.WithinDuration(t, time.Now(), *rec.Date, 5*time.Second)
}

func TestParseBillTextInvalidDateFallsBackToNow(t *testing.T) {
	rec := ParseBillText("Date: 45/13/2024")

	assert.WithinDuration(t, time.Now(), *rec.Date, 5*time.Second)
}

func TestCorrectAmount(t *testing.T) {
	rules := DefaultAmountRules()

	assert.Equal(t, 14.0, CorrectAmount(214.0, rules))
	assert.Equal(t, 15.0, CorrectAmount(150.0, rules))
	assert.Equal(t, 45.0, CorrectAmount(45.0, rules))
}

func TestParseAmountValue(t *testing.T) {
	cases := map[string]float64{
		"25.00":      25.0,
		"Rs. 25.00":  25.0,
		"INR 1,250":  1250.0,
		"₹30":        30.0,
		"2S.00":      25.0, // misread 5
		"1O.50":      10.5, // misread 0
	}

	for raw, want := range cases {
		got, ok := ParseAmountValue(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseAmountValue("not a number")
	assert.False(t, ok)
}

func TestExtractEmissions(t *testing.T) {
	rec := ParseBillText("Trip summary\n0 59 g C02 saved")
	assert.Equal(t, "0.59 g CO2", *rec.EmissionsSaved)

	rec = ParseBillText("you saved 1.02g CO2 today")
	assert.Equal(t, "1.02 g CO2", *rec.EmissionsSaved)
}

func TestExtractEmissionsMagnitudeCorrection(t *testing.T) {
	// Lost decimal point: 59 g is implausible for one trip.
	rec := ParseBillText("59 g CO2 saved")

	assert.Equal(t, "0.59 g CO2", *rec.EmissionsSaved)
}

func TestExtractEmissionsAbsentWhenNoMarker(t *testing.T) {
	rec := ParseBillText("Fare: Rs. 25.00")

	assert.Nil(t, rec.EmissionsSaved)
}

func FuzzParseBillText(f *testing.F) {
	seeds := []string{
		"",
		"\x00\x01\x02garbage\xff",
		"::::----||||;;;;",
		"{<>}{<>}|||",
		"१५/०१/२०२४ ₹ ₹ ₹",
		"Ticket No: NMR452188\nFare: Rs. 25.00",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		rec := ParseBillText(input)

		// Non-empty normalized text always yields amount and date.
		if rec.RawText != nil && (rec.Amount == nil || rec.Date == nil) {
			t.Errorf("missing amount or date for input %q", input)
		}
	})
}

func TestMakeDate(t *testing.T) {
	got, ok := MakeDate(2024, 2, 29)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), got)

	_, ok = MakeDate(2023, 2, 29)
	assert.False(t, ok)
	_, ok = MakeDate(2024, 13, 1)
	assert.False(t, ok)
	_, ok = MakeDate(2024, 4, 31)
	assert.False(t, ok)
}

func TestParseDayFirstDate(t *testing.T) {
	got, ok := ParseDayFirstDate("15/01/24")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), got)

	got, ok = ParseDayFirstDate("5-6-2023")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 6, 5, 0, 0, 0, 0, time.Local), got)

	_, ok = ParseDayFirstDate("45/13/2024")
	assert.False(t, ok)
}
