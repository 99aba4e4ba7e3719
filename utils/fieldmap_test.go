package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFieldMap(t *testing.T) {
	text := "Ticket No: NMR452188\nFare: Rs. 25.00\nDate: 15/01/2024"

	fields := BuildFieldMap(text)

	assert.Equal(t, "NMR452188", fields["ticket no"])
	assert.Equal(t, "Rs. 25.00", fields["fare"])
	assert.Equal(t, "15/01/2024", fields["date"])
}

func TestBuildFieldMapPendingLabel(t *testing.T) {
	// Value pushed to the next line by the ticket layout
	text := "Fare:\n25.00\nDate: 15/01/2024"

	fields := BuildFieldMap(text)

	assert.Equal(t, "25.00", fields["fare"])
	assert.Equal(t, "15/01/2024", fields["date"])
}

func TestBuildFieldMapPendingLabelNotStolen(t *testing.T) {
	// A labeled line must not be captured by a preceding bare label.
	text := "Fare:\nDate: 15/01/2024"

	fields := BuildFieldMap(text)

	_, ok := fields["fare"]
	assert.False(t, ok)
	assert.Equal(t, "15/01/2024", fields["date"])
}

func TestBuildFieldMapLastWriteWins(t *testing.T) {
	text := "From: NAGPUR METRO RAIL\nFrom: Sitabuldi"

	fields := BuildFieldMap(text)

	assert.Equal(t, "Sitabuldi", fields["from"])
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "ticket no", NormalizeLabel("Ticket No."))
	assert.Equal(t, "ticket no", NormalizeLabel("T1CKET N0."))
	assert.Equal(t, "fare", NormalizeLabel("FANE"))
	assert.Equal(t, "from", NormalizeLabel("Fr0m"))
	assert.Equal(t, "date", NormalizeLabel("0ate"))
}

func TestLocateOrphans(t *testing.T) {
	text := "SITABULDI\nKHAPRI\n15/01/2024\nRs. 25.00"

	orphans := LocateOrphans(text)

	assert.Equal(t, []string{"SITABULDI", "KHAPRI"}, orphans.Locations)
	assert.Equal(t, "15/01/2024", orphans.Date)
	assert.Equal(t, "25.00", orphans.Amount)
}

func TestLocateOrphansSkipsBoilerplate(t *testing.T) {
	text := "METRO RAIL CORPORATION\nSITABULDI\nTOTAL"

	orphans := LocateOrphans(text)

	assert.Equal(t, []string{"SITABULDI"}, orphans.Locations)
}

func TestLabelOrphans(t *testing.T) {
	text := "SITABULDI\nKHAPRI\n15/01/2024\n25.00"

	labeled := LabelOrphans(text)

	assert.Equal(t, "From : SITABULDI\nTo : KHAPRI\nDate : 15/01/2024\nFare : 25.00", labeled)
}
