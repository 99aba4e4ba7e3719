package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	raw := "NAGPUR METRO\r\nTicket No:  NMR4521 |\r\n   Fare; Rs. 25.00\t\t—done"

	got := NormalizeText(raw)

	assert.Equal(t, "NAGPUR METRO\nTicket No: NMR4521\nFare: Rs. 25.00 -done", got)
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"already clean",
		"Ticket No:  A | B ; C\r\n   next – line",
		"a\tb\t\tc",
	}

	for _, raw := range inputs {
		once := NormalizeText(raw)
		assert.Equal(t, once, NormalizeText(once))
	}
}

func TestNormalizeTextEmpty(t *testing.T) {
	assert.Equal(t, "", NormalizeText(""))
	assert.Equal(t, "", NormalizeText("   \r\n\t  "))
}

func TestNormalizeTextKeepsLineOrder(t *testing.T) {
	got := NormalizeText("first\nsecond\nthird")
	assert.Equal(t, "first\nsecond\nthird", got)
}
