package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAnyValue(t *testing.T) {
	assert.False(t, BillRecord{}.HasAnyValue())

	// RawText alone does not count as a recovered field.
	assert.False(t, BillRecord{RawText: StringPtr("noise")}.HasAnyValue())

	assert.True(t, BillRecord{TicketNumber: StringPtr("NMR452188")}.HasAnyValue())
	assert.True(t, BillRecord{Amount: FloatPtr(25.0)}.HasAnyValue())
	assert.True(t, BillRecord{Origin: StringPtr("Sitabuldi")}.HasAnyValue())
}

func TestExtractTextRequestValidate(t *testing.T) {
	assert.Error(t, (&ExtractTextRequest{}).Validate())
	assert.NoError(t, (&ExtractTextRequest{Text: "Ticket No: NMR452188"}).Validate())
}

func TestExtractPayloadRequestValidate(t *testing.T) {
	assert.Error(t, (&ExtractPayloadRequest{}).Validate())
	assert.NoError(t, (&ExtractPayloadRequest{Payload: "{A|B|C|D}"}).Validate())
}
