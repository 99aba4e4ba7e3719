package dto

import (
	"errors"
	"strings"
)

// ExtractTextRequest carries raw recognized text straight into the OCR
// extraction path, bypassing the on-device recognizer.
type ExtractTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractPayloadRequest carries a raw scanned QR/barcode payload string.
type ExtractPayloadRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// Validate performs basic validation on the request
func (r *ExtractTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

// Validate performs basic validation on the request
func (r *ExtractPayloadRequest) Validate() error {
	if strings.TrimSpace(r.Payload) == "" {
		return errors.New("payload is required")
	}
	return nil
}
