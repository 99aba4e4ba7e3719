package dto

import "errors"

// Custom errors
var (
	ErrNoFileProvided      = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ScanBillResponse is the final response for a scanned ticket image.
// OCRConfidence is the average word confidence reported by the recognizer,
// present only when recognition actually ran.
type ScanBillResponse struct {
	ScanID        string     `json:"scan_id"`
	Record        BillRecord `json:"record"`
	OCRUsed       bool       `json:"ocr_used"`
	QRUsed        bool       `json:"qr_used"`
	OCRConfidence *float64   `json:"ocr_confidence,omitempty"`
	ProcessedAt   string     `json:"processed_at"`
}

// ExtractResponse wraps a single-path candidate record
type ExtractResponse struct {
	Record BillRecord `json:"record"`
}
