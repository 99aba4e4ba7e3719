package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mayur-kachare/jagrut/client"
	"github.com/mayur-kachare/jagrut/dto"
	"github.com/mayur-kachare/jagrut/utils"
	"github.com/mayur-kachare/jagrut/utils/qrpayload"
)

// BillService orchestrates the two extraction modalities over an uploaded
// ticket: text recognition feeding the OCR pipeline, and barcode scanning
// feeding the payload decoder. The pipeline itself is pure; everything
// stateful (temp files, OCR engine, QR scanner) lives here.
type BillService struct {
	tesseractClient *client.TesseractClient
	barcodeClient   *client.BarcodeClient
	pdfProcessor    PDFProcessor
	decoder         *qrpayload.Decoder
}

func NewBillService(
	tesseractClient *client.TesseractClient,
	barcodeClient *client.BarcodeClient,
	pdfProcessor PDFProcessor,
	decoder *qrpayload.Decoder,
) *BillService {
	return &BillService{
		tesseractClient: tesseractClient,
		barcodeClient:   barcodeClient,
		pdfProcessor:    pdfProcessor,
		decoder:         decoder,
	}
}

// ExtractFromText runs only the OCR-side pipeline over already-recognized
// text.
func (s *BillService) ExtractFromText(text string) dto.BillRecord {
	return utils.ParseBillText(text)
}

// ExtractFromPayload runs only the payload decoder over a raw scanned
// string.
func (s *BillService) ExtractFromPayload(payload string) dto.BillRecord {
	return s.decoder.Decode(payload)
}

// ScanBill processes an uploaded ticket image or PDF: both modalities run
// independently, their candidates are merged, and a placeholder ticket
// number is synthesized if neither side recovered one. Upstream failures
// degrade the record instead of failing the call.
func (s *BillService) ScanBill(fileHeader *multipart.FileHeader, fileData []byte, mimeType string) (*dto.ScanBillResponse, error) {
	isPDF := strings.Contains(mimeType, "pdf") ||
		strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf")

	var (
		ocrText string
		img     image.Image
	)

	if isPDF {
		log.Printf("Processing PDF ticket %s", fileHeader.Filename)

		// Digitally generated e-tickets carry embedded text.
		if text, err := s.pdfProcessor.ExtractText(fileData); err == nil && len(strings.TrimSpace(text)) >= 20 {
			ocrText = text
		}

		images, err := s.pdfProcessor.ExtractImages(fileData)
		if err != nil {
			log.Printf("Failed to extract page images from %s: %v", fileHeader.Filename, err)
		} else if len(images) > 0 {
			img = images[0]
		}
	} else {
		decoded, err := decodeImage(fileData)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		img = decoded
	}

	var (
		ocrConf  float64
		ocrErr   error
		payloads []string
		wg       sync.WaitGroup
	)

	// OCR and QR scanning are independent; run them side by side.
	wg.Add(2)
	go func() {
		defer wg.Done()
		if ocrText != "" {
			ocrConf = 100 // embedded PDF text, not recognized
			return
		}
		ocrText, ocrConf, ocrErr = s.recognizeText(fileData, img, isPDF)
	}()
	go func() {
		defer wg.Done()
		if img == nil {
			return
		}
		var err error
		payloads, err = s.barcodeClient.DecodePayloads(img)
		if err != nil {
			log.Printf("No scannable code in %s: %v", fileHeader.Filename, err)
		}
	}()
	wg.Wait()

	var ocrRec dto.BillRecord
	ocrUsed := false
	if ocrErr != nil || strings.TrimSpace(ocrText) == "" {
		log.Printf("Text recognition failed for %s: %v", fileHeader.Filename, ocrErr)
		ocrRec = DegradedRecord("text recognition failed")
	} else {
		ocrRec = utils.ParseBillText(ocrText)
		ocrUsed = true
	}

	var qrRec dto.BillRecord
	qrUsed := false
	for _, payload := range payloads {
		if rec := s.decoder.Decode(payload); rec.HasAnyValue() {
			qrRec = rec
			qrUsed = true
			break
		}
	}

	merged := utils.MergeRecords(ocrRec, qrRec)
	EnsureTicketNumber(&merged, time.Now())

	return newScanResponse(merged, ocrUsed, qrUsed, ocrConf), nil
}

// newScanResponse assembles the scan response. The recognizer confidence
// is surfaced only when recognition contributed to the record.
func newScanResponse(rec dto.BillRecord, ocrUsed, qrUsed bool, ocrConf float64) *dto.ScanBillResponse {
	resp := &dto.ScanBillResponse{
		ScanID:      uuid.NewString(),
		Record:      rec,
		OCRUsed:     ocrUsed,
		QRUsed:      qrUsed,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}
	if ocrUsed {
		resp.OCRConfidence = dto.FloatPtr(ocrConf)
	}
	return resp
}

// recognizeText feeds either the original upload or the rasterized PDF
// page into Tesseract and reports the average word confidence alongside
// the text.
func (s *BillService) recognizeText(fileData []byte, img image.Image, isPDF bool) (string, float64, error) {
	var tempFile string
	var err error

	if isPDF {
		if img == nil {
			return "", 0, fmt.Errorf("no page image available for OCR")
		}
		tempFile, err = saveImageToTempFile(img)
	} else {
		tempFile, err = saveBytesToTempFile(fileData)
	}
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tempFile)

	return s.tesseractClient.ExtractTextAndQuality(tempFile)
}

// DegradedRecord stands in when an upstream recognizer fails outright:
// the reason is recorded in RawText for audit, every semantic field stays
// unrecovered, and merging fills the placeholders.
func DegradedRecord(reason string) dto.BillRecord {
	return dto.BillRecord{
		RawText: dto.StringPtr("[extraction degraded: " + reason + "]"),
	}
}

// EnsureTicketNumber synthesizes a timestamp-based identifier when no
// stage recovered one. The TKT prefix marks it as synthesized rather than
// read off the ticket.
func EnsureTicketNumber(rec *dto.BillRecord, now time.Time) {
	if rec.TicketNumber != nil {
		return
	}
	rec.TicketNumber = dto.StringPtr("TKT" + now.Format("20060102150405"))
}

// decodeImage decodes an uploaded PNG or JPEG.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// saveImageToTempFile writes an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "scan-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}

// saveBytesToTempFile writes uploaded bytes to a temporary file for the
// OCR engine.
func saveBytesToTempFile(data []byte) (string, error) {
	tempFile, err := os.CreateTemp("", "scan-upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	if _, err := tempFile.Write(data); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return tempFile.Name(), nil
}
