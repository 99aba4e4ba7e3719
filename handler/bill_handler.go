package handler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mayur-kachare/jagrut/dto"
	"github.com/mayur-kachare/jagrut/service"
)

type BillHandler struct {
	billService *service.BillService
}

func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// ScanBill handles POST /bills/scan: a multipart ticket image or PDF is
// run through both extraction modalities and the merged record returned.
func (h *BillHandler) ScanBill(c *gin.Context) {
	log.Println("Received bill scan request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", dto.ErrNoFileProvided)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !supportedUpload(fileHeader.Filename, mimeType) {
		h.sendError(c, http.StatusBadRequest, "Unsupported file type", dto.ErrUnsupportedFileType)
		return
	}
	log.Printf("Processing %s (%d bytes, %s)", fileHeader.Filename, len(fileData), mimeType)

	response, err := h.billService.ScanBill(fileHeader, fileData, mimeType)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to process upload", err)
		return
	}

	log.Printf("Bill scan completed: scan_id=%s ocr=%t qr=%t", response.ScanID, response.OCRUsed, response.QRUsed)
	c.JSON(http.StatusOK, response)
}

// ExtractText handles POST /bills/text: raw recognized text in, candidate
// record out. Extraction itself never fails; only an empty body is an
// error.
func (h *BillHandler) ExtractText(c *gin.Context) {
	var request dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	record := h.billService.ExtractFromText(request.Text)
	c.JSON(http.StatusOK, dto.ExtractResponse{Record: record})
}

// ExtractPayload handles POST /bills/payload: a raw scanned QR/barcode
// payload in, candidate record out.
func (h *BillHandler) ExtractPayload(c *gin.Context) {
	var request dto.ExtractPayloadRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	record := h.billService.ExtractFromPayload(request.Payload)
	c.JSON(http.StatusOK, dto.ExtractResponse{Record: record})
}

// supportedUpload accepts the formats the pipeline can process: PNG and
// JPEG images, and PDF e-tickets.
func supportedUpload(filename, mimeType string) bool {
	switch {
	case strings.Contains(mimeType, "png"),
		strings.Contains(mimeType, "jpeg"),
		strings.Contains(mimeType, "jpg"),
		strings.Contains(mimeType, "pdf"):
		return true
	}
	lower := strings.ToLower(filename)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".pdf"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// sendError sends a structured error response
func (h *BillHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
