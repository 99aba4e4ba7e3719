package client

import (
	"fmt"
	"image"
	"log"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// BarcodeClient wraps gozxing for extracting raw QR/barcode payload
// strings from ticket photos. It performs no interpretation of the
// payload; that is the extraction pipeline's job.
type BarcodeClient struct{}

func NewBarcodeClient() *BarcodeClient {
	return &BarcodeClient{}
}

// DecodePayloads returns the raw payload strings of every code found in
// the image. Finding no code is reported as an error so callers can fall
// back to OCR-only extraction.
func (bc *BarcodeClient) DecodePayloads(img image.Image) ([]string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	// 1) QR first; metro tickets almost always carry a QR code
	qrReader := qrcode.NewQRCodeReader()
	if result, err := qrReader.Decode(bmp, nil); err == nil {
		return []string{result.GetText()}, nil
	}
	if result, err := qrReader.Decode(bmp, hints); err == nil {
		return []string{result.GetText()}, nil
	}

	// 2) Fallback: 1D Code128, used by older paper tickets
	if result, err := oned.NewCode128Reader().Decode(bmp, nil); err == nil {
		log.Println("Decoded 1D barcode payload")
		return []string{result.GetText()}, nil
	}

	return nil, fmt.Errorf("no barcode found in image")
}
