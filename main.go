package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mayur-kachare/jagrut/client"
	"github.com/mayur-kachare/jagrut/config"
	"github.com/mayur-kachare/jagrut/handler"
	"github.com/mayur-kachare/jagrut/service"
	"github.com/mayur-kachare/jagrut/utils/qrpayload"
)

func main() {
	// Tesseract v5 needs the tessdata prefix set before first use
	cfg := config.LoadConfig()
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)

	// Initialize OCR and barcode clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()
	barcodeClient := client.NewBarcodeClient()

	// Station table: defaults, optionally extended from disk
	stations := qrpayload.DefaultStations()
	if cfg.StationMapPath != "" {
		loaded, err := qrpayload.LoadStations(cfg.StationMapPath)
		if err != nil {
			log.Fatalf("Failed to load station map: %v", err)
		}
		stations = loaded
		log.Printf("Loaded station map from %s (%d entries)", cfg.StationMapPath, len(stations))
	}

	// Initialize PDF processor and service layer
	pdfProcessor := service.NewPDFProcessor()
	billService := service.NewBillService(
		tesseractClient,
		barcodeClient,
		pdfProcessor,
		qrpayload.NewDecoder(stations),
	)

	// Initialize handler layer
	billHandler := handler.NewBillHandler(billService)

	// Setup Gin router
	router := gin.Default()

	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Transit Bill Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		bills := api.Group("/bills")
		{
			bills.POST("/scan", billHandler.ScanBill)
			bills.POST("/text", billHandler.ExtractText)
			bills.POST("/payload", billHandler.ExtractPayload)
		}
	}

	// Start server
	log.Printf("Starting Transit Bill Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
