package config

import (
	"os"
	"strconv"
)

const defaultMaxFileSize = 10 * 1024 * 1024 // 10 MB

type Config struct {
	ServerPort        string
	TesseractDataPath string
	StationMapPath    string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	maxFileSize := int64(defaultMaxFileSize)
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxFileSize = parsed
		}
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		// Optional JSON override for the station-code table
		StationMapPath: os.Getenv("STATION_MAP_PATH"),
		MaxFileSize:    maxFileSize,
	}
}
