package qrpayload

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// StationMap resolves the short station codes carried in segmented
// payloads to human-readable names. It is immutable after construction and
// injected into the Decoder, never consulted as package state.
type StationMap map[string]string

// DefaultStations covers the metro network this payload family was
// observed on.
func DefaultStations() StationMap {
	return StationMap{
		"SIT": "Sitabuldi",
		"ZRM": "Zero Mile",
		"KCP": "Kasturchand Park",
		"APM": "Airport",
		"APS": "Airport South",
		"KHP": "Khapri",
		"JPN": "Jaiprakash Nagar",
		"UJN": "Ujjwal Nagar",
		"CHS": "Chhatrapati Square",
		"CNG": "Congress Nagar",
		"RHC": "Rahate Colony",
		"AJS": "Ajni Square",
		"LKM": "Lokmanya Nagar",
		"SUB": "Subhash Nagar",
	}
}

// LoadStations reads a JSON code-to-name object from path and merges it
// over the defaults, so deployments can extend the table without a
// rebuild.
func LoadStations(path string) (StationMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read station map: %w", err)
	}

	var overrides map[string]string
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse station map: %w", err)
	}

	stations := DefaultStations()
	for code, name := range overrides {
		stations[strings.ToUpper(strings.TrimSpace(code))] = name
	}
	return stations, nil
}

// Decode resolves a station code to its name. Unknown codes pass through
// upper-cased so downstream output is never empty; the second return
// reports whether the code was actually in the table.
func (m StationMap) Decode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if name, ok := m[code]; ok {
		return name, true
	}
	return code, false
}
