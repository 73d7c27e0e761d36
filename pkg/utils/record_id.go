package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRecordID creates a short, human-readable id for a stored event.
// Format: {eventNameWithoutNamespace}-{8charHexUUID}
//
// Example:
//   - Input: event="transaction.offerAccepted"
//   - Output: "offerAccepted-a3f8e2b1"
func GenerateRecordID(event string) string {
	return stripNamespace(event) + "-" + generateShortUUID()
}

// stripNamespace keeps the part of a dotted event name after the last dot.
//   - "transaction.offerAccepted" -> "offerAccepted"
//   - "SAVE" -> "SAVE"
//   - "" -> "record"
func stripNamespace(event string) string {
	if i := strings.LastIndex(event, "."); i >= 0 {
		event = event[i+1:]
	}
	if event == "" {
		return "record"
	}
	return event
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
