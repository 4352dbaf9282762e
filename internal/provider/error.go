package provider

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// maxErrorBody caps how much of a non-JSON upstream error body is surfaced.
const maxErrorBody = 200

// Error is a normalized upstream failure: the HTTP status the provider
// answered with plus a human-readable message extracted from its body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider: status %d: %s", e.Status, e.Message)
}

// normalizeError extracts a displayable message from an upstream error
// body. JSON bodies are probed for error, details and message fields in
// that priority order; anything else falls back to the raw text, truncated.
func normalizeError(status int, body []byte) *Error {
	message := "request failed"

	var payload struct {
		Err     string `json:"error"`
		Details string `json:"details"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Err != "":
			message = payload.Err
		case payload.Details != "":
			message = payload.Details
		case payload.Message != "":
			message = payload.Message
		}
		return &Error{Status: status, Message: message}
	}

	if len(body) > 0 {
		message = truncate(string(body), maxErrorBody)
	}
	return &Error{Status: status, Message: message}
}

// truncate cuts text to at most max bytes without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
