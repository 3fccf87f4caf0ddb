package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data, sets the JSON content type, writes statusCode and
// sends the body. A marshal failure turns into a plain 500 so a half-written
// JSON document never reaches the client.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(payload)
}
