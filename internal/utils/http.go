package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-auth-keeper/models"
)

// marshalFailedBody is sent when the response value itself cannot be encoded.
var marshalFailedBody = []byte(`{"error":"Internal Server Error"}`)

// WriteJSON encodes data and writes it with statusCode and an
// "application/json" content type. If data cannot be encoded the client
// gets a 500 with the generic error body and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body = marshalFailedBody
		err = fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	n, writeErr := w.Write(body)
	if err != nil {
		return n, err
	}
	return n, writeErr
}

// WriteError writes the uniform {"error": message} body with statusCode.
func WriteError(w http.ResponseWriter, message string, statusCode int) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}
