// Package respond writes the JSON envelopes shared by every handler.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// Error writes a user-facing error message in the standard envelope.
func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, ErrorBody{Error: message})
}
