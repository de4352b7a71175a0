// Package httpx provides JSON response utilities shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope every failed request returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody acknowledges a mutation that returns no resource.
type SuccessBody struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends the `{"error": "..."}` envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// Success sends `{"success": true}` optionally carrying a created id.
func Success(w http.ResponseWriter, status int, id string) {
	JSON(w, status, SuccessBody{Success: true, ID: id})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
