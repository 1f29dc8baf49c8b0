package apitest

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error document of the service.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, detail string) {
	_ = WriteJSON(w, code, ErrorResponse{Detail: detail})
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
