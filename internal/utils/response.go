package utils

import (
	"encoding/json"
	"net/http"

	"github.com/samir9187/todolist-backend/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error response with the given status
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, detail string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Error:   errMsg,
		Message: detail,
	})
}

// DecodeJSONRequest decodes the request body into dst. On failure it writes
// a 400 response and returns the error, so callers can simply return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
