package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskvault/taskvault/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apperr.Write(w, r, apperr.Validation(apperr.CodeInvalidPayload, "invalid request body"))
		return false
	}
	return true
}
