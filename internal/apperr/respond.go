package apperr

import (
	"encoding/json"
	"net/http"
	"time"
)

// Envelope is the uniform error body returned to clients. No stack traces or
// raw driver errors are ever placed in Message.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
	Name       string `json:"name"`
}

// Write normalizes err into the envelope shape and writes it to w.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	appErr := From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(Envelope{
		StatusCode: appErr.Status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Method:     r.Method,
		Message:    appErr.Message,
		Name:       appErr.Name,
	})
}
