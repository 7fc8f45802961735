package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, code int, errorCode, message string) {
	writeJSON(w, code, errorResponse{
		ErrorCode: errorCode,
		Message:   message,
		RequestID: w.Header().Get(requestIDHeader),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		return fmt.Errorf("invalid JSON body")
	}
	if dec.More() {
		return fmt.Errorf("unexpected trailing data")
	}
	return nil
}
