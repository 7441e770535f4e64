package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"traffic-prediction-service/internal/apperr"
	"traffic-prediction-service/internal/platform/obs"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeAppError maps an error to its HTTP status and the error envelope.
// Errors outside the apperr taxonomy are masked as internal.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.CodeOf(err)
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status = appErr.HTTPStatus()
		message = appErr.Message
	}
	if status >= 500 {
		log.Printf("request failed: method=%s path=%s code=%s err=%v", r.Method, r.URL.Path, code, err)
		if code == apperr.CodeInternal {
			message = "internal server error"
		}
	}

	writeJSON(w, r, status, errorEnvelope{Error: errorBody{
		Code:      string(code),
		Message:   message,
		RequestID: obs.RequestID(r.Context()),
	}})
}

// writeValidationError reports a request-shape problem as a validation error.
func writeValidationError(w http.ResponseWriter, r *http.Request, msg string) {
	writeAppError(w, r, apperr.New(apperr.CodeValidation, msg))
}
