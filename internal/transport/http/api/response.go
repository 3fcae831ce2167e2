package api

import (
	"encoding/json"
	"log"
	"net/http"

	"workforce/internal/apperror"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json failed: %v", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailFromError converts a domain error to the response taxonomy. All
// errors are handled at the page boundary; internal ones are logged for
// operator visibility and surfaced as a generic message.
func FailFromError(w http.ResponseWriter, err error, requestID string) {
	code := apperror.GetCode(err)
	switch code {
	case apperror.CodeValidation:
		Fail(w, http.StatusBadRequest, string(code), err.Error(), requestID)
	case apperror.CodeUnauthorized:
		Fail(w, http.StatusUnauthorized, string(code), err.Error(), requestID)
	case apperror.CodeForbidden:
		Fail(w, http.StatusForbidden, string(code), err.Error(), requestID)
	case apperror.CodeNotFound:
		Fail(w, http.StatusNotFound, string(code), err.Error(), requestID)
	case apperror.CodeConflict:
		Fail(w, http.StatusConflict, string(code), err.Error(), requestID)
	default:
		log.Printf("internal error [%s]: %v", requestID, err)
		Fail(w, http.StatusInternalServerError, string(apperror.CodeInternal), "an internal error occurred", requestID)
	}
}
