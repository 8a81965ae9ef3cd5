package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/qualmap/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Details []string    `json:"details,omitempty"`
}

var statusByCode = map[errors.Code]int{
	errors.ErrCodeInvalidInput:  http.StatusUnprocessableEntity,
	errors.ErrCodeMissingField:  http.StatusUnprocessableEntity,
	errors.ErrCodeInvalidFormat: http.StatusUnprocessableEntity,
	errors.ErrCodeInvalidConfig: http.StatusBadRequest,
	errors.ErrCodeInvalidPath:   http.StatusBadRequest,
	errors.ErrCodeNotFound:      http.StatusNotFound,
	errors.ErrCodeFileNotFound:  http.StatusNotFound,
	errors.ErrCodeEmptyScene:    http.StatusConflict,
	errors.ErrCodeUnsupported:   http.StatusNotImplemented,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	body := errorDetail{Code: errors.ErrCodeInternal, Message: err.Error()}
	var e *errors.Error
	if stderrors.As(err, &e) {
		body = errorDetail{Code: e.Code, Message: e.Message, Details: e.Details}
	}
	status, ok := statusByCode[body.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{Error: body})
}
