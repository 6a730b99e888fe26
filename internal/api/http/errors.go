package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"devnotes/internal/model"
	"devnotes/internal/repository"
)

// Коды ошибок в теле ответа
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errNotFound = errors.New("not found")

// handleError конвертирует внутренние ошибки в HTTP статус и код
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, CodeInternal

	switch {
	case errors.Is(err, model.ErrValidation):
		status, code = http.StatusBadRequest, CodeValidation
	case errors.Is(err, repository.ErrNoteNotFound), errors.Is(err, errNotFound):
		status, code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, repository.ErrStorageUnavailable):
		status, code = http.StatusServiceUnavailable, CodeStorageUnavailable
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: internal error: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

// decodeJSON читает тело запроса; ошибки разбора считаются ошибками валидации
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(model.ErrValidation, err)
	}
	return nil
}
