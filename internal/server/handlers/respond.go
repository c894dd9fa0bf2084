package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/terminplaner/pkg/api"
)

// Пользовательские сообщения API
const (
	msgValidation     = "Validierungsfehler."
	msgUsernameTaken  = "Benutzername ist bereits vergeben."
	msgBadCredentials = "Benutzername oder Passwort ist falsch."
	msgInternal       = "Ein interner Serverfehler ist aufgetreten."
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendValidationError отправляет 400 со списком всех нарушенных правил
func sendValidationError(logger *slog.Logger, w http.ResponseWriter, violations []string) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: msgValidation,
		Errors:  violations,
	}
	sendJSON(logger, w, resp, http.StatusBadRequest)
}

// sendStorageError отправляет 500, скрывая детали от клиента.
// В development режиме детали дублируются в поле detail.
func sendStorageError(logger *slog.Logger, w http.ResponseWriter, development bool, err error) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: msgInternal,
	}
	if development && err != nil {
		resp.Detail = err.Error()
	}
	sendJSON(logger, w, resp, http.StatusInternalServerError)
}
