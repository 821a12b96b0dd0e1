package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgUnauthorized  = "требуется аутентификация"
	msgForbidden     = "доступ запрещен"
	msgNotFound      = "ресурс не найден"
	msgInternalError = "внутренняя ошибка сервера"
)

// DecodeJSON декодирует тело запроса в указанную структуру.
// Неизвестные поля считаются ошибкой клиента.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом.
// При v == nil отправляется только статус без тела.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	if v == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ошибка записи в уже начатый ответ не восстановима
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ответ с ошибкой и указанным статусом
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

// RespondBadRequest пишет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusBadRequest, msg)
}

// RespondUnauthorized пишет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = msgUnauthorized
	}
	RespondError(w, http.StatusUnauthorized, msg)
}

// RespondForbidden пишет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = msgForbidden
	}
	RespondError(w, http.StatusForbidden, msg)
}

// RespondNotFound пишет 404 Not Found
func RespondNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = msgNotFound
	}
	RespondError(w, http.StatusNotFound, msg)
}

// RespondConflict пишет 409 Conflict
func RespondConflict(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusConflict, msg)
}

// RespondInternalError пишет 500 Internal Server Error.
// Детали внутренней ошибки клиенту не раскрываются.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
