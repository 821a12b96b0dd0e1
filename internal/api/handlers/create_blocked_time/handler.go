package create_blocked_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные блокировки"
	msgBlockOverlap       = "интервал пересекается с существующей блокировкой"
	msgDayFullyBlocked    = "дата уже заблокирована целиком"
)

type Handler struct {
	service BlockedTimeService
	logger  Logger
}

func NewHandler(service BlockedTimeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocked-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /blocked-times - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockedTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Block(r.Context(), req.ToServiceRequest(adminID))
	if err != nil {
		switch {
		case errors.Is(err, blockedtime.ErrInvalidInput):
			h.logger.Warn("POST /blocked-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blockedtime.ErrBlockOverlap):
			h.logger.Warn("POST /blocked-times - Block overlap: dateFrom=%s", req.DateFrom)
			handlers.RespondConflict(w, msgBlockOverlap)

		case errors.Is(err, blockedtime.ErrDayFullyBlocked):
			h.logger.Warn("POST /blocked-times - Day fully blocked: dateFrom=%s", req.DateFrom)
			handlers.RespondConflict(w, msgDayFullyBlocked)

		default:
			h.logger.Error("POST /blocked-times - Failed to block time: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocked-times - Blocked time created: admin_id=%d, count=%d", adminID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
