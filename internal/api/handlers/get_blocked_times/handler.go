package get_blocked_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

const (
	msgMissingRange = "параметры from и to обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
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

// Handle GET /api/v1/blocked-times
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /blocked-times - Missing range params")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := types.ParseDateOnly(fromStr)
	if err != nil {
		h.logger.Warn("GET /blocked-times - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := types.ParseDateOnly(toStr)
	if err != nil {
		h.logger.Warn("GET /blocked-times - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByRange(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, blockedtime.ErrInvalidInput):
			h.logger.Warn("GET /blocked-times - Invalid range: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /blocked-times - Failed to list blocked times: from=%s, to=%s, error=%v",
				fromStr, toStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /blocked-times - Blocked times retrieved: from=%s, to=%s, count=%d",
		fromStr, toStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
