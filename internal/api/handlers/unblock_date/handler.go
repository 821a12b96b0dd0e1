package unblock_date

import (
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle DELETE /api/v1/blocked-times
// Query params: date (required, YYYY-MM-DD) - снимает все блокировки даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("DELETE /blocked-times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := types.ParseDateOnly(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /blocked-times - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.UnblockDate(r.Context(), date)
	if err != nil {
		h.logger.Error("DELETE /blocked-times - Failed to unblock date: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /blocked-times - Date unblocked: date=%s, deleted=%d", dateStr, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
