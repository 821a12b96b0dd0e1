package delete_blocked_time

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
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

// Handle DELETE /api/v1/blocked-times/{blockedTimeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockIDStr := vars["blockedTimeId"]

	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-times/{id} - Invalid blocked time ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	err = h.service.Unblock(r.Context(), blockID)
	if err != nil {
		switch {
		case errors.Is(err, blockedtime.ErrBlockedTimeNotFound):
			h.logger.Warn("DELETE /blocked-times/{id} - Blocked time not found: id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /blocked-times/{id} - Failed to delete blocked time: id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-times/{id} - Blocked time deleted: id=%d", blockID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
