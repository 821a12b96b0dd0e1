package reconcile_discount

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
)

const msgInvalidCustomerID = "некорректный ID клиента"

type Handler struct {
	service DiscountService
	logger  Logger
}

func NewHandler(service DiscountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers/{customerId}/discount/reconcile
//
// Пересчитывает счётчик лояльности по фактическим подтверждённым
// записям и возвращает состояние после сверки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /customers/{id}/discount/reconcile - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	if err := h.service.ReconcileCounter(r.Context(), customerID); err != nil {
		h.logger.Error("POST /customers/{id}/discount/reconcile - Reconciliation failed: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	counter, err := h.service.GetCounter(r.Context(), customerID)
	if err != nil {
		h.logger.Error("POST /customers/{id}/discount/reconcile - Failed to get counter: customer_id=%d, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /customers/{id}/discount/reconcile - Counter reconciled: customer_id=%d, count=%d",
		customerID, counter.TreatmentCount)
	handlers.RespondJSON(w, http.StatusOK, FromDomainCounter(counter))
}
