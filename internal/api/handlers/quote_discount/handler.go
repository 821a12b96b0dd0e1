package quote_discount

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/discounts"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgMissingPrice      = "цена обязательна"
	msgInvalidPrice      = "некорректная цена"
)

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

// Handle GET /api/v1/customers/{customerId}/discount
// Query params: price (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/discount - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	priceStr := r.URL.Query().Get("price")
	if priceStr == "" {
		h.logger.Warn("GET /customers/{id}/discount - Missing price: customer_id=%d", customerID)
		handlers.RespondBadRequest(w, msgMissingPrice)
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/discount - Invalid price: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPrice)
		return
	}

	info, err := h.service.CalculateDiscount(r.Context(), customerID, price)
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/discount - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidPrice)

		default:
			h.logger.Error("GET /customers/{id}/discount - Failed to calculate discount: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/discount - Discount calculated: customer_id=%d, type=%s, amount=%.2f",
		customerID, info.Type, info.Amount)
	handlers.RespondJSON(w, http.StatusOK, FromDomainDiscount(info))
}
