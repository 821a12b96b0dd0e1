package reconcile_discount

import (
	"time"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

// CounterResponse состояние счётчика лояльности после сверки
type CounterResponse struct {
	CustomerID     int64   `json:"customerId"`
	TreatmentCount int     `json:"treatmentCount"`
	LastRedemption *string `json:"lastRedemption,omitempty"`
}

// FromDomainCounter конвертирует доменную модель счётчика в HTTP response
func FromDomainCounter(counter *domain.DiscountCounter) *CounterResponse {
	response := &CounterResponse{
		CustomerID:     counter.CustomerID,
		TreatmentCount: counter.TreatmentCount,
	}
	if counter.LastRedemption != nil {
		formatted := counter.LastRedemption.Format(time.RFC3339)
		response.LastRedemption = &formatted
	}
	return response
}
