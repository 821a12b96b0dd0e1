package quote_discount

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
)

// DiscountProgressResponse прогресс накопления скидки лояльности
type DiscountProgressResponse struct {
	Current   int `json:"current"`
	Required  int `json:"required"`
	Remaining int `json:"remaining"`
}

// DiscountQuoteResponse HTTP response model.
// Type="none" означает, что скидка сейчас не положена.
type DiscountQuoteResponse struct {
	Type       string                   `json:"type"`
	Percentage float64                  `json:"percentage"`
	Amount     float64                  `json:"amount"`
	Eligible   bool                     `json:"eligible"`
	Progress   DiscountProgressResponse `json:"progress"`
}

// FromDomainDiscount конвертирует результат расчёта в HTTP response
func FromDomainDiscount(info *domain.DiscountInfo) *DiscountQuoteResponse {
	return &DiscountQuoteResponse{
		Type:       string(info.Type),
		Percentage: info.Percentage,
		Amount:     info.Amount,
		Eligible:   info.Eligible,
		Progress: DiscountProgressResponse{
			Current:   info.Progress.Current,
			Required:  info.Progress.Required,
			Remaining: info.Progress.Remaining,
		},
	}
}
