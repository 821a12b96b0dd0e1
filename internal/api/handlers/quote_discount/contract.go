package quote_discount

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

type DiscountService interface {
	CalculateDiscount(ctx context.Context, customerID int64, originalPrice float64) (*domain.DiscountInfo, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
