package reconcile_discount

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

type DiscountService interface {
	ReconcileCounter(ctx context.Context, customerID int64) error
	GetCounter(ctx context.Context, customerID int64) (*domain.DiscountCounter, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
