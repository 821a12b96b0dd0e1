package unblock_date

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

type BlockedTimeService interface {
	UnblockDate(ctx context.Context, date types.DateOnly) (*models.UnblockDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
