package get_blocked_times

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

type BlockedTimeService interface {
	ListByRange(ctx context.Context, from, to types.DateOnly) (*models.BlockedTimeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
