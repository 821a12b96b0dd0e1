package create_blocked_time

import (
	"context"

	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
)

type BlockedTimeService interface {
	Block(ctx context.Context, req *models.BlockRequest) (*models.BlockedTimeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
