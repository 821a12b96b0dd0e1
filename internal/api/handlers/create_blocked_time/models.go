package create_blocked_time

import (
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
)

// CreateBlockedTimeRequest HTTP request model.
// Пустая пара startTime/endTime означает блок на весь день.
type CreateBlockedTimeRequest struct {
	DateFrom  string  `json:"dateFrom"`
	DateTo    *string `json:"dateTo,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// ID администратора берётся из контекста, а не из тела запроса.
func (r *CreateBlockedTimeRequest) ToServiceRequest(adminID int64) *models.BlockRequest {
	return &models.BlockRequest{
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
		CreatedBy: adminID,
	}
}
