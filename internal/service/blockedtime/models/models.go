package models

import (
	"github.com/m04kA/SalonBookingService/internal/domain"
)

// Request модели

// BlockRequest запрос на блокировку времени.
// Диапазон дат разворачивается в отдельную запись на каждый день.
// Пустая пара времени означает блок на весь день.
type BlockRequest struct {
	DateFrom  string  `json:"dateFrom"`            // "2025-10-15"
	DateTo    *string `json:"dateTo,omitempty"`    // включительно; nil - один день
	StartTime *string `json:"startTime,omitempty"` // "13:00"; nil - весь день
	EndTime   *string `json:"endTime,omitempty"`   // "15:00"
	Reason    string  `json:"reason"`
	CreatedBy int64   `json:"-"` // ID администратора из middleware
}

// Response модели

// BlockedTimeResponse ответ с данными блокировки
type BlockedTimeResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	IsFullDay bool   `json:"isFullDay"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Reason    string `json:"reason"`
	CreatedBy int64  `json:"createdBy"`
}

// BlockedTimeListResponse ответ со списком блокировок
type BlockedTimeListResponse struct {
	BlockedTimes []BlockedTimeResponse `json:"blockedTimes"`
	Total        int                   `json:"total"`
}

// UnblockDateResponse ответ на снятие всех блокировок даты
type UnblockDateResponse struct {
	Deleted int64 `json:"deleted"`
}

// Конвертация domain -> models

// FromDomainBlockedTime конвертирует доменную модель в ответ
func FromDomainBlockedTime(b *domain.BlockedTime) *BlockedTimeResponse {
	return &BlockedTimeResponse{
		ID:        b.ID,
		Date:      b.Date.String(),
		IsFullDay: b.IsFullDay,
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
	}
}

// FromDomainBlockedTimeList конвертирует список доменных моделей в ответ
func FromDomainBlockedTimeList(blocks []*domain.BlockedTime) *BlockedTimeListResponse {
	result := make([]BlockedTimeResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, *FromDomainBlockedTime(b))
	}
	return &BlockedTimeListResponse{BlockedTimes: result, Total: len(result)}
}
