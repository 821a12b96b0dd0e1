package models

import (
	"errors"

	"github.com/m04kA/SalonBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента.
// Клиент идентифицируется по ID или по email (для записей без учётной записи).
type GetCustomerBookingsRequest struct {
	CustomerID       *int64  `json:"customerId,omitempty"`
	Email            *string `json:"email,omitempty"`
	Status           *string `json:"status,omitempty"`
	IncludeCancelled bool    `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCustomerBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID:       r.CustomerID,
		Email:            r.Email,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64   `json:"id"`
	CustomerID         *int64  `json:"customerId,omitempty"`
	Email              string  `json:"email"`
	BookingDate        string  `json:"bookingDate"` // "2025-10-15"
	StartTime          string  `json:"startTime"`   // "10:00"
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	TreatmentID        int64   `json:"treatmentId"`
	TreatmentName      string  `json:"treatmentName"`
	TreatmentPrice     float64 `json:"treatmentPrice"`
	GroupID            string  `json:"groupId"`
	GroupIndex         int     `json:"groupIndex"`
	GroupTotal         int     `json:"groupTotal"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// DiscountResponse применённая к записи скидка
type DiscountResponse struct {
	Type       string  `json:"type"` // "loyalty" | "birthday" | "none"
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// ConfirmBookingResponse ответ на подтверждение записи
type ConfirmBookingResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalPrice float64           `json:"totalPrice"`
	Discount   *DiscountResponse `json:"discount,omitempty"`
	FinalPrice float64           `json:"finalPrice"`
}

// Конвертация domain <-> models

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		Email:              b.Email,
		BookingDate:        b.Date.String(),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		TreatmentID:        b.TreatmentID,
		TreatmentName:      b.TreatmentName,
		TreatmentPrice:     b.TreatmentPrice,
		GroupID:            b.GroupID.String(),
		GroupIndex:         b.GroupIndex,
		GroupTotal:         b.GroupTotal,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
	}
}

// FromDomainBookingList конвертирует список доменных моделей в ответ
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}

// FromDomainDiscount конвертирует информацию о скидке в ответ
func FromDomainDiscount(info *domain.DiscountInfo) *DiscountResponse {
	if info == nil || info.Type == domain.DiscountNone {
		return nil
	}
	return &DiscountResponse{
		Type:       string(info.Type),
		Percentage: info.Percentage,
		Amount:     info.Amount,
	}
}

// ToDomainBookingStatus конвертирует строку в доменный статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
