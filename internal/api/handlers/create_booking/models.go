package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model.
// customerId опционален: запись без него считается гостевой
// и сопоставляется с клиентом по email.
type CreateBookingRequest struct {
	CustomerID   *int64  `json:"customerId,omitempty"`
	Email        string  `json:"email"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	TreatmentIDs []int64 `json:"treatmentIds"`
	Notes        *string `json:"notes,omitempty"`
}

// CreatedBookingResponse одна строка созданной записи
type CreatedBookingResponse struct {
	ID              int64   `json:"id"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	TreatmentID     int64   `json:"treatmentId"`
	TreatmentName   string  `json:"treatmentName"`
	TreatmentPrice  float64 `json:"treatmentPrice"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	GroupID    string                   `json:"groupId"`
	Date       string                   `json:"date"`
	Status     string                   `json:"status"`
	Bookings   []CreatedBookingResponse `json:"bookings"`
	TotalPrice float64                  `json:"totalPrice"`
	CreatedAt  string                   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := types.ParseDateOnly(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:   r.CustomerID,
		Email:        r.Email,
		Date:         date,
		StartTime:    startTime,
		TreatmentIDs: r.TreatmentIDs,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]CreatedBookingResponse, len(resp.Bookings))
	for i, b := range resp.Bookings {
		bookings[i] = CreatedBookingResponse{
			ID:              b.ID,
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			TreatmentID:     b.TreatmentID,
			TreatmentName:   b.TreatmentName,
			TreatmentPrice:  b.TreatmentPrice,
		}
	}

	return &CreateBookingResponse{
		GroupID:    resp.GroupID,
		Date:       resp.Date.String(),
		Status:     resp.Status,
		Bookings:   bookings,
		TotalPrice: resp.TotalPrice,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
