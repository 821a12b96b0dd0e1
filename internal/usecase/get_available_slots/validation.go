package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.TreatmentIDs) == 0 && req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes or treatmentIds is required", ErrInvalidInput)
	}

	if len(req.TreatmentIDs) > domain.MaxTreatmentsPerCheckout {
		return fmt.Errorf("%w: at most %d treatments per request", ErrInvalidInput, domain.MaxTreatmentsPerCheckout)
	}

	if len(req.TreatmentIDs) == 0 && req.DurationMinutes > domain.MaxTreatmentDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxTreatmentDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, today types.DateOnly) error {
	if date.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
