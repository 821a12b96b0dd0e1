package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.TreatmentIDs) == 0 {
		return fmt.Errorf("%w: at least one treatment is required", ErrInvalidInput)
	}
	if len(req.TreatmentIDs) > domain.MaxTreatmentsPerCheckout {
		return fmt.Errorf("%w: at most %d treatments per booking", ErrInvalidInput, domain.MaxTreatmentsPerCheckout)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// chainIntervals выстраивает интервалы процедур встык от времени начала.
// Возвращает интервал на каждую процедуру в порядке запроса.
func chainIntervals(start types.TimeString, treatments []*domain.Treatment) ([]domain.Interval, error) {
	startMinute, err := start.Minutes()
	if err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(treatments))
	current := startMinute
	for _, t := range treatments {
		end := current + t.DurationMinutes
		if end > types.MinutesPerDay {
			return nil, fmt.Errorf("treatment chain runs past midnight")
		}
		intervals = append(intervals, domain.Interval{StartMinute: current, EndMinute: end})
		current = end
	}

	return intervals, nil
}

// validateChainWithinHours проверяет, что вся цепочка помещается
// в рабочие часы дня
func validateChainWithinHours(day domain.DaySchedule, chain []domain.Interval) error {
	if !day.IsOpen {
		return ErrSalonClosed
	}

	openMinute, err := day.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMinute, err := day.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	first := chain[0]
	last := chain[len(chain)-1]
	if first.StartMinute < openMinute || last.EndMinute > closeMinute {
		return ErrSalonClosed
	}

	return nil
}
