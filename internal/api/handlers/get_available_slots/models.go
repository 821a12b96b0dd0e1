package get_available_slots

import (
	"fmt"
	"strconv"
	"strings"

	getAvailableSlots "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
	Degraded        bool     `json:"degraded,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Длительность задается либо durationMinutes, либо списком treatmentIds.
func ToUseCaseRequest(dateStr, durationStr, treatmentIDsStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDateOnly(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{Date: date}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, fmt.Errorf("invalid durationMinutes: %w", err)
		}
		req.DurationMinutes = duration
	}

	if treatmentIDsStr != "" {
		for _, part := range strings.Split(treatmentIDsStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid treatmentIds: %w", err)
			}
			req.TreatmentIDs = append(req.TreatmentIDs, id)
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Degraded:        resp.Degraded,
	}
}
