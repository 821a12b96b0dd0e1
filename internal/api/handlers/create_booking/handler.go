package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени"
	msgInvalidInput         = "некорректные данные записи"
	msgInvalidDate          = "дата записи в прошлом"
	msgTreatmentNotFound    = "процедура не найдена"
	msgTreatmentUnavailable = "процедура недоступна для записи"
	msgSalonClosed          = "салон закрыт в выбранное время"
	msgSlotNotAvailable     = "выбранное время уже занято"
	msgTooLateToBook        = "до начала записи осталось слишком мало времени"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrTreatmentNotFound):
			h.logger.Warn("POST /bookings - Treatment not found: treatments=%v", req.TreatmentIDs)
			handlers.RespondNotFound(w, msgTreatmentNotFound)

		case errors.Is(err, createBooking.ErrTreatmentUnavailable):
			h.logger.Warn("POST /bookings - Treatment unavailable: treatments=%v", req.TreatmentIDs)
			handlers.RespondBadRequest(w, msgTreatmentUnavailable)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSalonClosed)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: group_id=%s, bookings=%d",
		result.GroupID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
