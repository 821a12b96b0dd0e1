package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	treatmentRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/treatment"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Config параметры движка доступности
type Config struct {
	Schedule      domain.WeekSchedule // рабочие часы по дням недели
	GridMinutes   int                 // шаг сетки кандидатов
	BufferMinutes int                 // минимальный запас до начала слота сегодня

	// AllowDegraded: при сбое чтения бронирований или блокировок считать
	// коллекцию пустой и помечать ответ флагом Degraded вместо ошибки
	AllowDegraded bool
}

// UseCase use case получения доступных слотов.
// Чистая функция от входных данных и инжектированного времени:
// одинаковый запрос при одинаковом состоянии дня даёт одинаковый список.
type UseCase struct {
	bookingRepo   BookingRepository
	blockedRepo   BlockedTimeRepository
	treatmentRepo TreatmentRepository
	timeProvider  TimeProvider
	cfg           Config
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedTimeRepository,
	treatmentRepo TreatmentRepository,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		blockedRepo:   blockedRepo,
		treatmentRepo: treatmentRepo,
		timeProvider:  &RealTimeProvider{},
		cfg:           cfg,
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d, treatments=%v",
		req.Date, req.DurationMinutes, req.TreatmentIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.DateOnlyFromTime(now)

	if err := validateDate(req.Date, today); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date)
		return nil, err
	}

	// 3. Вычисляем длительность: напрямую или суммой цепочки процедур
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           []types.TimeString{},
	}

	// 4. Блокировки дня; блок на весь день закрывает выдачу сразу
	blocks, err := uc.blockedRepo.ListWithFilter(ctx, domain.BlockedTimesFilter{Date: &req.Date})
	if err != nil {
		if !uc.cfg.AllowDegraded {
			uc.logger.Error("GetAvailableSlots: failed to get blocked times: %v", err)
			return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
		}
		uc.logger.Error("GetAvailableSlots: blocked times unavailable, serving degraded response: %v", err)
		blocks = nil
		response.Degraded = true
	}

	if hasFullDayBlock(blocks) {
		uc.logger.Info("GetAvailableSlots: date %s is fully blocked", req.Date)
		return response, nil
	}

	// 5. Рабочие часы на день недели; выходной - пустой список
	day := uc.cfg.Schedule.ForDate(req.Date)
	if !day.IsOpen {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", req.Date)
		return response, nil
	}

	// 6. Генерируем кандидатов по сетке
	candidates, err := generateCandidateSlots(day, uc.cfg.GridMinutes, duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Для сегодняшней даты отбрасываем слоты ближе буфера
	if req.Date.Equal(today) {
		nowMinute := now.Hour()*60 + now.Minute()
		candidates = filterTodayBuffer(candidates, nowMinute, uc.cfg.BufferMinutes)
	}

	// 8. Активные бронирования дня
	bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{Date: &req.Date})
	if err != nil {
		if !uc.cfg.AllowDegraded {
			uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		uc.logger.Error("GetAvailableSlots: bookings unavailable, serving degraded response: %v", err)
		bookings = nil
		response.Degraded = true
	}

	// 9. Отбрасываем кандидатов с конфликтами
	available, err := filterConflicts(candidates, duration, busyIntervals(bookings, blocks))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to filter conflicts: %v", ErrInternal, err)
	}

	response.Slots = available

	uc.logger.Info("GetAvailableSlots: %d slot(s) available on %s for duration=%d, degraded=%t",
		len(available), req.Date, duration, response.Degraded)
	return response, nil
}

// resolveDuration возвращает длительность запроса: сумму длительностей
// процедур, если задан их список, иначе явную длительность
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if len(req.TreatmentIDs) == 0 {
		return req.DurationMinutes, nil
	}

	treatments, err := uc.treatmentRepo.GetByIDs(ctx, req.TreatmentIDs)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: unknown treatment in %v", req.TreatmentIDs)
			return 0, ErrTreatmentNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get treatments: %v", err)
		return 0, fmt.Errorf("%w: failed to get treatments: %v", ErrInternal, err)
	}

	total := 0
	for _, t := range treatments {
		total += t.DurationMinutes
	}
	return total, nil
}
