package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	treatmentRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/treatment"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Config параметры проверки времени записи
type Config struct {
	Schedule      domain.WeekSchedule // рабочие часы по дням недели
	BufferMinutes int                 // минимальный запас до начала записи сегодня
}

// UseCase use case создания записи из корзины процедур.
//
// Вся цепочка процедур проверяется и записывается в одной сериализуемой
// транзакции: чтение бронирований дня блокирует их (FOR UPDATE), поэтому
// две конкурирующие записи на пересекающееся время не могут пройти обе.
type UseCase struct {
	bookingRepo   BookingRepository
	blockedRepo   BlockedTimeRepository
	treatmentRepo TreatmentRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	cfg           Config
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedTimeRepository,
	treatmentRepo TreatmentRepository,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		blockedRepo:   blockedRepo,
		treatmentRepo: treatmentRepo,
		txManager:     txManager,
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

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, date=%s, time=%s, treatments=%v",
		req.Email, req.Date, req.StartTime, req.TreatmentIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.DateOnlyFromTime(now)

	if req.Date.Before(today) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
		return nil, ErrInvalidDate
	}

	// 3. Получаем процедуры в порядке запроса
	treatments, err := uc.treatmentRepo.GetByIDs(ctx, req.TreatmentIDs)
	if err != nil {
		if errors.Is(err, treatmentRepo.ErrTreatmentNotFound) {
			uc.logger.Warn("CreateBooking: unknown treatment in %v", req.TreatmentIDs)
			return nil, ErrTreatmentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get treatments: %v", err)
		return nil, fmt.Errorf("%w: failed to get treatments: %v", ErrInternal, err)
	}

	for _, t := range treatments {
		if !t.IsActive {
			uc.logger.Warn("CreateBooking: treatment id=%d is inactive", t.ID)
			return nil, ErrTreatmentUnavailable
		}
	}

	// 4. Выстраиваем цепочку интервалов встык от времени начала
	chain, err := chainIntervals(req.StartTime, treatments)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid treatment chain: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 5. Цепочка должна помещаться в рабочие часы
	day := uc.cfg.Schedule.ForDate(req.Date)
	if err := validateChainWithinHours(day, chain); err != nil {
		uc.logger.Warn("CreateBooking: chain does not fit working hours on %s", req.Date)
		return nil, err
	}

	// 6. Для сегодняшней даты - минимальный запас до начала
	if req.Date.Equal(today) {
		nowMinute := now.Hour()*60 + now.Minute()
		if chain[0].StartMinute < nowMinute+uc.cfg.BufferMinutes {
			uc.logger.Warn("CreateBooking: start %s is within %d-minute buffer", req.StartTime, uc.cfg.BufferMinutes)
			return nil, ErrTooLateToBook
		}
	}

	var created []*domain.Booking

	// 7. Проверка конфликтов и запись всей цепочки в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокировки дня
		blocks, err := uc.blockedRepo.ListWithFilter(txCtx, domain.BlockedTimesFilter{Date: &req.Date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked times: %v", err)
			return fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
		}

		busy := make([]domain.Interval, 0, len(blocks))
		for _, b := range blocks {
			if b.IsFullDay {
				uc.logger.Warn("CreateBooking: date %s is fully blocked", req.Date)
				return ErrSlotNotAvailable
			}
			iv, err := b.Interval()
			if err != nil {
				return fmt.Errorf("%w: stored block id=%d has invalid interval: %v", ErrInternal, b.ID, err)
			}
			busy = append(busy, iv)
		}

		// 7.2. Активные бронирования дня с блокировкой строк (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListWithFilter(txCtx, domain.BookingsFilter{Date: &req.Date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, b := range bookings {
			iv, err := b.Interval()
			if err != nil {
				continue
			}
			busy = append(busy, iv)
		}

		// 7.3. Каждое звено цепочки проверяется общим предикатом пересечения
		for _, link := range chain {
			if domain.HasConflict(link, busy) {
				uc.logger.Warn("CreateBooking: chain link %d-%d conflicts on %s",
					link.StartMinute, link.EndMinute, req.Date)
				return ErrSlotNotAvailable
			}
		}

		// 7.4. Создаем строки записи с общим GroupID
		groupID := uuid.New()
		created = make([]*domain.Booking, 0, len(treatments))

		for i, t := range treatments {
			startTime, err := types.NewTimeStringFromMinutes(chain[i].StartMinute)
			if err != nil {
				return fmt.Errorf("%w: failed to format start time: %v", ErrInternal, err)
			}

			booking := &domain.Booking{
				CustomerID:      req.CustomerID,
				Email:           req.Email,
				Date:            req.Date,
				StartTime:       startTime,
				DurationMinutes: t.DurationMinutes,
				Status:          domain.StatusPending,
				TreatmentID:     t.ID,
				TreatmentName:   t.Name,
				TreatmentPrice:  t.Price,
				GroupID:         groupID,
				GroupIndex:      i + 1,
				GroupTotal:      len(treatments),
				Notes:           req.Notes,
			}

			row, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create booking row %d/%d: %v",
					i+1, len(treatments), err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
			created = append(created, row)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created group %s with %d booking(s)",
		created[0].GroupID, len(created))

	return buildResponse(created), nil
}

func buildResponse(created []*domain.Booking) *Response {
	response := &Response{
		GroupID:   created[0].GroupID.String(),
		Date:      created[0].Date,
		Status:    string(created[0].Status),
		CreatedAt: created[0].CreatedAt,
		Bookings:  make([]CreatedBooking, 0, len(created)),
	}

	for _, b := range created {
		response.Bookings = append(response.Bookings, CreatedBooking{
			ID:              b.ID,
			StartTime:       b.StartTime,
			DurationMinutes: b.DurationMinutes,
			TreatmentID:     b.TreatmentID,
			TreatmentName:   b.TreatmentName,
			TreatmentPrice:  b.TreatmentPrice,
		})
		response.TotalPrice += b.TreatmentPrice
	}

	return response
}
