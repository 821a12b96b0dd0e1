package blockedtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	blockedRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blockedtime"
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Пределы разворачивания диапазона дат в отдельные блокировки
const maxBlockRangeDays = 62

// Service сервис администрирования блокировок календаря.
//
// Поддерживаемые инварианты:
// - блок на весь день вытесняет частичные блоки этой даты;
// - частичные блоки одной даты не пересекаются;
// - частичный блок нельзя добавить на полностью закрытую дату.
type Service struct {
	blockedRepo BlockedTimeRepository
	txManager   TransactionManager
	time        TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockedRepo BlockedTimeRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo: blockedRepo,
		txManager:   txManager,
		time:        timeProvider,
		logger:      logger,
	}
}

// Block блокирует время в календаре. Диапазон дат разворачивается
// в отдельную запись на каждый день; вся группа создаётся в одной
// сериализуемой транзакции, чтобы проверка пересечений и запись
// были атомарны.
func (s *Service) Block(ctx context.Context, req *models.BlockRequest) (*models.BlockedTimeListResponse, error) {
	dates, fullDay, interval, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Block: blocking %d day(s) from %s, fullDay=%t, admin=%d",
		len(dates), dates[0], fullDay, req.CreatedBy)

	created := make([]*domain.BlockedTime, 0, len(dates))

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		for _, date := range dates {
			block, err := s.blockDay(ctx, req, date, fullDay, interval)
			if err != nil {
				return err
			}
			created = append(created, block)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBlockOverlap) || errors.Is(err, ErrDayFullyBlocked) {
			return nil, err
		}
		s.logger.Error("Block: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Block - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Block: created %d blocked time(s)", len(created))
	return models.FromDomainBlockedTimeList(created), nil
}

// Unblock снимает блокировку по ID
func (s *Service) Unblock(ctx context.Context, id int64) error {
	s.logger.Info("Unblock: deleting blocked time id=%d", id)

	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedTimeNotFound) {
			s.logger.Warn("Unblock: blocked time id=%d not found", id)
			return ErrBlockedTimeNotFound
		}
		s.logger.Error("Unblock: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// UnblockDate снимает все блокировки указанной даты
func (s *Service) UnblockDate(ctx context.Context, date types.DateOnly) (*models.UnblockDateResponse, error) {
	s.logger.Info("UnblockDate: deleting all blocked times for date=%s", date)

	deleted, err := s.blockedRepo.DeleteByDate(ctx, date, false)
	if err != nil {
		s.logger.Error("UnblockDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: UnblockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockDate: deleted %d blocked time(s) for date=%s", deleted, date)
	return &models.UnblockDateResponse{Deleted: deleted}, nil
}

// ListByRange возвращает блокировки периода для календаря администратора
func (s *Service) ListByRange(ctx context.Context, from, to types.DateOnly) (*models.BlockedTimeListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}

	blocks, err := s.blockedRepo.ListWithFilter(ctx, domain.BlockedTimesFilter{
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		s.logger.Error("ListByRange: repository error for %s..%s: %v", from, to, err)
		return nil, fmt.Errorf("%w: ListByRange - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedTimeList(blocks), nil
}

// Вспомогательные методы

// blockDay создает блокировку одного дня с проверкой инвариантов
func (s *Service) blockDay(ctx context.Context, req *models.BlockRequest, date types.DateOnly, fullDay bool, interval domain.Interval) (*domain.BlockedTime, error) {
	if fullDay {
		// Блок на весь день вытесняет частичные
		if _, err := s.blockedRepo.DeleteByDate(ctx, date, true); err != nil {
			return nil, fmt.Errorf("delete partial blocks for %s: %w", date, err)
		}
	} else {
		existing, err := s.blockedRepo.ListWithFilter(ctx, domain.BlockedTimesFilter{Date: &date})
		if err != nil {
			return nil, fmt.Errorf("list blocks for %s: %w", date, err)
		}

		for _, b := range existing {
			if b.IsFullDay {
				s.logger.Warn("Block: date=%s is already fully blocked by id=%d", date, b.ID)
				return nil, ErrDayFullyBlocked
			}
			blockInterval, err := b.Interval()
			if err != nil {
				return nil, fmt.Errorf("stored block id=%d has invalid interval: %w", b.ID, err)
			}
			if interval.Overlaps(blockInterval) {
				s.logger.Warn("Block: requested interval overlaps block id=%d on date=%s", b.ID, date)
				return nil, ErrBlockOverlap
			}
		}
	}

	block := &domain.BlockedTime{
		Date:      date,
		IsFullDay: fullDay,
		Reason:    req.Reason,
		CreatedBy: req.CreatedBy,
	}
	if !fullDay {
		block.StartTime = types.TimeString(*req.StartTime)
		block.EndTime = types.TimeString(*req.EndTime)
	}

	return s.blockedRepo.Create(ctx, block)
}

// parseRequest валидирует запрос и разворачивает диапазон дат
func (s *Service) parseRequest(req *models.BlockRequest) ([]types.DateOnly, bool, domain.Interval, error) {
	var interval domain.Interval

	if len(req.Reason) > domain.MaxReasonLength {
		return nil, false, interval, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	from, err := types.ParseDateOnly(req.DateFrom)
	if err != nil {
		return nil, false, interval, fmt.Errorf("%w: invalid dateFrom: %v", ErrInvalidInput, err)
	}

	to := from
	if req.DateTo != nil {
		to, err = types.ParseDateOnly(*req.DateTo)
		if err != nil {
			return nil, false, interval, fmt.Errorf("%w: invalid dateTo: %v", ErrInvalidInput, err)
		}
	}

	if to.Before(from) {
		return nil, false, interval, fmt.Errorf("%w: dateTo before dateFrom", ErrInvalidInput)
	}

	today := types.DateOnlyFromTime(s.time.Now())
	if from.Before(today) {
		return nil, false, interval, fmt.Errorf("%w: cannot block past dates", ErrInvalidInput)
	}

	var dates []types.DateOnly
	for d := from; !d.After(to); d = d.AddDays(1) {
		dates = append(dates, d)
		if len(dates) > maxBlockRangeDays {
			return nil, false, interval, fmt.Errorf("%w: date range exceeds %d days", ErrInvalidInput, maxBlockRangeDays)
		}
	}

	// Оба времени отсутствуют - блок на весь день
	if req.StartTime == nil && req.EndTime == nil {
		return dates, true, interval, nil
	}

	if req.StartTime == nil || req.EndTime == nil {
		return nil, false, interval, fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(*req.StartTime)
	if err != nil {
		return nil, false, interval, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(*req.EndTime)
	if err != nil {
		return nil, false, interval, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	interval, err = domain.NewIntervalFromRange(start, end)
	if err != nil {
		return nil, false, interval, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return dates, false, interval, nil
}
