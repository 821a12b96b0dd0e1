package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	counterRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/discount"
	customerRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Config параметры скидочной программы
type Config struct {
	LoyaltyThreshold   int     // процедур до скидки лояльности
	LoyaltyPercentage  float64 // размер скидки лояльности, %
	BirthdayPercentage float64 // размер скидки на день рождения, %
	BirthdayWindowDays int     // окно вокруг дня рождения, +/- дней
}

// Service сервис скидочной программы.
// Скидка лояльности и скидка на день рождения взаимоисключающие:
// лояльность проверяется первой. Единственный источник истины о том,
// была ли скидка погашена, - отметка last_redemption в счётчике.
type Service struct {
	counters  CounterRepository
	bookings  BookingRepository
	customers CustomerRepository
	time      TimeProvider
	cfg       Config
	logger    Logger
}

// NewService создает новый экземпляр сервиса скидок
func NewService(
	counters CounterRepository,
	bookings BookingRepository,
	customers CustomerRepository,
	timeProvider TimeProvider,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		counters:  counters,
		bookings:  bookings,
		customers: customers,
		time:      timeProvider,
		cfg:       cfg,
		logger:    logger,
	}
}

// CheckLoyaltyEligibility проверяет право клиента на скидку лояльности.
// Отсутствие счётчика - не ошибка: создаётся нулевой.
func (s *Service) CheckLoyaltyEligibility(ctx context.Context, customerID int64) (bool, domain.DiscountProgress, error) {
	counter, err := s.counters.GetOrCreate(ctx, customerID)
	if err != nil {
		s.logger.Error("CheckLoyaltyEligibility: counter repository error for customer=%d: %v", customerID, err)
		return false, domain.DiscountProgress{}, fmt.Errorf("%w: CheckLoyaltyEligibility - repository error: %v", ErrInternal, err)
	}

	progress := s.progress(counter.TreatmentCount)
	return counter.TreatmentCount >= s.cfg.LoyaltyThreshold, progress, nil
}

// CheckBirthdayEligibility проверяет право клиента на скидку на день рождения.
// Право есть, если сегодняшняя дата попадает в окно +/- BirthdayWindowDays
// вокруг дня рождения (с учётом перехода через границу года).
func (s *Service) CheckBirthdayEligibility(ctx context.Context, customerID int64) (bool, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("CheckBirthdayEligibility: customer=%d not found", customerID)
			return false, ErrCustomerNotFound
		}
		s.logger.Error("CheckBirthdayEligibility: repository error for customer=%d: %v", customerID, err)
		return false, fmt.Errorf("%w: CheckBirthdayEligibility - repository error: %v", ErrInternal, err)
	}

	if customer.Birthdate == nil {
		return false, ErrNoBirthdate
	}

	today := types.DateOnlyFromTime(s.time.Now())
	return inBirthdayWindow(today, *customer.Birthdate, s.cfg.BirthdayWindowDays), nil
}

// CalculateDiscount рассчитывает скидку для указанной цены.
// Лояльность имеет приоритет над днём рождения; применяется ровно одна.
// Любая ошибка вычисления приводит к ответу "без скидки": клиенту нельзя
// пообещать скидку, право на которую не удалось подтвердить.
func (s *Service) CalculateDiscount(ctx context.Context, customerID int64, originalPrice float64) (*domain.DiscountInfo, error) {
	if originalPrice < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	info := &domain.DiscountInfo{
		Type:     domain.DiscountNone,
		Progress: s.progress(0),
	}

	loyaltyOK, progress, err := s.CheckLoyaltyEligibility(ctx, customerID)
	if err != nil {
		s.logger.Warn("CalculateDiscount: loyalty check failed for customer=%d, quoting no discount: %v", customerID, err)
		return info, nil
	}
	info.Progress = progress

	if loyaltyOK {
		info.Type = domain.DiscountLoyalty
		info.Percentage = s.cfg.LoyaltyPercentage
		info.Amount = originalPrice * s.cfg.LoyaltyPercentage / 100
		info.Eligible = true
		s.logger.Info("CalculateDiscount: customer=%d eligible for loyalty discount", customerID)
		return info, nil
	}

	birthdayOK, err := s.CheckBirthdayEligibility(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNoBirthdate) || errors.Is(err, ErrCustomerNotFound) {
			return info, nil
		}
		s.logger.Warn("CalculateDiscount: birthday check failed for customer=%d, quoting no discount: %v", customerID, err)
		return info, nil
	}

	if birthdayOK {
		info.Type = domain.DiscountBirthday
		info.Percentage = s.cfg.BirthdayPercentage
		info.Amount = originalPrice * s.cfg.BirthdayPercentage / 100
		info.Eligible = true
		s.logger.Info("CalculateDiscount: customer=%d eligible for birthday discount", customerID)
	}

	return info, nil
}

// RedeemLoyaltyDiscount погашает накопленную скидку лояльности:
// счётчик сбрасывается в ноль, момент погашения фиксируется.
// Вызывается ровно один раз на бронирование, использовавшее скидку.
func (s *Service) RedeemLoyaltyDiscount(ctx context.Context, customerID int64) error {
	counter, err := s.counters.GetOrCreate(ctx, customerID)
	if err != nil {
		s.logger.Error("RedeemLoyaltyDiscount: counter repository error for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: RedeemLoyaltyDiscount - repository error: %v", ErrInternal, err)
	}

	if counter.TreatmentCount < s.cfg.LoyaltyThreshold {
		s.logger.Warn("RedeemLoyaltyDiscount: customer=%d has count=%d below threshold=%d",
			customerID, counter.TreatmentCount, s.cfg.LoyaltyThreshold)
		return ErrNotEligible
	}

	redeemedAt := s.time.Now()
	if err := s.counters.Reset(ctx, customerID, redeemedAt); err != nil {
		s.logger.Error("RedeemLoyaltyDiscount: failed to reset counter for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: RedeemLoyaltyDiscount - reset counter: %v", ErrInternal, err)
	}

	s.logger.Info("RedeemLoyaltyDiscount: customer=%d redeemed loyalty discount at %s",
		customerID, redeemedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// RecordCompletedTreatments увеличивает счётчик клиента на n процедур.
// Инкремент атомарный на стороне хранилища.
func (s *Service) RecordCompletedTreatments(ctx context.Context, customerID int64, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: treatment count must be positive", ErrInvalidInput)
	}

	if err := s.counters.Increment(ctx, customerID, n); err != nil {
		s.logger.Error("RecordCompletedTreatments: failed to increment counter for customer=%d by %d: %v", customerID, n, err)
		return fmt.Errorf("%w: RecordCompletedTreatments - increment counter: %v", ErrInternal, err)
	}

	s.logger.Info("RecordCompletedTreatments: customer=%d counter incremented by %d", customerID, n)
	return nil
}

// ReverseCompletedTreatments уменьшает счётчик клиента на n процедур.
// Декремент атомарный и ограничен нулём снизу.
func (s *Service) ReverseCompletedTreatments(ctx context.Context, customerID int64, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: treatment count must be positive", ErrInvalidInput)
	}

	if err := s.counters.Decrement(ctx, customerID, n); err != nil {
		s.logger.Error("ReverseCompletedTreatments: failed to decrement counter for customer=%d by %d: %v", customerID, n, err)
		return fmt.Errorf("%w: ReverseCompletedTreatments - decrement counter: %v", ErrInternal, err)
	}

	s.logger.Info("ReverseCompletedTreatments: customer=%d counter decremented by %d", customerID, n)
	return nil
}

// ReconcileCounter пересчитывает счётчик клиента из бронирований:
// количество подтверждённых процедур с датой строго после последнего
// погашения скидки. Исправляет дрейф между инкрементами и декрементами.
func (s *Service) ReconcileCounter(ctx context.Context, customerID int64) error {
	counter, err := s.counters.GetOrCreate(ctx, customerID)
	if err != nil {
		s.logger.Error("ReconcileCounter: counter repository error for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: ReconcileCounter - repository error: %v", ErrInternal, err)
	}

	count, err := s.bookings.CountConfirmedTreatmentsAfter(ctx, customerID, counter.LastRedemption)
	if err != nil {
		s.logger.Error("ReconcileCounter: failed to count confirmed treatments for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: ReconcileCounter - count treatments: %v", ErrInternal, err)
	}

	if count == counter.TreatmentCount {
		return nil
	}

	if err := s.counters.SetCount(ctx, customerID, count); err != nil {
		s.logger.Error("ReconcileCounter: failed to set counter for customer=%d: %v", customerID, err)
		return fmt.Errorf("%w: ReconcileCounter - set counter: %v", ErrInternal, err)
	}

	s.logger.Info("ReconcileCounter: customer=%d counter corrected %d -> %d",
		customerID, counter.TreatmentCount, count)
	return nil
}

// GetCounter возвращает текущее состояние счётчика клиента
func (s *Service) GetCounter(ctx context.Context, customerID int64) (*domain.DiscountCounter, error) {
	counter, err := s.counters.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, counterRepo.ErrCounterNotFound) {
			return &domain.DiscountCounter{CustomerID: customerID}, nil
		}
		s.logger.Error("GetCounter: counter repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCounter - repository error: %v", ErrInternal, err)
	}
	return counter, nil
}

// Вспомогательные методы

func (s *Service) progress(current int) domain.DiscountProgress {
	remaining := s.cfg.LoyaltyThreshold - current
	if remaining < 0 {
		remaining = 0
	}
	return domain.DiscountProgress{
		Current:   current,
		Required:  s.cfg.LoyaltyThreshold,
		Remaining: remaining,
	}
}

// inBirthdayWindow проверяет попадание даты в окно +/- window дней вокруг
// ближайшего дня рождения. Сравниваются даты без времени, поэтому окно
// считается перебором кандидатов в соседних годах - это корректно
// обрабатывает переход через Новый год и 29 февраля.
func inBirthdayWindow(today, birthdate types.DateOnly, window int) bool {
	for year := today.Year - 1; year <= today.Year+1; year++ {
		candidate := birthdayInYear(birthdate, year)
		lo := candidate.AddDays(-window)
		hi := candidate.AddDays(window)
		if !today.Before(lo) && !today.After(hi) {
			return true
		}
	}
	return false
}

// birthdayInYear возвращает день рождения в указанном году;
// 29 февраля в невисокосном году нормализуется в 1 марта.
func birthdayInYear(birthdate types.DateOnly, year int) types.DateOnly {
	return types.NewDateOnly(year, birthdate.Month, birthdate.Day).AddDays(0)
}
