package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SalonBookingService/internal/integrations/mailer"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: просмотр, подтверждение
// и отмена. Создание групповой записи выполняется отдельным usecase'ом
// внутри сериализуемой транзакции.
type Service struct {
	bookingRepo  BookingRepository
	discounts    DiscountService
	mailerClient MailerClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	discounts DiscountService,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		discounts:    discounts,
		mailerClient: mailerClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента.
// Клиент идентифицируется по ID или по email; опционально фильтрует
// по статусу и включает отменённые записи.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	if req.CustomerID == nil && req.Email == nil {
		return nil, fmt.Errorf("%w: customer id or email is required", ErrInvalidInput)
	}

	s.logger.Info("GetCustomerBookings: fetching bookings customerID=%v email=%v status=%v",
		req.CustomerID, req.Email, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCustomerBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает запись целиком: все строки группы переходят
// pending -> confirmed одной транзакцией. После подтверждения процедуры
// зачисляются в счётчик лояльности; если на момент подтверждения была
// накоплена скидка лояльности, она погашается. Уведомление отправляется
// после фиксации - его сбой не откатывает подтверждение.
func (s *Service) Confirm(ctx context.Context, bookingID int64) (*models.ConfirmBookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	group, err := s.bookingRepo.GetByGroupID(ctx, booking.GroupID)
	if err != nil {
		s.logger.Error("Confirm: failed to fetch group %s: %v", booking.GroupID, err)
		return nil, fmt.Errorf("%w: Confirm - fetch group: %v", ErrInternal, err)
	}

	for _, b := range group {
		if !b.CanBeConfirmed() {
			s.logger.Warn("Confirm: booking id=%d in group %s has status=%s, cannot confirm",
				b.ID, booking.GroupID, b.Status)
			return nil, ErrCannotConfirm
		}
	}

	totalPrice := groupTotalPrice(group)

	// Скидка котируется до зачисления процедур: только что подтверждённые
	// строки не должны сами создавать право на скидку.
	var discountInfo *domain.DiscountInfo
	if booking.CustomerID != nil {
		discountInfo, err = s.discounts.CalculateDiscount(ctx, *booking.CustomerID, totalPrice)
		if err != nil {
			s.logger.Warn("Confirm: discount calculation failed for customer=%d: %v", *booking.CustomerID, err)
			discountInfo = nil
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.bookingRepo.UpdateGroupStatus(ctx, booking.GroupID, domain.StatusConfirmed)
	})
	if err != nil {
		s.logger.Error("Confirm: failed to confirm group %s: %v", booking.GroupID, err)
		return nil, fmt.Errorf("%w: Confirm - update group status: %v", ErrInternal, err)
	}

	if booking.CustomerID != nil {
		customerID := *booking.CustomerID

		if err := s.discounts.RecordCompletedTreatments(ctx, customerID, len(group)); err != nil {
			// Счётчик выправит сверка; подтверждение уже зафиксировано
			s.logger.Error("Confirm: failed to record treatments for customer=%d: %v", customerID, err)
		}

		if discountInfo != nil && discountInfo.Type == domain.DiscountLoyalty {
			if err := s.discounts.RedeemLoyaltyDiscount(ctx, customerID); err != nil {
				s.logger.Error("Confirm: failed to redeem loyalty discount for customer=%d: %v", customerID, err)
			}
		}
	}

	s.notifyConfirmed(ctx, group, totalPrice, discountInfo)

	for _, b := range group {
		b.Status = domain.StatusConfirmed
	}

	response := &models.ConfirmBookingResponse{
		Bookings:   models.FromDomainBookingList(group).Bookings,
		TotalPrice: totalPrice,
		Discount:   models.FromDomainDiscount(discountInfo),
		FinalPrice: totalPrice,
	}
	if response.Discount != nil {
		response.FinalPrice = totalPrice - response.Discount.Amount
	}

	s.logger.Info("Confirm: group %s confirmed, %d bookings, final price=%.2f",
		booking.GroupID, len(group), response.FinalPrice)
	return response, nil
}

// Cancel отменяет бронирование с указанием причины.
// Для подтверждённых записей процедура списывается из счётчика лояльности,
// затем счётчик сверяется с фактом. Сбой корректировки счётчика логируется,
// но не откатывает отмену.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	wasConfirmed := booking.Status == domain.StatusConfirmed

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != nil {
		customerID := *booking.CustomerID

		if wasConfirmed {
			if err := s.discounts.ReverseCompletedTreatments(ctx, customerID, 1); err != nil {
				s.logger.Error("Cancel: failed to reverse treatment for customer=%d: %v", customerID, err)
			}
		}

		if err := s.discounts.ReconcileCounter(ctx, customerID); err != nil {
			s.logger.Error("Cancel: counter reconciliation failed for customer=%d: %v", customerID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) notifyConfirmed(ctx context.Context, group []*domain.Booking, totalPrice float64, discountInfo *domain.DiscountInfo) {
	if s.mailerClient == nil || len(group) == 0 {
		return
	}

	confirmation := &mailer.BookingConfirmation{
		Email:       group[0].Email,
		BookingDate: group[0].Date.String(),
		TotalPrice:  totalPrice,
		FinalPrice:  totalPrice,
	}
	for _, b := range group {
		confirmation.Treatments = append(confirmation.Treatments, mailer.TreatmentLine{
			Name:      b.TreatmentName,
			StartTime: b.StartTime.String(),
			Price:     b.TreatmentPrice,
		})
	}
	if discountInfo != nil && discountInfo.Type != domain.DiscountNone {
		confirmation.DiscountType = string(discountInfo.Type)
		confirmation.DiscountAmount = discountInfo.Amount
		confirmation.FinalPrice = totalPrice - discountInfo.Amount
	}

	if err := s.mailerClient.SendBookingConfirmationWithGracefulDegradation(ctx, confirmation); err != nil {
		if errors.Is(err, mailer.ErrServiceDegraded) {
			// Уже залогировано клиентом; запись остаётся подтверждённой
			return
		}
		s.logger.Error("notifyConfirmed: unexpected mailer error: %v", err)
	}
}

func groupTotalPrice(group []*domain.Booking) float64 {
	var total float64
	for _, b := range group {
		total += b.TreatmentPrice
	}
	return total
}
