package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateGroupStatus(ctx context.Context, groupID uuid.UUID, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// DiscountService интерфейс сервиса скидочной программы
type DiscountService interface {
	CalculateDiscount(ctx context.Context, customerID int64, originalPrice float64) (*domain.DiscountInfo, error)
	RedeemLoyaltyDiscount(ctx context.Context, customerID int64) error
	RecordCompletedTreatments(ctx context.Context, customerID int64, n int) error
	ReverseCompletedTreatments(ctx context.Context, customerID int64, n int) error
	ReconcileCounter(ctx context.Context, customerID int64) error
}

// MailerClient интерфейс клиента сервиса почтовых уведомлений
type MailerClient interface {
	SendBookingConfirmationWithGracefulDegradation(ctx context.Context, confirmation *mailer.BookingConfirmation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
