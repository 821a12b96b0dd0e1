package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	treatmentRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/treatment"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	copied := *booking
	f.created = append(f.created, &copied)
	return booking, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	// Видны и ранее существовавшие, и созданные в этой же транзакции строки
	return append(append([]*domain.Booking{}, f.existing...), f.created...), nil
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedTime
}

func (f *fakeBlockedRepo) ListWithFilter(_ context.Context, _ domain.BlockedTimesFilter) ([]*domain.BlockedTime, error) {
	return f.blocks, nil
}

type fakeTreatmentRepo struct {
	treatments map[int64]*domain.Treatment
}

func (f *fakeTreatmentRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Treatment, error) {
	result := make([]*domain.Treatment, 0, len(ids))
	for _, id := range ids {
		t, ok := f.treatments[id]
		if !ok {
			return nil, treatmentRepo.ErrTreatmentNotFound
		}
		result = append(result, t)
	}
	return result, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-10-15 - среда, рабочие часы 09:00-18:00
var (
	wednesday = types.NewDateOnly(2025, time.October, 15)
	testNow   = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
)

func testSchedule() domain.WeekSchedule {
	weekday := domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
	return domain.WeekSchedule{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  domain.DaySchedule{IsOpen: true, OpenTime: "10:00", CloseTime: "15:00"},
		Sunday:    domain.DaySchedule{IsOpen: false},
	}
}

func testTreatments() *fakeTreatmentRepo {
	return &fakeTreatmentRepo{treatments: map[int64]*domain.Treatment{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 60, Price: 1500, IsActive: true},
		2: {ID: 2, Name: "Педикюр", DurationMinutes: 90, Price: 2000, IsActive: true},
		3: {ID: 3, Name: "Стрижка", DurationMinutes: 45, Price: 1200, IsActive: false},
	}}
}

func newTestUseCase(bookings *fakeBookingRepo, blocks *fakeBlockedRepo) (*UseCase, *fakeTxManager) {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if blocks == nil {
		blocks = &fakeBlockedRepo{}
	}
	tx := &fakeTxManager{}
	cfg := Config{Schedule: testSchedule(), BufferMinutes: 30}
	uc := NewUseCase(bookings, blocks, testTreatments(), tx, cfg, nopLogger{}).
		WithTimeProvider(fixedTime{testNow})
	return uc, tx
}

func validRequest() *Request {
	return &Request{
		CustomerID:   ptr.Ptr(int64(1)),
		Email:        "anna@example.com",
		Date:         wednesday,
		StartTime:    "10:00",
		TreatmentIDs: []int64{1, 2},
	}
}

func TestExecute_ChainsBackToBack(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc, tx := newTestUseCase(bookings, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls, "the whole chain goes through one transaction")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 3500.0, resp.TotalPrice)
	require.Len(t, resp.Bookings, 2)

	// Процедуры встык: маникюр 10:00-11:00, педикюр 11:00-12:30
	assert.Equal(t, "10:00", resp.Bookings[0].StartTime.String())
	assert.Equal(t, 60, resp.Bookings[0].DurationMinutes)
	assert.Equal(t, "11:00", resp.Bookings[1].StartTime.String())
	assert.Equal(t, 90, resp.Bookings[1].DurationMinutes)

	// Общий GroupID и сквозная нумерация
	require.Len(t, bookings.created, 2)
	assert.Equal(t, bookings.created[0].GroupID, bookings.created[1].GroupID)
	assert.Equal(t, 1, bookings.created[0].GroupIndex)
	assert.Equal(t, 2, bookings.created[1].GroupIndex)
	assert.Equal(t, 2, bookings.created[0].GroupTotal)
}

func TestExecute_ConflictRejectsWholeChain(t *testing.T) {
	// Занято 11:30-12:00: первая процедура (10:00-11:00) прошла бы,
	// но вторая (11:00-12:30) конфликтует - не создается ничего.
	bookings := &fakeBookingRepo{existing: []*domain.Booking{{
		Date:            wednesday,
		StartTime:       "11:30",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}}
	uc, _ := newTestUseCase(bookings, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, bookings.created, "no partial chains")
}

func TestExecute_TouchingBookingIsAllowed(t *testing.T) {
	// Занято 08:00-10:00 - запись с 10:00 впритык допустима
	bookings := &fakeBookingRepo{existing: []*domain.Booking{{
		Date:            wednesday,
		StartTime:       "08:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}}}
	uc, _ := newTestUseCase(bookings, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_ChainMustFitBeforeClosing(t *testing.T) {
	// Маникюр + педикюр = 150 минут; старт 16:00 заканчивается в 18:30
	req := validRequest()
	req.StartTime = "16:00"
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_ClosedDay(t *testing.T) {
	req := validRequest()
	req.Date = types.NewDateOnly(2025, time.October, 19) // воскресенье
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_FullDayBlock(t *testing.T) {
	blocks := &fakeBlockedRepo{blocks: []*domain.BlockedTime{
		{Date: wednesday, IsFullDay: true},
	}}
	uc, _ := newTestUseCase(nil, blocks)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PartialBlockConflict(t *testing.T) {
	blocks := &fakeBlockedRepo{blocks: []*domain.BlockedTime{
		{Date: wednesday, StartTime: "11:00", EndTime: "12:00"},
	}}
	uc, _ := newTestUseCase(nil, blocks)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TodayBuffer(t *testing.T) {
	// Сейчас 09:45 среды: старт 10:00 ближе 30-минутного буфера
	uc, _ := newTestUseCase(nil, nil)
	uc.WithTimeProvider(fixedTime{time.Date(2025, time.October, 15, 9, 45, 0, 0, time.UTC)})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_PastDate(t *testing.T) {
	req := validRequest()
	req.Date = types.NewDateOnly(2025, time.September, 30)
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_UnknownTreatment(t *testing.T) {
	req := validRequest()
	req.TreatmentIDs = []int64{1, 99}
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecute_InactiveTreatment(t *testing.T) {
	req := validRequest()
	req.TreatmentIDs = []int64{3}
	uc, _ := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTreatmentUnavailable)
}

func TestExecute_GuestBooking(t *testing.T) {
	req := validRequest()
	req.CustomerID = nil
	bookings := &fakeBookingRepo{}
	uc, _ := newTestUseCase(bookings, nil)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, bookings.created, 2)
	assert.Nil(t, bookings.created[0].CustomerID)
	assert.Equal(t, "anna@example.com", bookings.created[0].Email)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing email", func(r *Request) { r.Email = "" }},
		{"invalid email", func(r *Request) { r.Email = "anna.example.com" }},
		{"missing date", func(r *Request) { r.Date = types.DateOnly{} }},
		{"missing start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"no treatments", func(r *Request) { r.TreatmentIDs = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(ctx, req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
