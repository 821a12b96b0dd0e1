package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	treatmentRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/treatment"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	failWith error
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.bookings, nil
}

type fakeBlockedRepo struct {
	blocks   []*domain.BlockedTime
	failWith error
}

func (f *fakeBlockedRepo) ListWithFilter(_ context.Context, _ domain.BlockedTimesFilter) ([]*domain.BlockedTime, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
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

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Рабочая неделя: будни 09:00-18:00, суббота 10:00-15:00, воскресенье выходной
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

// 2025-10-15 - среда, 2025-10-18 - суббота, 2025-10-19 - воскресенье
var (
	wednesday = types.NewDateOnly(2025, time.October, 15)
	saturday  = types.NewDateOnly(2025, time.October, 18)
	sunday    = types.NewDateOnly(2025, time.October, 19)

	// Запросы делаются задолго до даты - буфер не влияет
	testNow = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
)

func booking(start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		Date:            wednesday,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, blocks *fakeBlockedRepo, allowDegraded bool) *UseCase {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if blocks == nil {
		blocks = &fakeBlockedRepo{}
	}
	cfg := Config{
		Schedule:      testSchedule(),
		GridMinutes:   30,
		BufferMinutes: 30,
		AllowDegraded: allowDegraded,
	}
	treatments := &fakeTreatmentRepo{treatments: map[int64]*domain.Treatment{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 60, Price: 1500, IsActive: true},
		2: {ID: 2, Name: "Педикюр", DurationMinutes: 90, Price: 2000, IsActive: true},
	}}
	return NewUseCase(bookings, blocks, treatments, cfg, nopLogger{}).WithTimeProvider(fixedTime{testNow})
}

func slotStrings(slots []types.TimeString) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.String())
	}
	return result
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	// 09:00-18:00, шаг 30, последний старт часовой процедуры - 17:00
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:00", slots[len(slots)-1])
	assert.Len(t, slots, 17)
	assert.False(t, resp.Degraded)
}

func TestExecute_BookingCarvesOutSlots(t *testing.T) {
	// Занято 11:00-12:00. Часовая процедура не может начаться
	// в 10:30 (заехала бы на бронь) и в 11:00/11:30; старт в 12:00 -
	// впритык к концу брони - допустим.
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{booking("11:00", 60)}}
	uc := newTestUseCase(bookings, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.NotContains(t, slots, "10:30")
	assert.NotContains(t, slots, "11:00")
	assert.NotContains(t, slots, "11:30")
	assert.Contains(t, slots, "10:00")
	assert.Contains(t, slots, "12:00")
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	cancelled := booking("11:00", 60)
	cancelled.Status = domain.StatusCancelled
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{cancelled}}
	uc := newTestUseCase(bookings, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Contains(t, slotStrings(resp.Slots), "11:00")
}

func TestExecute_ClosingTimeCutsLongTreatments(t *testing.T) {
	// Двухчасовая процедура в среду: последний допустимый старт 16:00
	uc := newTestUseCase(nil, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 120})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.Equal(t, "16:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "16:30")
}

func TestExecute_SaturdayShortHours(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: saturday, DurationMinutes: 60})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "14:00", slots[len(slots)-1])
}

func TestExecute_SundayClosed(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDayBlock(t *testing.T) {
	blocks := &fakeBlockedRepo{blocks: []*domain.BlockedTime{
		{Date: wednesday, IsFullDay: true, Reason: "санитарный день"},
	}}
	uc := newTestUseCase(nil, blocks, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PartialBlock(t *testing.T) {
	blocks := &fakeBlockedRepo{blocks: []*domain.BlockedTime{
		{Date: wednesday, StartTime: "13:00", EndTime: "15:00", Reason: "обучение"},
	}}
	uc := newTestUseCase(nil, blocks, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.NotContains(t, slots, "12:30")
	assert.NotContains(t, slots, "13:00")
	assert.NotContains(t, slots, "14:30")
	assert.Contains(t, slots, "12:00")
	assert.Contains(t, slots, "15:00")
}

func TestExecute_TodayBuffer(t *testing.T) {
	// Сейчас 11:47 среды, буфер 30 минут: первый доступный слот 12:30
	now := time.Date(2025, time.October, 15, 11, 47, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, false).WithTimeProvider(fixedTime{now})

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)

	slots := slotStrings(resp.Slots)
	assert.Equal(t, "12:30", slots[0])
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)

	_, err := uc.Execute(context.Background(), &Request{
		Date:            types.NewDateOnly(2025, time.September, 30),
		DurationMinutes: 60,
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DurationFromTreatmentChain(t *testing.T) {
	// Маникюр (60) + педикюр (90) = 150 минут; последний старт в среду 15:30
	uc := newTestUseCase(nil, nil, false)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, TreatmentIDs: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 150, resp.DurationMinutes)
	slots := slotStrings(resp.Slots)
	assert.Equal(t, "15:30", slots[len(slots)-1])
}

func TestExecute_UnknownTreatment(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)

	_, err := uc.Execute(context.Background(), &Request{Date: wednesday, TreatmentIDs: []int64{99}})
	require.ErrorIs(t, err, ErrTreatmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(nil, nil, false)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{DurationMinutes: 60})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: wednesday})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Date: wednesday, DurationMinutes: 600})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageFailureFailsClosed(t *testing.T) {
	bookings := &fakeBookingRepo{failWith: errors.New("connection refused")}
	uc := newTestUseCase(bookings, nil, false)

	_, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DegradedModeFlagsResponse(t *testing.T) {
	bookings := &fakeBookingRepo{failWith: errors.New("connection refused")}
	uc := newTestUseCase(bookings, nil, true)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, DurationMinutes: 60})
	require.NoError(t, err)
	assert.True(t, resp.Degraded, "degraded day must never look like a normal one")
	assert.NotEmpty(t, resp.Slots)
}
