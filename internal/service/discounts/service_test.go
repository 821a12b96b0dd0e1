package discounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	counterRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/discount"
	customerRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/customer"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Фейки репозиториев

type fakeCounterRepo struct {
	counters map[int64]*domain.DiscountCounter
	failWith error
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: make(map[int64]*domain.DiscountCounter)}
}

func (f *fakeCounterRepo) Get(_ context.Context, customerID int64) (*domain.DiscountCounter, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	c, ok := f.counters[customerID]
	if !ok {
		return nil, counterRepo.ErrCounterNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCounterRepo) GetOrCreate(ctx context.Context, customerID int64) (*domain.DiscountCounter, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, ok := f.counters[customerID]; !ok {
		f.counters[customerID] = &domain.DiscountCounter{CustomerID: customerID}
	}
	return f.Get(ctx, customerID)
}

func (f *fakeCounterRepo) Increment(_ context.Context, customerID int64, n int) error {
	if f.failWith != nil {
		return f.failWith
	}
	c, ok := f.counters[customerID]
	if !ok {
		c = &domain.DiscountCounter{CustomerID: customerID}
		f.counters[customerID] = c
	}
	c.TreatmentCount += n
	return nil
}

func (f *fakeCounterRepo) Decrement(_ context.Context, customerID int64, n int) error {
	if f.failWith != nil {
		return f.failWith
	}
	if c, ok := f.counters[customerID]; ok {
		c.TreatmentCount -= n
		if c.TreatmentCount < 0 {
			c.TreatmentCount = 0
		}
	}
	return nil
}

func (f *fakeCounterRepo) Reset(_ context.Context, customerID int64, redeemedAt time.Time) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.counters[customerID] = &domain.DiscountCounter{
		CustomerID:     customerID,
		LastRedemption: &redeemedAt,
	}
	return nil
}

func (f *fakeCounterRepo) SetCount(_ context.Context, customerID int64, count int) error {
	if f.failWith != nil {
		return f.failWith
	}
	c, ok := f.counters[customerID]
	if !ok {
		c = &domain.DiscountCounter{CustomerID: customerID}
		f.counters[customerID] = c
	}
	c.TreatmentCount = count
	return nil
}

type fakeBookingRepo struct {
	confirmed int
	gotSince  *time.Time
	failWith  error
}

func (f *fakeBookingRepo) CountConfirmedTreatmentsAfter(_ context.Context, _ int64, since *time.Time) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.gotSince = since
	return f.confirmed, nil
}

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultTestConfig() Config {
	return Config{
		LoyaltyThreshold:   5,
		LoyaltyPercentage:  20,
		BirthdayPercentage: 10,
		BirthdayWindowDays: 3,
	}
}

func newTestService(counters *fakeCounterRepo, bookings *fakeBookingRepo, customers *fakeCustomerRepo, now time.Time) *Service {
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	if customers == nil {
		customers = &fakeCustomerRepo{customers: map[int64]*domain.Customer{}}
	}
	return NewService(counters, bookings, customers, fixedTime{now}, defaultTestConfig(), nopLogger{})
}

func birthdate(month time.Month, day int) *types.DateOnly {
	d := types.NewDateOnly(1990, month, day)
	return &d
}

func TestCheckLoyaltyEligibility(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		wantEligible  bool
		wantRemaining int
	}{
		{"empty counter", 0, false, 5},
		{"one below threshold", 4, false, 1},
		{"at threshold", 5, true, 0},
		{"above threshold", 7, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counters := newFakeCounterRepo()
			counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: tt.count}
			svc := newTestService(counters, nil, nil, time.Now())

			eligible, progress, err := svc.CheckLoyaltyEligibility(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEligible, eligible)
			assert.Equal(t, tt.count, progress.Current)
			assert.Equal(t, 5, progress.Required)
			assert.Equal(t, tt.wantRemaining, progress.Remaining)
		})
	}
}

func TestCheckLoyaltyEligibility_CreatesZeroCounter(t *testing.T) {
	counters := newFakeCounterRepo()
	svc := newTestService(counters, nil, nil, time.Now())

	eligible, progress, err := svc.CheckLoyaltyEligibility(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Equal(t, 0, progress.Current)
	require.Contains(t, counters.counters, int64(42))
}

func TestCheckBirthdayEligibility(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		birthdate *types.DateOnly
		want      bool
		wantErr   error
	}{
		{
			name:      "exact birthday",
			today:     time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.June, 15),
			want:      true,
		},
		{
			name:      "three days before",
			today:     time.Date(2025, time.June, 12, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.June, 15),
			want:      true,
		},
		{
			name:      "three days after",
			today:     time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.June, 15),
			want:      true,
		},
		{
			name:      "four days before",
			today:     time.Date(2025, time.June, 11, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.June, 15),
			want:      false,
		},
		{
			name:      "window spans new year, late december",
			today:     time.Date(2025, time.December, 30, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.January, 1),
			want:      true,
		},
		{
			name:      "window spans new year, early january",
			today:     time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC),
			birthdate: birthdate(time.December, 30),
			want:      true,
		},
		{
			name:      "no birthdate on record",
			today:     time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			birthdate: nil,
			wantErr:   ErrNoBirthdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
				1: {ID: 1, Email: "anna@example.com", Birthdate: tt.birthdate},
			}}
			svc := newTestService(newFakeCounterRepo(), nil, customers, tt.today)

			got, err := svc.CheckBirthdayEligibility(context.Background(), 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckBirthdayEligibility_CustomerNotFound(t *testing.T) {
	svc := newTestService(newFakeCounterRepo(), nil, nil, time.Now())

	_, err := svc.CheckBirthdayEligibility(context.Background(), 99)
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCalculateDiscount_LoyaltyBeatsBirthday(t *testing.T) {
	// Клиент одновременно накопил порог и попадает в окно дня рождения:
	// применяется только скидка лояльности.
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 5}
	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		1: {ID: 1, Birthdate: birthdate(time.June, 15)},
	}}
	svc := newTestService(counters, nil, customers, now)

	info, err := svc.CalculateDiscount(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountLoyalty, info.Type)
	assert.Equal(t, 20.0, info.Percentage)
	assert.Equal(t, 200.0, info.Amount)
	assert.True(t, info.Eligible)
}

func TestCalculateDiscount_BirthdayOnly(t *testing.T) {
	now := time.Date(2025, time.June, 14, 12, 0, 0, 0, time.UTC)
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 2}
	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		1: {ID: 1, Birthdate: birthdate(time.June, 15)},
	}}
	svc := newTestService(counters, nil, customers, now)

	info, err := svc.CalculateDiscount(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountBirthday, info.Type)
	assert.Equal(t, 10.0, info.Percentage)
	assert.Equal(t, 50.0, info.Amount)
	assert.Equal(t, 2, info.Progress.Current)
	assert.Equal(t, 3, info.Progress.Remaining)
}

func TestCalculateDiscount_None(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 3}
	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		1: {ID: 1, Birthdate: birthdate(time.June, 15)},
	}}
	svc := newTestService(counters, nil, customers, now)

	info, err := svc.CalculateDiscount(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountNone, info.Type)
	assert.False(t, info.Eligible)
	assert.Equal(t, 0.0, info.Amount)
}

func TestCalculateDiscount_StoreFailureQuotesNone(t *testing.T) {
	// Ошибка хранилища не должна обещать клиенту скидку.
	counters := newFakeCounterRepo()
	counters.failWith = errors.New("connection refused")
	svc := newTestService(counters, nil, nil, time.Now())

	info, err := svc.CalculateDiscount(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountNone, info.Type)
	assert.False(t, info.Eligible)
}

func TestCalculateDiscount_NegativePrice(t *testing.T) {
	svc := newTestService(newFakeCounterRepo(), nil, nil, time.Now())

	_, err := svc.CalculateDiscount(context.Background(), 1, -10)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRedeemLoyaltyDiscount(t *testing.T) {
	now := time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 6}
	svc := newTestService(counters, nil, nil, now)

	err := svc.RedeemLoyaltyDiscount(context.Background(), 1)
	require.NoError(t, err)

	c := counters.counters[1]
	assert.Equal(t, 0, c.TreatmentCount)
	require.NotNil(t, c.LastRedemption)
	assert.Equal(t, now, *c.LastRedemption)
}

func TestRedeemLoyaltyDiscount_BelowThreshold(t *testing.T) {
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 4}
	svc := newTestService(counters, nil, nil, time.Now())

	err := svc.RedeemLoyaltyDiscount(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, 4, counters.counters[1].TreatmentCount)
}

func TestRecordAndReverseCompletedTreatments(t *testing.T) {
	counters := newFakeCounterRepo()
	svc := newTestService(counters, nil, nil, time.Now())
	ctx := context.Background()

	require.NoError(t, svc.RecordCompletedTreatments(ctx, 1, 3))
	assert.Equal(t, 3, counters.counters[1].TreatmentCount)

	require.NoError(t, svc.ReverseCompletedTreatments(ctx, 1, 2))
	assert.Equal(t, 1, counters.counters[1].TreatmentCount)

	// Декремент ограничен нулём
	require.NoError(t, svc.ReverseCompletedTreatments(ctx, 1, 10))
	assert.Equal(t, 0, counters.counters[1].TreatmentCount)
}

func TestRecordCompletedTreatments_InvalidCount(t *testing.T) {
	svc := newTestService(newFakeCounterRepo(), nil, nil, time.Now())

	require.ErrorIs(t, svc.RecordCompletedTreatments(context.Background(), 1, 0), ErrInvalidInput)
	require.ErrorIs(t, svc.ReverseCompletedTreatments(context.Background(), 1, -1), ErrInvalidInput)
}

func TestReconcileCounter_CorrectsDrift(t *testing.T) {
	redeemed := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{
		CustomerID:     1,
		TreatmentCount: 7,
		LastRedemption: &redeemed,
	}
	bookings := &fakeBookingRepo{confirmed: 4}
	svc := newTestService(counters, bookings, nil, time.Now())

	err := svc.ReconcileCounter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, counters.counters[1].TreatmentCount)

	// Считаются только процедуры после последнего погашения
	require.NotNil(t, bookings.gotSince)
	assert.Equal(t, redeemed, *bookings.gotSince)
}

func TestReconcileCounter_NoDriftNoWrite(t *testing.T) {
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 4}
	bookings := &fakeBookingRepo{confirmed: 4}
	svc := newTestService(counters, bookings, nil, time.Now())

	err := svc.ReconcileCounter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, counters.counters[1].TreatmentCount)
	assert.Nil(t, bookings.gotSince, "never redeemed - full history is counted")
}

func TestReconcileCounter_CountFailure(t *testing.T) {
	counters := newFakeCounterRepo()
	counters.counters[1] = &domain.DiscountCounter{CustomerID: 1, TreatmentCount: 4}
	bookings := &fakeBookingRepo{failWith: errors.New("timeout")}
	svc := newTestService(counters, bookings, nil, time.Now())

	err := svc.ReconcileCounter(context.Background(), 1)
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 4, counters.counters[1].TreatmentCount, "counter untouched on failure")
}

func TestGetCounter_MissingIsZero(t *testing.T) {
	svc := newTestService(newFakeCounterRepo(), nil, nil, time.Now())

	c, err := svc.GetCounter(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.CustomerID)
	assert.Equal(t, 0, c.TreatmentCount)
	assert.Nil(t, c.LastRedemption)
}
