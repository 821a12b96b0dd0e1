package blockedtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	blockedRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blockedtime"
	"github.com/m04kA/SalonBookingService/internal/service/blockedtime/models"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Фейки зависимостей

type fakeBlockedRepo struct {
	blocks map[int64]*domain.BlockedTime
	nextID int64
}

func newFakeBlockedRepo(blocks ...*domain.BlockedTime) *fakeBlockedRepo {
	f := &fakeBlockedRepo{blocks: make(map[int64]*domain.BlockedTime), nextID: 1}
	for _, b := range blocks {
		f.blocks[b.ID] = b
		if b.ID >= f.nextID {
			f.nextID = b.ID + 1
		}
	}
	return f
}

func (f *fakeBlockedRepo) Create(_ context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error) {
	block.ID = f.nextID
	f.nextID++
	copied := *block
	f.blocks[block.ID] = &copied
	return block, nil
}

func (f *fakeBlockedRepo) GetByID(_ context.Context, id int64) (*domain.BlockedTime, error) {
	b, ok := f.blocks[id]
	if !ok {
		return nil, blockedRepo.ErrBlockedTimeNotFound
	}
	return b, nil
}

func (f *fakeBlockedRepo) ListWithFilter(_ context.Context, filter domain.BlockedTimesFilter) ([]*domain.BlockedTime, error) {
	var result []*domain.BlockedTime
	for _, b := range f.blocks {
		if filter.Date != nil && !b.Date.Equal(*filter.Date) {
			continue
		}
		if filter.DateFrom != nil && b.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && b.Date.After(*filter.DateTo) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.blocks[id]; !ok {
		return blockedRepo.ErrBlockedTimeNotFound
	}
	delete(f.blocks, id)
	return nil
}

func (f *fakeBlockedRepo) DeleteByDate(_ context.Context, date types.DateOnly, onlyPartial bool) (int64, error) {
	var deleted int64
	for id, b := range f.blocks {
		if !b.Date.Equal(date) {
			continue
		}
		if onlyPartial && b.IsFullDay {
			continue
		}
		delete(f.blocks, id)
		deleted++
	}
	return deleted, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
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

var testNow = time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeBlockedRepo) *Service {
	return NewService(repo, fakeTxManager{}, fixedTime{testNow}, nopLogger{})
}

func partialBlock(id int64, date types.DateOnly, start, end types.TimeString) *domain.BlockedTime {
	return &domain.BlockedTime{
		ID:        id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    "обучение",
		CreatedBy: 1,
	}
}

func TestBlock_FullDayEvictsPartials(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	repo := newFakeBlockedRepo(
		partialBlock(1, date, "10:00", "12:00"),
		partialBlock(2, date, "14:00", "15:00"),
	)
	svc := newTestService(repo)

	resp, err := svc.Block(context.Background(), &models.BlockRequest{
		DateFrom:  "2025-10-15",
		Reason:    "санитарный день",
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.True(t, resp.BlockedTimes[0].IsFullDay)

	// Частичные блоки вытеснены, остался только блок на весь день
	require.Len(t, repo.blocks, 1)
	for _, b := range repo.blocks {
		assert.True(t, b.IsFullDay)
	}
}

func TestBlock_PartialOverlapRejected(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	repo := newFakeBlockedRepo(partialBlock(1, date, "10:00", "12:00"))
	svc := newTestService(repo)

	_, err := svc.Block(context.Background(), &models.BlockRequest{
		DateFrom:  "2025-10-15",
		StartTime: ptr.Ptr("11:00"),
		EndTime:   ptr.Ptr("13:00"),
		Reason:    "перерыв",
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, ErrBlockOverlap)
	assert.Len(t, repo.blocks, 1, "nothing created on overlap")
}

func TestBlock_PartialTouchingIsAllowed(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	repo := newFakeBlockedRepo(partialBlock(1, date, "10:00", "12:00"))
	svc := newTestService(repo)

	resp, err := svc.Block(context.Background(), &models.BlockRequest{
		DateFrom:  "2025-10-15",
		StartTime: ptr.Ptr("12:00"),
		EndTime:   ptr.Ptr("13:00"),
		Reason:    "перерыв",
		CreatedBy: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, repo.blocks, 2)
}

func TestBlock_PartialOnFullyBlockedDay(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	fullDay := &domain.BlockedTime{ID: 1, Date: date, IsFullDay: true, Reason: "ремонт", CreatedBy: 1}
	repo := newFakeBlockedRepo(fullDay)
	svc := newTestService(repo)

	_, err := svc.Block(context.Background(), &models.BlockRequest{
		DateFrom:  "2025-10-15",
		StartTime: ptr.Ptr("10:00"),
		EndTime:   ptr.Ptr("11:00"),
		Reason:    "перерыв",
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, ErrDayFullyBlocked)
}

func TestBlock_RangeExpandsPerDay(t *testing.T) {
	repo := newFakeBlockedRepo()
	svc := newTestService(repo)

	resp, err := svc.Block(context.Background(), &models.BlockRequest{
		DateFrom:  "2025-10-15",
		DateTo:    ptr.Ptr("2025-10-17"),
		Reason:    "отпуск",
		CreatedBy: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "2025-10-15", resp.BlockedTimes[0].Date)
	assert.Equal(t, "2025-10-16", resp.BlockedTimes[1].Date)
	assert.Equal(t, "2025-10-17", resp.BlockedTimes[2].Date)
}

func TestBlock_Validation(t *testing.T) {
	svc := newTestService(newFakeBlockedRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.BlockRequest
	}{
		{"invalid date", &models.BlockRequest{DateFrom: "15.10.2025"}},
		{"range reversed", &models.BlockRequest{DateFrom: "2025-10-17", DateTo: ptr.Ptr("2025-10-15")}},
		{"past date", &models.BlockRequest{DateFrom: "2025-09-30"}},
		{"start without end", &models.BlockRequest{DateFrom: "2025-10-15", StartTime: ptr.Ptr("10:00")}},
		{"end before start", &models.BlockRequest{
			DateFrom:  "2025-10-15",
			StartTime: ptr.Ptr("12:00"),
			EndTime:   ptr.Ptr("10:00"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Block(ctx, tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUnblock(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	repo := newFakeBlockedRepo(partialBlock(1, date, "10:00", "12:00"))
	svc := newTestService(repo)

	require.NoError(t, svc.Unblock(context.Background(), 1))
	assert.Empty(t, repo.blocks)

	require.ErrorIs(t, svc.Unblock(context.Background(), 1), ErrBlockedTimeNotFound)
}

func TestUnblockDate(t *testing.T) {
	date := types.NewDateOnly(2025, time.October, 15)
	other := types.NewDateOnly(2025, time.October, 16)
	repo := newFakeBlockedRepo(
		partialBlock(1, date, "10:00", "12:00"),
		partialBlock(2, date, "14:00", "15:00"),
		partialBlock(3, other, "10:00", "11:00"),
	)
	svc := newTestService(repo)

	resp, err := svc.UnblockDate(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Len(t, repo.blocks, 1, "other dates untouched")
}

func TestListByRange(t *testing.T) {
	repo := newFakeBlockedRepo(
		partialBlock(1, types.NewDateOnly(2025, time.October, 14), "10:00", "12:00"),
		partialBlock(2, types.NewDateOnly(2025, time.October, 15), "10:00", "12:00"),
		partialBlock(3, types.NewDateOnly(2025, time.October, 20), "10:00", "12:00"),
	)
	svc := newTestService(repo)

	resp, err := svc.ListByRange(context.Background(),
		types.NewDateOnly(2025, time.October, 15),
		types.NewDateOnly(2025, time.October, 19),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.ListByRange(context.Background(),
		types.NewDateOnly(2025, time.October, 19),
		types.NewDateOnly(2025, time.October, 15),
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}
