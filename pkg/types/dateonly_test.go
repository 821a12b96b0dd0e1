package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOnly(t *testing.T) {
	date, err := ParseDateOnly("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, NewDateOnly(2025, time.October, 15), date)

	_, err = ParseDateOnly("15.10.2025")
	require.ErrorIs(t, err, ErrInvalidDateOnly)

	_, err = ParseDateOnly("2025-13-01")
	require.ErrorIs(t, err, ErrInvalidDateOnly)
}

func TestDateOnly_String(t *testing.T) {
	date := NewDateOnly(2025, time.March, 7)
	assert.Equal(t, "2025-03-07", date.String())
}

func TestDateOnly_Ordering(t *testing.T) {
	earlier := NewDateOnly(2025, time.October, 14)
	later := NewDateOnly(2025, time.October, 15)
	nextYear := NewDateOnly(2026, time.January, 1)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.True(t, later.Before(nextYear))
	assert.False(t, later.Before(later))
	assert.True(t, later.Equal(later))
}

func TestDateOnly_AddDays(t *testing.T) {
	date := NewDateOnly(2025, time.October, 30)
	assert.Equal(t, NewDateOnly(2025, time.November, 1), date.AddDays(2))

	// Переход через год
	endOfYear := NewDateOnly(2025, time.December, 31)
	assert.Equal(t, NewDateOnly(2026, time.January, 1), endOfYear.AddDays(1))

	assert.Equal(t, NewDateOnly(2025, time.October, 29), date.AddDays(-1))
}

func TestDateOnly_Weekday(t *testing.T) {
	// 2025-10-15 - среда
	assert.Equal(t, time.Wednesday, NewDateOnly(2025, time.October, 15).Weekday())
	assert.Equal(t, time.Sunday, NewDateOnly(2025, time.October, 19).Weekday())
}

func TestDateOnlyFromTime_NoTimezoneShift(t *testing.T) {
	// Дата берётся в локации времени: поздний вечер не перетекает
	// в следующий день
	loc := time.FixedZone("UTC+11", 11*3600)
	late := time.Date(2025, time.October, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDateOnly(2025, time.October, 15), DateOnlyFromTime(late))
}

func TestDateOnly_Scan(t *testing.T) {
	var date DateOnly

	require.NoError(t, date.Scan(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDateOnly(2025, time.October, 15), date)

	require.NoError(t, date.Scan("2025-01-02"))
	assert.Equal(t, NewDateOnly(2025, time.January, 2), date)

	require.Error(t, date.Scan(3.14))
}
