package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateOnly календарная дата без времени суток и таймзоны.
// Используется как непрозрачный ключ "YYYY-MM-DD": сравнение дат никогда
// не проходит через таймзонные преобразования, чтобы исключить сдвиг
// на сутки при парсинге.
type DateOnly struct {
	Year  int
	Month time.Month
	Day   int
}

const dateOnlyLayout = "2006-01-02"

// ErrInvalidDateOnly возвращается при некорректном формате даты
var ErrInvalidDateOnly = errors.New("invalid date format, expected YYYY-MM-DD")

// NewDateOnly создает дату из компонентов
func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{Year: year, Month: month, Day: day}
}

// DateOnlyFromTime берёт календарную дату из time.Time в его локации
func DateOnlyFromTime(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{Year: y, Month: m, Day: d}
}

// ParseDateOnly парсит строку "YYYY-MM-DD"
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, ErrInvalidDateOnly
	}
	return DateOnlyFromTime(t), nil
}

// String возвращает "YYYY-MM-DD"
func (d DateOnly) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero возвращает true для нулевой даты
func (d DateOnly) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Equal возвращает true, если даты совпадают
func (d DateOnly) Equal(other DateOnly) bool {
	return d == other
}

// Before возвращает true, если дата строго раньше other
func (d DateOnly) Before(other DateOnly) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After возвращает true, если дата строго позже other
func (d DateOnly) After(other DateOnly) bool {
	return other.Before(d)
}

// AddDays возвращает дату, сдвинутую на указанное количество дней
func (d DateOnly) AddDays(days int) DateOnly {
	return DateOnlyFromTime(d.midnightUTC().AddDate(0, 0, days))
}

// Weekday возвращает день недели
func (d DateOnly) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// midnightUTC граница в time.Time нужна только для календарной арифметики
func (d DateOnly) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Scan реализует sql.Scanner (колонки DATE приходят как time.Time или строка)
func (d *DateOnly) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = DateOnly{}
		return nil
	case time.Time:
		*d = DateOnlyFromTime(v)
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDateOnly(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// Value реализует driver.Valuer
func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
