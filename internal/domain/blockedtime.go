package domain

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// BlockedTime закрытый администратором интервал календаря.
// Либо весь день (IsFullDay=true, времена пустые), либо пара
// начало/конец внутри дня.
//
// Инварианты, которые поддерживает сервис blockedtime:
// - блок на весь день вытесняет (удаляет) частичные блоки этой даты;
// - два частичных блока одной даты не пересекаются по времени.
type BlockedTime struct {
	ID        int64
	Date      types.DateOnly
	IsFullDay bool
	StartTime types.TimeString // пустое при IsFullDay
	EndTime   types.TimeString // пустое при IsFullDay
	Reason    string
	CreatedBy int64 // ID администратора
	CreatedAt time.Time
}

// Interval возвращает интервал частичного блока.
// Для блока на весь день вызывать нельзя - проверяйте IsFullDay заранее.
func (b *BlockedTime) Interval() (Interval, error) {
	return NewIntervalFromRange(b.StartTime, b.EndTime)
}

// BlockedTimesFilter фильтр для выборки блокировок
type BlockedTimesFilter struct {
	Date     *types.DateOnly // блокировки конкретной даты
	DateFrom *types.DateOnly // начало периода (включительно)
	DateTo   *types.DateOnly // конец периода (включительно)
}
