package domain

import (
	"time"

	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Customer клиент салона. Учётные записи ведёт внешний identity-провайдер,
// здесь запись только читается (email для сопоставления бронирований,
// дата рождения для скидки на день рождения).
type Customer struct {
	ID        int64
	Email     string
	Name      string
	Birthdate *types.DateOnly // nil - дата рождения не указана
	CreatedAt time.Time
}
