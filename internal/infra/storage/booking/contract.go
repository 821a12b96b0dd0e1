package booking

import (
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс выполнения запросов из dbmetrics:
// репозиторий работает одинаково поверх пула и открытой транзакции
type DBExecutor = dbmetrics.DBExecutor
