package discount

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

// Repository репозиторий счётчиков скидки лояльности.
//
// Инкремент и декремент выполняются атомарно на стороне БД
// (а не read-modify-write в приложении): одновременные запись
// и отмена у одного клиента не теряют обновления. Дрейф, который
// всё же возможен между независимыми инкрементами и декрементами,
// исправляет сверка по бронированиям (SetCount).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория счётчиков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает счётчик клиента
func (r *Repository) Get(ctx context.Context, customerID int64) (*domain.DiscountCounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"customer_id",
		"treatment_count",
		"last_redemption",
		"updated_at",
	).
		From("discount_counters").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var counter domain.DiscountCounter
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&counter.CustomerID,
		&counter.TreatmentCount,
		&counter.LastRedemption,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCounterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan counter: %v", ErrScanRow, err)
	}

	counter.UpdatedAt = updatedAt.Time

	return &counter, nil
}

// GetOrCreate получает счётчик клиента, создавая нулевой при отсутствии.
// Отсутствие счётчика - не ошибка: клиент просто ещё ничего не накопил.
func (r *Repository) GetOrCreate(ctx context.Context, customerID int64) (*domain.DiscountCounter, error) {
	counter, err := r.Get(ctx, customerID)
	if err == nil {
		return counter, nil
	}
	if err != ErrCounterNotFound {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("discount_counters").
		Columns("customer_id", "treatment_count").
		Values(customerID, 0).
		Suffix("ON CONFLICT (customer_id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx, customerID)
}

// Increment атомарно увеличивает счётчик на n, создавая запись при отсутствии
func (r *Repository) Increment(ctx context.Context, customerID int64, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO discount_counters (customer_id, treatment_count)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE
		SET treatment_count = discount_counters.treatment_count + $2,
		    updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, customerID, n); err != nil {
		return fmt.Errorf("%w: Increment - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Decrement атомарно уменьшает счётчик на n с ограничением снизу нулём
func (r *Repository) Decrement(ctx context.Context, customerID int64, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE discount_counters
		SET treatment_count = GREATEST(treatment_count - $2, 0),
		    updated_at = NOW()
		WHERE customer_id = $1`

	if _, err := executor.ExecContext(ctx, query, customerID, n); err != nil {
		return fmt.Errorf("%w: Decrement - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Reset сбрасывает счётчик в ноль и фиксирует момент погашения скидки
func (r *Repository) Reset(ctx context.Context, customerID int64, redeemedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO discount_counters (customer_id, treatment_count, last_redemption)
		VALUES ($1, 0, $2)
		ON CONFLICT (customer_id) DO UPDATE
		SET treatment_count = 0,
		    last_redemption = $2,
		    updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, customerID, redeemedAt); err != nil {
		return fmt.Errorf("%w: Reset - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// SetCount перезаписывает счётчик значением, вычисленным из бронирований.
// Используется операцией сверки; last_redemption не трогает.
func (r *Repository) SetCount(ctx context.Context, customerID int64, count int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO discount_counters (customer_id, treatment_count)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE
		SET treatment_count = $2,
		    updated_at = NOW()`

	if _, err := executor.ExecContext(ctx, query, customerID, count); err != nil {
		return fmt.Errorf("%w: SetCount - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
