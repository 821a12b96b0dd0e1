package treatment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
)

var treatmentColumns = []string{
	"id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога процедур
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория процедур
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает процедуру по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Treatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(treatmentColumns...).
		From("treatments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	treatment, err := r.scanTreatment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan treatment: %v", ErrScanRow, err)
	}

	return treatment, nil
}

// GetByIDs получает процедуры по списку ID.
// Порядок результата соответствует порядку запрошенных ID;
// отсутствие любого из них - ошибка ErrTreatmentNotFound.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Treatment, error) {
	if len(ids) == 0 {
		return []*domain.Treatment{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(treatmentColumns...).
		From("treatments").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Treatment, len(ids))
	for rows.Next() {
		treatment, err := r.scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		byID[treatment.ID] = treatment
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	result := make([]*domain.Treatment, 0, len(ids))
	for _, id := range ids {
		treatment, ok := byID[id]
		if !ok {
			return nil, ErrTreatmentNotFound
		}
		result = append(result, treatment)
	}

	return result, nil
}

// ListActive получает все активные процедуры каталога
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Treatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(treatmentColumns...).
		From("treatments").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	treatments := make([]*domain.Treatment, 0)
	for rows.Next() {
		treatment, err := r.scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		treatments = append(treatments, treatment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return treatments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTreatment(row rowScanner) (*domain.Treatment, error) {
	var treatment domain.Treatment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&treatment.ID,
		&treatment.Name,
		&treatment.DurationMinutes,
		&treatment.Price,
		&treatment.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	treatment.CreatedAt = createdAt.Time
	treatment.UpdatedAt = updatedAt.Time

	return &treatment, nil
}
