package blockedtime

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

var blockedTimeColumns = []string{
	"id",
	"block_date",
	"is_full_day",
	"start_time",
	"end_time",
	"reason",
	"created_by",
	"created_at",
}

// Repository репозиторий для работы с блокировками календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_times").
		Columns(
			"block_date",
			"is_full_day",
			"start_time",
			"end_time",
			"reason",
			"created_by",
		).
		Values(
			block.Date,
			block.IsFullDay,
			block.StartTime,
			block.EndTime,
			block.Reason,
			block.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedTimeColumns...).
		From("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := r.scanBlockedTime(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBlockedTimeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked time: %v", ErrScanRow, err)
	}

	return block, nil
}

// ListWithFilter получает блокировки по дате или периоду,
// упорядоченные по дате и времени начала
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BlockedTimesFilter) ([]*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockedTimeColumns...).
		From("blocked_times")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"block_date": *filter.Date})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"block_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"block_date": *filter.DateTo})
	}

	selectBuilder = selectBuilder.OrderBy("block_date ASC, is_full_day DESC, start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlockedTimes(rows)
}

// Delete удаляет блокировку по ID (явное действие администратора)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedTimeNotFound
	}

	return nil
}

// DeleteByDate удаляет блокировки даты. Если onlyPartial=true,
// удаляются только частичные блоки - так блок на весь день
// вытесняет частичные при создании.
func (r *Repository) DeleteByDate(ctx context.Context, date types.DateOnly, onlyPartial bool) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"block_date": date})

	if onlyPartial {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"is_full_day": false})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBlockedTime(row rowScanner) (*domain.BlockedTime, error) {
	var block domain.BlockedTime
	var createdAt sql.NullTime

	err := row.Scan(
		&block.ID,
		&block.Date,
		&block.IsFullDay,
		&block.StartTime,
		&block.EndTime,
		&block.Reason,
		&block.CreatedBy,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	block.CreatedAt = createdAt.Time

	return &block, nil
}

func (r *Repository) scanBlockedTimes(rows *sql.Rows) ([]*domain.BlockedTime, error) {
	blocks := make([]*domain.BlockedTime, 0)

	for rows.Next() {
		block, err := r.scanBlockedTime(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlockedTimes - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedTimes - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
