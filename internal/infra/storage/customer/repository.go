package customer

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

var customerColumns = []string{
	"id",
	"email",
	"name",
	"birthdate",
	"created_at",
}

// Repository репозиторий клиентов. Учётные записи ведёт внешний
// identity-провайдер, поэтому здесь только чтение.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

// GetByEmail получает клиента по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.getWhere(ctx, squirrel.Eq{"email": email})
}

func (r *Repository) getWhere(ctx context.Context, where squirrel.Eq) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: build select query: %v", ErrBuildQuery, err)
	}

	var customer domain.Customer
	var birthdate, createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&birthdate,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan customer: %v", ErrScanRow, err)
	}

	if birthdate.Valid {
		d := types.DateOnlyFromTime(birthdate.Time)
		customer.Birthdate = &d
	}
	customer.CreatedAt = createdAt.Time

	return &customer, nil
}
