package clinic

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/pkg/dbmetrics"
	"github.com/abhinavxdd/MediQueue/pkg/psqlbuilder"
)

// clinicColumns полный список колонок таблицы clinics
var clinicColumns = []string{
	"id",
	"name",
	"address",
	"city",
	"phone",
	"email",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиниками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиник
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клинику по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clinicColumns...).
		From("clinics").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	clinic, err := r.scanClinic(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan clinic: %v", ErrScanRow, err)
	}

	return clinic, nil
}

// List получает список клиник, опционально фильтруя по городу
func (r *Repository) List(ctx context.Context, city *string) ([]*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(clinicColumns...).
		From("clinics").
		OrderBy("name ASC")

	if city != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"city": *city})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clinics := make([]*domain.Clinic, 0)
	for rows.Next() {
		clinic, err := r.scanClinic(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		clinics = append(clinics, clinic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return clinics, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanClinic сканирует одну строку в клинику
func (r *Repository) scanClinic(row rowScanner) (*domain.Clinic, error) {
	var clinic domain.Clinic
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&clinic.ID,
		&clinic.Name,
		&clinic.Address,
		&clinic.City,
		&clinic.Phone,
		&clinic.Email,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	clinic.CreatedAt = createdAt.Time
	clinic.UpdatedAt = updatedAt.Time

	return &clinic, nil
}
