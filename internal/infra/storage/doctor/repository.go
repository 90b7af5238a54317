package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/pkg/dbmetrics"
	"github.com/abhinavxdd/MediQueue/pkg/psqlbuilder"
)

// doctorColumns полный список колонок таблицы doctors
var doctorColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"specialization",
	"clinic_id",
	"experience",
	"bio",
	"consultation_fee",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с врачами и их недельными шаблонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID вместе с недельным шаблоном доступности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(doctorColumns...).
		From("doctors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	doctor, err := r.scanDoctor(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}

	template, err := r.getTemplate(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	doctor.Template = template

	return doctor, nil
}

// List получает список активных врачей каталога.
// Шаблоны доступности в список не загружаются - они нужны только
// при расчете слотов конкретного врача.
func (r *Repository) List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(doctorColumns...).
		From("doctors").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC")

	if filter.Keyword != nil {
		pattern := "%" + *filter.Keyword + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"specialization": pattern},
		})
	}
	if filter.ClinicID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"clinic_id": *filter.ClinicID})
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

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doctor, err := r.scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return doctors, nil
}

// ReplaceTemplate атомарно заменяет недельный шаблон врача.
// Вызывается внутри транзакции (через контекст): старые строки удаляются,
// новые вставляются. Существующие приёмы не затрагиваются - занятость
// всегда вычисляется по таблице appointments.
func (r *Repository) ReplaceTemplate(ctx context.Context, doctorID int64, slots []domain.TemplateSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("doctor_schedule").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - execute delete: %v", ErrExecQuery, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("doctor_schedule").
		Columns("doctor_id", "weekday", "start_time", "end_time", "position")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(doctorID, int(slot.Weekday), slot.StartTime, slot.EndTime, slot.Position)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTemplate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// getTemplate загружает недельный шаблон врача в порядке (weekday, position)
func (r *Repository) getTemplate(ctx context.Context, executor dbmetrics.DBExecutor, doctorID int64) ([]domain.TemplateSlot, error) {
	query, args, err := psqlbuilder.Select("weekday", "start_time", "end_time", "position").
		From("doctor_schedule").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("weekday ASC, position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	template := make([]domain.TemplateSlot, 0)
	for rows.Next() {
		var slot domain.TemplateSlot
		var weekday int

		if err := rows.Scan(&weekday, &slot.StartTime, &slot.EndTime, &slot.Position); err != nil {
			return nil, fmt.Errorf("%w: getTemplate - scan row: %v", ErrScanRow, err)
		}

		slot.Weekday = time.Weekday(weekday)
		template = append(template, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTemplate - rows error: %v", ErrScanRow, err)
	}

	return template, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDoctor сканирует одну строку в врача (без шаблона)
func (r *Repository) scanDoctor(row rowScanner) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Email,
		&doctor.Phone,
		&doctor.Specialization,
		&doctor.ClinicID,
		&doctor.Experience,
		&doctor.Bio,
		&doctor.ConsultationFee,
		&doctor.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	doctor.CreatedAt = createdAt.Time
	doctor.UpdatedAt = updatedAt.Time

	return &doctor, nil
}
