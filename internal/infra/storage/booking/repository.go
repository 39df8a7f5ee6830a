package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"user_id",
	"spot_id",
	"time_from",
	"time_until",
	"status",
	"options",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"user_id",
			"spot_id",
			"time_from",
			"time_until",
			"status",
			"options",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.SpotID,
			booking.TimeFrom,
			booking.TimeUntil,
			booking.Status,
			optionsToArray(booking.Options),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlapConstraint
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Update обновляет границы интервала, статус и опции бронирования
// Бронирования никогда не удаляются физически
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("time_from", booking.TimeFrom).
		Set("time_until", booking.TimeUntil).
		Set("status", booking.Status).
		Set("options", optionsToArray(booking.Options)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlapConstraint
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBookingRow(executor.QueryRowContext(ctx, query, args...))
}

// GetByUserID получает все бронирования пользователя, новые сначала
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("time_from DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetBySpotID получает все бронирования места в хронологическом порядке
func (r *Repository) GetBySpotID(ctx context.Context, spotID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"spot_id": spotID}).
		OrderBy("time_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpotID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpotID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetActiveInRange получает активные бронирования места, пересекающие
// полуинтервал [from, until). Каноничный тест пересечения:
// time_from < until AND time_until > from — граничные касания не пересечение
//
// Внутри транзакции добавляет FOR UPDATE для блокировки прочитанных строк
// (сценарии create и reschedule)
func (r *Repository) GetActiveInRange(ctx context.Context, spotID uuid.UUID, from, until time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"spot_id": spotID,
			"status":  domain.StatusActive,
		}).
		Where(squirrel.Lt{"time_from": until}).
		Where(squirrel.Gt{"time_until": from}).
		OrderBy("time_from ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetActiveForSpots одним запросом получает активные бронирования нескольких
// мест, пересекающие [from, until). Используется поиском альтернативного места
func (r *Repository) GetActiveForSpots(ctx context.Context, spotIDs []uuid.UUID, from, until time.Time) ([]*domain.Booking, error) {
	if len(spotIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"spot_id": spotIDs,
			"status":  domain.StatusActive,
		}).
		Where(squirrel.Lt{"time_from": until}).
		Where(squirrel.Gt{"time_until": from}).
		OrderBy("time_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForSpots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForSpots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountAll возвращает общее количество бронирований
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAll - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAll - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetAllPaginated получает страницу бронирований, новые сначала
func (r *Repository) GetAllPaginated(ctx context.Context, pagination domain.Pagination) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pagination = pagination.Normalize()

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("time_from DESC").
		Limit(uint64(pagination.PerPage)).
		Offset(uint64(pagination.Offset())).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllPaginated - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllPaginated - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookingRow сканирует одну строку результата в бронирование
func (r *Repository) scanBookingRow(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var options pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SpotID,
		&booking.TimeFrom,
		&booking.TimeUntil,
		&booking.Status,
		&options,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBookingRow - scan booking: %v", ErrScanRow, err)
	}

	booking.Options, err = optionsFromArray(options)
	if err != nil {
		return nil, fmt.Errorf("%w: scanBookingRow - parse options: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var options pq.StringArray
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SpotID,
			&booking.TimeFrom,
			&booking.TimeUntil,
			&booking.Status,
			&options,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.Options, err = optionsFromArray(options)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - parse options: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// optionsToArray конвертирует uuid-опции в pq-массив для колонки uuid[]
func optionsToArray(options []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, len(options))
	for i, id := range options {
		arr[i] = id.String()
	}
	return arr
}

// optionsFromArray парсит значения колонки uuid[] обратно в uuid.UUID
func optionsFromArray(arr pq.StringArray) ([]uuid.UUID, error) {
	options := make([]uuid.UUID, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		options = append(options, id)
	}
	return options, nil
}

// isExclusionViolation проверяет нарушение exclusion constraint
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation
}
