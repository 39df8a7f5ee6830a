package coworking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для чтения коворкингов, мест и опций
// Запись этих сущностей живет в административном контуре и сюда не входит
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCoworkingByID получает коворкинг по ID
func (r *Repository) GetCoworkingByID(ctx context.Context, id uuid.UUID) (*domain.Coworking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"address",
		"opens_at",
		"closes_at",
		"images",
		"created_at",
		"updated_at",
	).
		From("coworkings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCoworkingByID - build select query: %v", ErrBuildQuery, err)
	}

	var cw domain.Coworking
	var images pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cw.ID,
		&cw.Name,
		&cw.Description,
		&cw.Address,
		&cw.OpensAt,
		&cw.ClosesAt,
		&images,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCoworkingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCoworkingByID - scan coworking: %v", ErrScanRow, err)
	}

	cw.Images = []string(images)
	cw.CreatedAt = createdAt.Time
	cw.UpdatedAt = updatedAt.Time

	return &cw, nil
}

// GetSpotByID получает место по ID
func (r *Repository) GetSpotByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"coworking_id",
		"name",
		"description",
		"position",
		"status",
		"created_at",
		"updated_at",
	).
		From("spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpotByID - build select query: %v", ErrBuildQuery, err)
	}

	var spot domain.Spot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&spot.ID,
		&spot.CoworkingID,
		&spot.Name,
		&spot.Description,
		&spot.Position,
		&spot.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpotByID - scan spot: %v", ErrScanRow, err)
	}

	spot.CreatedAt = createdAt.Time
	spot.UpdatedAt = updatedAt.Time

	return &spot, nil
}

// GetSpotsByCoworkingID получает все места коворкинга в порядке position
// Этот порядок считается "естественным" порядком выдачи для подбора
// альтернативного места
func (r *Repository) GetSpotsByCoworkingID(ctx context.Context, coworkingID uuid.UUID) ([]*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"coworking_id",
		"name",
		"description",
		"position",
		"status",
		"created_at",
		"updated_at",
	).
		From("spots").
		Where(squirrel.Eq{"coworking_id": coworkingID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpotsByCoworkingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpotsByCoworkingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0)
	for rows.Next() {
		var spot domain.Spot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&spot.ID,
			&spot.CoworkingID,
			&spot.Name,
			&spot.Description,
			&spot.Position,
			&spot.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSpotsByCoworkingID - scan row: %v", ErrScanRow, err)
		}

		spot.CreatedAt = createdAt.Time
		spot.UpdatedAt = updatedAt.Time
		spots = append(spots, &spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpotsByCoworkingID - rows error: %v", ErrScanRow, err)
	}

	return spots, nil
}

// GetOptionByID получает опцию по ID
func (r *Repository) GetOptionByID(ctx context.Context, id uuid.UUID) (*domain.Option, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"coworking_id",
		"name",
		"created_at",
		"updated_at",
	).
		From("options").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOptionByID - build select query: %v", ErrBuildQuery, err)
	}

	var option domain.Option
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&option.ID,
		&option.CoworkingID,
		&option.Name,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOptionByID - scan option: %v", ErrScanRow, err)
	}

	option.CreatedAt = createdAt.Time
	option.UpdatedAt = updatedAt.Time

	return &option, nil
}
