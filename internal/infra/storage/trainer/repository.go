package trainer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	"github.com/m04kA/FitMarket-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FitMarket-BookingService/pkg/psqlbuilder"
)

var trainerColumns = []string{
	"id",
	"user_id",
	"hourly_rate",
	"years_experience",
	"address",
	"latitude",
	"longitude",
	"service_radius_miles",
	"timezone",
	"specializations",
	"verified",
	"published",
	"average_rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// SearchFilter фильтры поиска тренеров, применяемые на уровне SQL.
// Гео-фильтр по радиусу применяется выше, в usecase, после выборки.
type SearchFilter struct {
	MinPrice        *float64
	MaxPrice        *float64
	MinRating       *float64
	MinExperience   *int
	Specializations []string
	VerifiedOnly    bool

	// Отбирать только тренеров с координатами. Ставится при поиске
	// с известной локацией клиента: без координат тренер не может
	// пройти гео-фильтр. Без локации тренер без координат остается в выдаче.
	RequireCoordinates bool
}

// Repository репозиторий для чтения профилей тренеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тренеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль тренера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(trainerColumns...).
		From("trainers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	trainer, err := scanTrainer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan trainer: %v", ErrScanRow, err)
	}

	return trainer, nil
}

// ListPublished возвращает опубликованных тренеров,
// удовлетворяющих фильтрам. Кандидаты для гео-ранжирования.
func (r *Repository) ListPublished(ctx context.Context, filter SearchFilter) ([]*domain.Trainer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(trainerColumns...).
		From("trainers").
		Where(squirrel.Eq{"published": true})

	if filter.RequireCoordinates {
		selectBuilder = selectBuilder.Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	}
	if filter.VerifiedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"verified": true})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"hourly_rate": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"hourly_rate": *filter.MaxPrice})
	}
	if filter.MinRating != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"average_rating": *filter.MinRating})
	}
	if filter.MinExperience != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"years_experience": *filter.MinExperience})
	}
	if len(filter.Specializations) > 0 {
		// Тренер подходит, если у него есть хотя бы одна из запрошенных специализаций
		selectBuilder = selectBuilder.Where("specializations && ?", pq.Array(filter.Specializations))
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	trainers := make([]*domain.Trainer, 0)
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPublished - scan row: %v", ErrScanRow, err)
		}
		trainers = append(trainers, trainer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPublished - rows error: %v", ErrScanRow, err)
	}

	return trainers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrainer(row rowScanner) (*domain.Trainer, error) {
	var trainer domain.Trainer
	var createdAt, updatedAt sql.NullTime
	var timezone sql.NullString

	err := row.Scan(
		&trainer.ID,
		&trainer.UserID,
		&trainer.HourlyRate,
		&trainer.YearsExperience,
		&trainer.Address,
		&trainer.Latitude,
		&trainer.Longitude,
		&trainer.ServiceRadiusMiles,
		&timezone,
		pq.Array(&trainer.Specializations),
		&trainer.Verified,
		&trainer.Published,
		&trainer.AverageRating,
		&trainer.TotalReviews,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	trainer.Timezone = timezone.String
	trainer.CreatedAt = createdAt.Time
	trainer.UpdatedAt = updatedAt.Time

	return &trainer, nil
}
