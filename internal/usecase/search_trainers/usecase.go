package search_trainers

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/geocoder"
)

// UseCase use case для поиска и ранжирования тренеров
type UseCase struct {
	trainerRepo TrainerRepository
	geocoder    GeocoderClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(trainerRepo TrainerRepository, geocoderClient GeocoderClient, logger Logger) *UseCase {
	return &UseCase{
		trainerRepo: trainerRepo,
		geocoder:    geocoderClient,
		logger:      logger,
	}
}

// Execute выполняет поиск тренеров.
// Атрибутные фильтры применяются на уровне SQL, гео-фильтр по расстоянию
// и сортировка выполняются в памяти над отобранными кандидатами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchTrainers: validation failed: %v", err)
		return nil, err
	}

	origin, geoApplied, err := uc.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}

	trainers, err := uc.trainerRepo.ListPublished(ctx, trainerRepo.SearchFilter{
		MinPrice:           req.MinPrice,
		MaxPrice:           req.MaxPrice,
		MinRating:          req.MinRating,
		MinExperience:      req.MinExperience,
		Specializations:    req.Specializations,
		VerifiedOnly:       req.VerifiedOnly,
		RequireCoordinates: origin != nil,
	})
	if err != nil {
		uc.logger.Error("SearchTrainers: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list trainers: %v", ErrInternal, err)
	}

	radius := domain.DefaultSearchRadiusMiles
	if req.RadiusMiles != nil {
		radius = *req.RadiusMiles
	}

	results := rankTrainers(trainers, origin, radius)

	// По умолчанию сортируем по расстоянию, когда известна локация клиента,
	// иначе по рейтингу
	sortBy := req.SortBy
	if sortBy == "" {
		if origin != nil {
			sortBy = SortByDistance
		} else {
			sortBy = SortByRating
		}
	}
	sortResults(results, sortBy)

	page := req.Page
	if page < 1 {
		page = 1
	}

	totalCount := len(results)
	totalPages := (totalCount + domain.SearchPageSize - 1) / domain.SearchPageSize

	uc.logger.Info("SearchTrainers: %d candidates, %d matched, sort=%s, page=%d",
		len(trainers), totalCount, sortBy, page)

	return &Response{
		Trainers:         paginate(results, page),
		Page:             page,
		PageSize:         domain.SearchPageSize,
		TotalCount:       totalCount,
		TotalPages:       totalPages,
		GeoFilterApplied: geoApplied,
	}, nil
}

// resolveOrigin определяет координаты клиента. Возвращает nil origin,
// когда локация не задана или геокодер недоступен (graceful degradation).
func (uc *UseCase) resolveOrigin(ctx context.Context, req *Request) (*geocoder.Coordinate, bool, error) {
	if req.Latitude != nil && req.Longitude != nil {
		return &geocoder.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}, true, nil
	}

	if req.Address == nil || *req.Address == "" {
		return nil, false, nil
	}

	coord, err := uc.geocoder.GeocodeWithGracefulDegradation(ctx, *req.Address)
	if err != nil {
		if errors.Is(err, geocoder.ErrAddressNotFound) {
			uc.logger.Warn("SearchTrainers: address %q not found", *req.Address)
			return nil, false, ErrAddressNotFound
		}

		// Геокодер недоступен: ищем без фильтра по расстоянию
		uc.logger.Warn("SearchTrainers: geocoder degraded, searching without geo filter: %v", err)
		return nil, false, nil
	}

	return coord, true, nil
}

// rankTrainers применяет гео-фильтр: тренер попадает в выдачу, когда
// расстояние не превышает ни радиус поиска, ни радиус выезда тренера
func rankTrainers(trainers []*domain.Trainer, origin *geocoder.Coordinate, searchRadius int) []TrainerResult {
	results := make([]TrainerResult, 0, len(trainers))

	for _, t := range trainers {
		result := TrainerResult{
			ID:                 t.ID,
			UserID:             t.UserID,
			HourlyRate:         t.HourlyRate,
			YearsExperience:    t.YearsExperience,
			Address:            t.Address,
			ServiceRadiusMiles: t.ServiceRadiusMiles,
			Specializations:    t.Specializations,
			Verified:           t.Verified,
			AverageRating:      t.AverageRating,
			TotalReviews:       t.TotalReviews,
		}

		if origin != nil {
			if !t.HasLocation() {
				continue
			}

			distance := haversineMiles(origin.Latitude, origin.Longitude, *t.Latitude, *t.Longitude)
			if distance > float64(searchRadius) || distance > float64(t.ServiceRadiusMiles) {
				continue
			}

			result.DistanceMiles = &distance
		}

		results = append(results, result)
	}

	return results
}

// sortResults сортирует результаты по выбранному ключу,
// при равенстве ключей порядок детерминирован по ID
func sortResults(results []TrainerResult, sortBy string) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		switch sortBy {
		case SortByDistance:
			if a.DistanceMiles != nil && b.DistanceMiles != nil && *a.DistanceMiles != *b.DistanceMiles {
				return *a.DistanceMiles < *b.DistanceMiles
			}
		case SortByPriceAsc:
			if a.HourlyRate != b.HourlyRate {
				return a.HourlyRate < b.HourlyRate
			}
		case SortByPriceDesc:
			if a.HourlyRate != b.HourlyRate {
				return a.HourlyRate > b.HourlyRate
			}
		case SortByExperience:
			if a.YearsExperience != b.YearsExperience {
				return a.YearsExperience > b.YearsExperience
			}
		default: // SortByRating
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		}

		return a.ID < b.ID
	})
}

func paginate(results []TrainerResult, page int) []TrainerResult {
	start := (page - 1) * domain.SearchPageSize
	if start >= len(results) {
		return []TrainerResult{}
	}

	end := start + domain.SearchPageSize
	if end > len(results) {
		end = len(results)
	}

	return results[start:end]
}
