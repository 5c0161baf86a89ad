package search_trainers

import (
	"fmt"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RadiusMiles != nil && !domain.IsAllowedSearchRadius(*req.RadiusMiles) {
		return fmt.Errorf("%w: radius must be one of %v miles", ErrInvalidInput, domain.AllowedSearchRadii)
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be provided together", ErrInvalidInput)
	}

	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return fmt.Errorf("%w: latitude out of range", ErrInvalidInput)
		}
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return fmt.Errorf("%w: longitude out of range", ErrInvalidInput)
		}
	}

	if req.MinPrice != nil && *req.MinPrice < 0 {
		return fmt.Errorf("%w: minPrice must be non-negative", ErrInvalidInput)
	}

	if req.MaxPrice != nil && *req.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must be non-negative", ErrInvalidInput)
	}

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return fmt.Errorf("%w: minPrice exceeds maxPrice", ErrInvalidInput)
	}

	if req.MinRating != nil && (*req.MinRating < 0 || *req.MinRating > 5) {
		return fmt.Errorf("%w: minRating must be between 0 and 5", ErrInvalidInput)
	}

	if req.MinExperience != nil && *req.MinExperience < 0 {
		return fmt.Errorf("%w: minExperience must be non-negative", ErrInvalidInput)
	}

	switch req.SortBy {
	case "", SortByDistance, SortByPriceAsc, SortByPriceDesc, SortByRating, SortByExperience:
	default:
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, req.SortBy)
	}

	// Сортировка по расстоянию требует локации клиента
	if req.SortBy == SortByDistance && req.Latitude == nil && (req.Address == nil || *req.Address == "") {
		return fmt.Errorf("%w: distance sort requires a client location", ErrInvalidInput)
	}

	if req.Page < 0 {
		return fmt.Errorf("%w: page must be positive", ErrInvalidInput)
	}

	return nil
}
