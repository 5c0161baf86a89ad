package search_trainers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	searchTrainersUC "github.com/m04kA/FitMarket-BookingService/internal/usecase/search_trainers"
)

// TrainerResult HTTP модель одного тренера в выдаче
type TrainerResult struct {
	ID                 int64    `json:"id"`
	HourlyRate         float64  `json:"hourlyRate"`
	YearsExperience    int      `json:"yearsExperience"`
	Address            string   `json:"address"`
	ServiceRadiusMiles int      `json:"serviceRadiusMiles"`
	Specializations    []string `json:"specializations"`
	Verified           bool     `json:"verified"`
	AverageRating      float64  `json:"averageRating"`
	TotalReviews       int      `json:"totalReviews"`
	DistanceMiles      *float64 `json:"distanceMiles,omitempty"`
}

// SearchResponse HTTP модель ответа поиска
type SearchResponse struct {
	Trainers   []TrainerResult `json:"trainers"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int             `json:"totalCount"`
	TotalPages int             `json:"totalPages"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *searchTrainersUC.Response) *SearchResponse {
	out := &SearchResponse{
		Trainers:   make([]TrainerResult, 0, len(resp.Trainers)),
		Page:       resp.Page,
		PageSize:   resp.PageSize,
		TotalCount: resp.TotalCount,
		TotalPages: resp.TotalPages,
	}

	for _, t := range resp.Trainers {
		out.Trainers = append(out.Trainers, TrainerResult{
			ID:                 t.ID,
			HourlyRate:         t.HourlyRate,
			YearsExperience:    t.YearsExperience,
			Address:            t.Address,
			ServiceRadiusMiles: t.ServiceRadiusMiles,
			Specializations:    t.Specializations,
			Verified:           t.Verified,
			AverageRating:      t.AverageRating,
			TotalReviews:       t.TotalReviews,
			DistanceMiles:      t.DistanceMiles,
		})
	}

	return out
}

// parseQuery собирает модель запроса usecase из query-параметров
func parseQuery(query url.Values) (*searchTrainersUC.Request, error) {
	req := &searchTrainersUC.Request{
		SortBy:       query.Get("sortBy"),
		VerifiedOnly: query.Get("verifiedOnly") == "true",
	}

	if address := query.Get("address"); address != "" {
		req.Address = &address
	}

	if raw := query.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lat: %v", err)
		}
		req.Latitude = &lat
	}

	if raw := query.Get("lng"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid lng: %v", err)
		}
		req.Longitude = &lng
	}

	if raw := query.Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %v", err)
		}
		req.RadiusMiles = &radius
	}

	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minPrice: %v", err)
		}
		req.MinPrice = &minPrice
	}

	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid maxPrice: %v", err)
		}
		req.MaxPrice = &maxPrice
	}

	if raw := query.Get("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid minRating: %v", err)
		}
		req.MinRating = &minRating
	}

	if raw := query.Get("minExperience"); raw != "" {
		minExperience, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid minExperience: %v", err)
		}
		req.MinExperience = &minExperience
	}

	if raw := query.Get("specializations"); raw != "" {
		for _, spec := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(spec); trimmed != "" {
				req.Specializations = append(req.Specializations, trimmed)
			}
		}
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid page: %v", err)
		}
		req.Page = page
	}

	return req, nil
}
