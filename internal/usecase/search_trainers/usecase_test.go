package search_trainers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitMarket-BookingService/internal/domain"
	trainerRepo "github.com/m04kA/FitMarket-BookingService/internal/infra/storage/trainer"
	"github.com/m04kA/FitMarket-BookingService/internal/integrations/geocoder"
	"github.com/m04kA/FitMarket-BookingService/pkg/ptr"
)

type fakeTrainerRepo struct {
	trainers   []*domain.Trainer
	lastFilter trainerRepo.SearchFilter
}

func (f *fakeTrainerRepo) ListPublished(_ context.Context, filter trainerRepo.SearchFilter) ([]*domain.Trainer, error) {
	f.lastFilter = filter
	return f.trainers, nil
}

type fakeGeocoder struct {
	coord *geocoder.Coordinate
	err   error
}

func (f *fakeGeocoder) GeocodeWithGracefulDegradation(_ context.Context, _ string) (*geocoder.Coordinate, error) {
	return f.coord, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Координаты вокруг Манхэттена: расстояния до origin подобраны заранее
var originNYC = geocoder.Coordinate{Latitude: 40.7580, Longitude: -73.9855}

func trainerAt(id int64, lat, lng float64) *domain.Trainer {
	return &domain.Trainer{
		ID:                 id,
		UserID:             id + 1000,
		HourlyRate:         75,
		Latitude:           &lat,
		Longitude:          &lng,
		ServiceRadiusMiles: 100,
		Published:          true,
	}
}

func TestExecute_GeoFilterByRadius(t *testing.T) {
	near := trainerAt(1, 40.7614, -73.9776)    // ~0.5 мили
	mid := trainerAt(2, 40.6782, -73.9442)     // ~6 миль (Бруклин)
	far := trainerAt(3, 40.0583, -74.4057)     // ~50+ миль (Нью-Джерси)

	repo := &fakeTrainerRepo{trainers: []*domain.Trainer{near, mid, far}}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Latitude:    ptr.Ptr(originNYC.Latitude),
		Longitude:   ptr.Ptr(originNYC.Longitude),
		RadiusMiles: ptr.Ptr(10),
	})

	require.NoError(t, err)
	assert.True(t, resp.GeoFilterApplied)
	require.Len(t, resp.Trainers, 2)
	// Сортировка по умолчанию при заданной локации - по расстоянию
	assert.Equal(t, int64(1), resp.Trainers[0].ID)
	assert.Equal(t, int64(2), resp.Trainers[1].ID)
	require.NotNil(t, resp.Trainers[0].DistanceMiles)
	assert.Less(t, *resp.Trainers[0].DistanceMiles, *resp.Trainers[1].DistanceMiles)
}

func TestExecute_ServiceRadiusCapsDistance(t *testing.T) {
	// Тренер в ~6 милях, но выезжает только в пределах 5
	mid := trainerAt(2, 40.6782, -73.9442)
	mid.ServiceRadiusMiles = 5

	repo := &fakeTrainerRepo{trainers: []*domain.Trainer{mid}}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Latitude:    ptr.Ptr(originNYC.Latitude),
		Longitude:   ptr.Ptr(originNYC.Longitude),
		RadiusMiles: ptr.Ptr(25),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Trainers)
}

func TestExecute_TrainerWithoutLocationSkippedWhenGeoSearch(t *testing.T) {
	located := trainerAt(1, 40.7614, -73.9776)
	unlocated := &domain.Trainer{ID: 2, HourlyRate: 50, Published: true}

	repo := &fakeTrainerRepo{trainers: []*domain.Trainer{located, unlocated}}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Latitude:  ptr.Ptr(originNYC.Latitude),
		Longitude: ptr.Ptr(originNYC.Longitude),
	})

	require.NoError(t, err)
	require.Len(t, resp.Trainers, 1)
	assert.Equal(t, int64(1), resp.Trainers[0].ID)
	// Кандидаты без координат отсекаются уже на уровне SQL
	assert.True(t, repo.lastFilter.RequireCoordinates)
}

// Без локации клиента гео-фильтр не нужен, и тренер без координат
// остается в выдаче
func TestExecute_TrainerWithoutLocationIncludedWithoutOrigin(t *testing.T) {
	located := trainerAt(1, 40.7614, -73.9776)
	unlocated := &domain.Trainer{ID: 2, HourlyRate: 50, Published: true}

	repo := &fakeTrainerRepo{trainers: []*domain.Trainer{located, unlocated}}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.False(t, repo.lastFilter.RequireCoordinates)
	require.Len(t, resp.Trainers, 2)
	for _, result := range resp.Trainers {
		assert.Nil(t, result.DistanceMiles)
	}
}

func TestExecute_GeocoderDegradedSearchesWithoutGeoFilter(t *testing.T) {
	trainers := []*domain.Trainer{
		trainerAt(1, 40.76, -73.97),
		trainerAt(2, 40.67, -73.94),
	}
	repo := &fakeTrainerRepo{trainers: trainers}
	degraded := &fakeGeocoder{err: fmt.Errorf("%w: connection refused", geocoder.ErrServiceDegraded)}
	uc := NewUseCase(repo, degraded, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Address: ptr.Ptr("Times Square, NYC"),
	})

	require.NoError(t, err)
	assert.False(t, resp.GeoFilterApplied)
	assert.Len(t, resp.Trainers, 2)
	assert.Nil(t, resp.Trainers[0].DistanceMiles)
}

func TestExecute_AddressNotFound(t *testing.T) {
	uc := NewUseCase(&fakeTrainerRepo{}, &fakeGeocoder{err: geocoder.ErrAddressNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Address: ptr.Ptr("nowhere at all"),
	})

	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestExecute_SortKeys(t *testing.T) {
	trainers := []*domain.Trainer{
		{ID: 1, HourlyRate: 90, YearsExperience: 3, AverageRating: 4.2, Published: true},
		{ID: 2, HourlyRate: 60, YearsExperience: 10, AverageRating: 4.9, Published: true},
		{ID: 3, HourlyRate: 75, YearsExperience: 5, AverageRating: 4.5, Published: true},
	}

	tests := []struct {
		sortBy string
		want   []int64
	}{
		{SortByPriceAsc, []int64{2, 3, 1}},
		{SortByPriceDesc, []int64{1, 3, 2}},
		{SortByRating, []int64{2, 3, 1}},
		{SortByExperience, []int64{2, 3, 1}},
		{"", []int64{2, 3, 1}}, // без локации дефолт - рейтинг
	}

	for _, tt := range tests {
		t.Run("sort="+tt.sortBy, func(t *testing.T) {
			repo := &fakeTrainerRepo{trainers: trainers}
			uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{SortBy: tt.sortBy})
			require.NoError(t, err)

			got := make([]int64, 0, len(resp.Trainers))
			for _, tr := range resp.Trainers {
				got = append(got, tr.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_SortTiebreakByID(t *testing.T) {
	trainers := []*domain.Trainer{
		{ID: 5, HourlyRate: 75, AverageRating: 4.5, Published: true},
		{ID: 2, HourlyRate: 75, AverageRating: 4.5, Published: true},
		{ID: 9, HourlyRate: 75, AverageRating: 4.5, Published: true},
	}
	repo := &fakeTrainerRepo{trainers: trainers}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SortBy: SortByPriceAsc})
	require.NoError(t, err)

	require.Len(t, resp.Trainers, 3)
	assert.Equal(t, int64(2), resp.Trainers[0].ID)
	assert.Equal(t, int64(5), resp.Trainers[1].ID)
	assert.Equal(t, int64(9), resp.Trainers[2].ID)
}

func TestExecute_Pagination(t *testing.T) {
	trainers := make([]*domain.Trainer, 0, 45)
	for i := 1; i <= 45; i++ {
		trainers = append(trainers, &domain.Trainer{
			ID:            int64(i),
			HourlyRate:    50,
			AverageRating: 4.0,
			Published:     true,
		})
	}
	repo := &fakeTrainerRepo{trainers: trainers}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	page1, err := uc.Execute(context.Background(), &Request{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Trainers, domain.SearchPageSize)
	assert.Equal(t, 45, page1.TotalCount)
	assert.Equal(t, 3, page1.TotalPages)

	page3, err := uc.Execute(context.Background(), &Request{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Trainers, 5)

	page4, err := uc.Execute(context.Background(), &Request{Page: 4})
	require.NoError(t, err)
	assert.Empty(t, page4.Trainers)
}

func TestExecute_FilterPassedToRepository(t *testing.T) {
	repo := &fakeTrainerRepo{}
	uc := NewUseCase(repo, &fakeGeocoder{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		MinPrice:        ptr.Ptr(40.0),
		MaxPrice:        ptr.Ptr(120.0),
		MinRating:       ptr.Ptr(4.0),
		MinExperience:   ptr.Ptr(3),
		Specializations: []string{"yoga", "strength"},
		VerifiedOnly:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, 40.0, *repo.lastFilter.MinPrice)
	assert.Equal(t, 120.0, *repo.lastFilter.MaxPrice)
	assert.Equal(t, 4.0, *repo.lastFilter.MinRating)
	assert.Equal(t, 3, *repo.lastFilter.MinExperience)
	assert.Equal(t, []string{"yoga", "strength"}, repo.lastFilter.Specializations)
	assert.True(t, repo.lastFilter.VerifiedOnly)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeTrainerRepo{}, &fakeGeocoder{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"недопустимый радиус", &Request{RadiusMiles: ptr.Ptr(7)}},
		{"широта без долготы", &Request{Latitude: ptr.Ptr(40.0)}},
		{"minPrice > maxPrice", &Request{MinPrice: ptr.Ptr(100.0), MaxPrice: ptr.Ptr(50.0)}},
		{"рейтинг вне диапазона", &Request{MinRating: ptr.Ptr(6.0)}},
		{"неизвестный ключ сортировки", &Request{SortBy: "alphabetical"}},
		{"distance без локации", &Request{SortBy: SortByDistance}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

var errRepoDown = errors.New("db down")

type failingTrainerRepo struct{}

func (failingTrainerRepo) ListPublished(_ context.Context, _ trainerRepo.SearchFilter) ([]*domain.Trainer, error) {
	return nil, errRepoDown
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(failingTrainerRepo{}, &fakeGeocoder{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}
