package search_trainers

// Ключи сортировки результатов поиска
const (
	SortByDistance   = "distance"
	SortByPriceAsc   = "price_asc"
	SortByPriceDesc  = "price_desc"
	SortByRating     = "rating"
	SortByExperience = "experience"
)

// Request модель запроса на поиск тренеров
type Request struct {
	// Локация клиента: либо адрес для геокодирования, либо готовые координаты
	Address   *string
	Latitude  *float64
	Longitude *float64

	// Радиус поиска в милях (допустимые значения перечислены в domain)
	RadiusMiles *int

	MinPrice        *float64
	MaxPrice        *float64
	MinRating       *float64
	MinExperience   *int
	Specializations []string
	VerifiedOnly    bool

	SortBy string // Пустое значение означает сортировку по рейтингу
	Page   int    // Номер страницы, начиная с 1
}

// TrainerResult один тренер в результатах поиска
type TrainerResult struct {
	ID                 int64
	UserID             int64
	HourlyRate         float64
	YearsExperience    int
	Address            string
	ServiceRadiusMiles int
	Specializations    []string
	Verified           bool
	AverageRating      float64
	TotalReviews       int

	// Расстояние до клиента в милях; nil, если локация клиента неизвестна
	DistanceMiles *float64
}

// Response модель ответа с результатами поиска
type Response struct {
	Trainers   []TrainerResult
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int

	// Гео-фильтр мог быть отключен из-за недоступности геокодера
	GeoFilterApplied bool
}
