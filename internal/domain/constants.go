package domain

// Session durations available for booking, in minutes
var AllowedDurations = []int{30, 60, 90, 120}

// Search radii available to clients, in miles
var AllowedSearchRadii = []int{5, 10, 25, 50, 100}

// Business rule constants
const (
	// Клиент может отменить не позже чем за 24 часа до начала сессии
	CancellationWindowHours = 24

	// Самая ранняя дата бронирования - завтра (в часовом поясе тренера)
	MinLeadTimeDays = 1

	DefaultSearchRadiusMiles = 25
	SearchPageSize           = 20

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxLocationAddressLength    = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsAllowedDuration returns true if d is one of the bookable session lengths
func IsAllowedDuration(d int) bool {
	for _, allowed := range AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// IsAllowedSearchRadius returns true if r is one of the selectable radii
func IsAllowedSearchRadius(r int) bool {
	for _, allowed := range AllowedSearchRadii {
		if r == allowed {
			return true
		}
	}
	return false
}

// ActiveStatuses список статусов, занимающих слот тренера.
// Используется при проверке конфликтов.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список терминальных статусов, не занимающих слот
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByClient,
	StatusCancelledByTrainer,
}
