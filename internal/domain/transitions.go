package domain

// Role represents the actor role driving a booking transition.
// Closed set: every authorization check switches over all three values.
type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// IsValid returns true for a known role value
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// transitions описывает граф переходов статусов.
// pending - начальный статус; completed, no_show и оба cancelled_* - терминальные.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending: {
		StatusConfirmed,
		StatusCancelledByClient,
		StatusCancelledByTrainer,
	},
	StatusConfirmed: {
		StatusCompleted,
		StatusNoShow,
		StatusCancelledByClient,
		StatusCancelledByTrainer,
	},
}

// CanTransition returns true if the status graph permits from -> to
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus returns true for a known status value
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow,
		StatusCancelledByClient, StatusCancelledByTrainer:
		return true
	}
	return false
}
