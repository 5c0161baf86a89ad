package domain

import "time"

// Trainer represents the trainer profile fields the booking core reads.
// The rating aggregate is mutated by the review subsystem, not here.
type Trainer struct {
	ID              int64
	UserID          int64
	HourlyRate      float64
	YearsExperience int

	// Location
	Address            string
	Latitude           *float64
	Longitude          *float64
	ServiceRadiusMiles int

	// IANA zone of the trainer's home location, e.g. "America/New_York".
	// All cancellation-window and lead-time math is done in this zone.
	Timezone string

	Specializations []string

	Verified  bool
	Published bool

	AverageRating float64
	TotalReviews  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLocation returns true if the profile has geocoded coordinates
func (t *Trainer) HasLocation() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// Location returns the trainer's time zone, falling back to UTC
// when the profile has no zone or an unknown one.
func (t *Trainer) Location() *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
