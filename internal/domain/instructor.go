package domain

import "time"

// Instructor is identified by ID and carries a weekly availability map.
// Windows on a given day are kept non-overlapping by whoever constructs the
// instructor (loader or simulator); the instructor itself only reads them.
type Instructor struct {
	ID           string
	Name         string
	Availability map[time.Weekday][]Interval
}

// NewInstructor builds an instructor with an empty availability map.
func NewInstructor(id, name string) *Instructor {
	return &Instructor{
		ID:           id,
		Name:         name,
		Availability: make(map[time.Weekday][]Interval),
	}
}

// IsAvailable reports whether [start, end) lies wholly within one of the
// instructor's availability windows on the given day.
func (in *Instructor) IsAvailable(day time.Weekday, start, end TimeOfDay) bool {
	for _, window := range in.Availability[day] {
		if window.Contains(start, end) {
			return true
		}
	}
	return false
}
