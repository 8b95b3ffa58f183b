package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time expressed as minutes since midnight. The catalog
// only ever generates values on 30-minute boundaries between 08:00 and
// 20:00, but the type itself makes no such assumption so that room and
// instructor unavailability windows can use any minute value.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour/minute pair.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Interval is a half-open [Start, End) window within a single day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether [start, end) lies wholly within iv.
func (iv Interval) Contains(start, end TimeOfDay) bool {
	return iv.Start <= start && end <= iv.End
}

// Weekdays enumerates the five scheduling days, Monday through Friday.
var Weekdays = [5]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// TimeSlot is a single weekly meeting: a day plus a half-open time range.
type TimeSlot struct {
	Day   time.Weekday
	Start TimeOfDay
	End   TimeOfDay
}

// DurationMinutes returns the slot's length.
func (s TimeSlot) DurationMinutes() int {
	return int(s.End) - int(s.Start)
}

// Overlaps reports whether two slots share a day and their time ranges
// intersect.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if s.Day != other.Day {
		return false
	}
	return Interval{s.Start, s.End}.Overlaps(Interval{other.Start, other.End})
}

// IsPreferred classifies a slot as falling in the 09:00-17:00 "preferred"
// window used by the off-hours penalty.
func (s TimeSlot) IsPreferred() bool {
	return s.Start >= NewTimeOfDay(9, 0) && s.Start < NewTimeOfDay(17, 0)
}

// IsEarly classifies a slot as starting before 10:00.
func (s TimeSlot) IsEarly() bool {
	return s.Start < NewTimeOfDay(10, 0)
}

// EarlyHours is 10 minus the hour of the slot's start (a 09:30 start gives
// 1), floored at zero, used to scale the early-class penalty.
func (s TimeSlot) EarlyHours() float64 {
	hours := 10 - s.Start.Hour()
	if hours < 0 {
		return 0
	}
	return float64(hours)
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
}
