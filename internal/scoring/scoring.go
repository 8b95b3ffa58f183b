// Package scoring computes the schedule objective as a sum of weighted
// penalty terms, grounded on russross/schedule's score.go: walk pairs of
// placements, accumulate named penalty entries, sum them into a total.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// Component names used in the breakdown map, matching §4.3.
const (
	Correlation   = "correlation"
	InstructorGap = "instructor_gap"
	OffHours      = "off_hours"
	EarlyClass    = "early_class"
)

const (
	correlationWeight   = 100000.0
	gapThresholdMinutes = 60.0
	gapWeight           = 0.5 * 10.0
	offHoursWeight      = 50.0
	earlyClassWeight    = 5.0 * 20.0
)

// Breakdown is the per-component decomposition of a schedule's score.
type Breakdown map[string]float64

// Total sums every component.
func (b Breakdown) Total() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

// Score computes the schedule's objective and its component breakdown.
// Only courses with a non-empty pattern contribute.
func Score(schedule *domain.Schedule) (float64, Breakdown) {
	breakdown := Breakdown{
		Correlation:   0,
		InstructorGap: 0,
		OffHours:      0,
		EarlyClass:    0,
	}

	scheduled := scheduledCourses(schedule)

	breakdown[Correlation] = correlationPenalty(schedule, scheduled)
	breakdown[InstructorGap] = instructorGapPenalty(schedule, scheduled)
	breakdown[OffHours] = offHoursPenaltyTerm(scheduled)
	breakdown[EarlyClass] = earlyClassPenalty(scheduled)

	return breakdown.Total(), breakdown
}

func scheduledCourses(schedule *domain.Schedule) []*domain.ScheduledCourse {
	var out []*domain.ScheduledCourse
	for i := range schedule.Courses {
		sc := &schedule.Courses[i]
		if sc.IsScheduled() {
			out = append(out, sc)
		}
	}
	return out
}

// correlationPenalty walks every unordered pair of scheduled courses with a
// correlation at or above the soft threshold whose patterns overlap.
func correlationPenalty(schedule *domain.Schedule, scheduled []*domain.ScheduledCourse) float64 {
	if schedule.Correlation == nil {
		return 0
	}
	var total float64
	for i := 0; i < len(scheduled); i++ {
		for j := i + 1; j < len(scheduled); j++ {
			a, b := scheduled[i], scheduled[j]
			corr := schedule.Correlation.Get(a.Course.Name, b.Course.Name)
			if corr < domain.SoftCorrelationThreshold {
				continue
			}
			if !a.Pattern.Overlaps(b.Pattern) {
				continue
			}
			total += corr * corr * correlationWeight
		}
	}
	return total
}

// instructorGapPenalty buckets each instructor's slots by day and penalizes
// gaps over an hour between consecutive classes.
func instructorGapPenalty(schedule *domain.Schedule, scheduled []*domain.ScheduledCourse) float64 {
	type daySlot struct {
		day   int // index into domain.Weekdays
		start domain.TimeOfDay
		end   domain.TimeOfDay
	}
	byInstructor := make(map[*domain.Instructor][]daySlot)

	for _, sc := range scheduled {
		for _, instructor := range schedule.InstructorsFor(sc.Course) {
			for _, slot := range sc.Pattern {
				dayIdx := weekdayIndex(slot.Day)
				if dayIdx < 0 {
					continue
				}
				byInstructor[instructor] = append(byInstructor[instructor], daySlot{dayIdx, slot.Start, slot.End})
			}
		}
	}

	var total float64
	for _, slots := range byInstructor {
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].day != slots[j].day {
				return slots[i].day < slots[j].day
			}
			return slots[i].start < slots[j].start
		})
		for i := 1; i < len(slots); i++ {
			prev, cur := slots[i-1], slots[i]
			if prev.day != cur.day {
				continue
			}
			gap := float64(cur.start - prev.end)
			if gap > gapThresholdMinutes {
				total += (gap - gapThresholdMinutes) * gapWeight
			}
		}
	}
	return total
}

func offHoursPenaltyTerm(scheduled []*domain.ScheduledCourse) float64 {
	var total float64
	for _, sc := range scheduled {
		for _, slot := range sc.Pattern {
			if !slot.IsPreferred() {
				total += offHoursWeight
			}
		}
	}
	return total
}

func earlyClassPenalty(scheduled []*domain.ScheduledCourse) float64 {
	var total float64
	for _, sc := range scheduled {
		for _, slot := range sc.Pattern {
			if !slot.IsEarly() {
				continue
			}
			total += (math.Exp(slot.EarlyHours()) - 1) * earlyClassWeight
		}
	}
	return total
}

func weekdayIndex(day time.Weekday) int {
	for i, d := range domain.Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}
