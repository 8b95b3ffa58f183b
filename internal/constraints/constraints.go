// Package constraints validates hard constraints over a schedule,
// independent of scoring, grounded on russross/schedule's score.go pairwise
// "instructor double booked" / conflict walk, split into its own predicate
// pass per the spec's separation of checking from scoring.
package constraints

import (
	"fmt"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// Kind classifies a violation.
type Kind string

const (
	InstructorAvailability Kind = "instructor_availability"
	InstructorOverlap      Kind = "instructor_overlap"
	HardCorrelationOverlap Kind = "hard_correlation_overlap"
)

// Violation describes a single broken hard constraint.
type Violation struct {
	Kind    Kind
	Message string
}

// Check returns every hard-constraint violation in the schedule. An empty
// result means the schedule is feasible.
func Check(schedule *domain.Schedule) []Violation {
	var violations []Violation
	violations = append(violations, checkInstructorAvailability(schedule)...)
	violations = append(violations, checkInstructorOverlap(schedule)...)
	violations = append(violations, checkHardCorrelationOverlap(schedule)...)
	return violations
}

// Feasible reports whether the schedule has zero violations.
func Feasible(schedule *domain.Schedule) bool {
	return len(Check(schedule)) == 0
}

func checkInstructorAvailability(schedule *domain.Schedule) []Violation {
	var violations []Violation
	for _, sc := range schedule.Courses {
		if !sc.IsScheduled() {
			continue
		}
		for _, instructor := range schedule.InstructorsFor(sc.Course) {
			if !sc.Pattern.FitsInstructor(instructor) {
				violations = append(violations, Violation{
					Kind: InstructorAvailability,
					Message: fmt.Sprintf("course %q has a session outside %s's availability",
						sc.Course.Name, instructor.Name),
				})
			}
		}
	}
	return violations
}

func checkInstructorOverlap(schedule *domain.Schedule) []Violation {
	var violations []Violation
	courses := scheduledCourses(schedule)
	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			a, b := courses[i], courses[j]
			if !a.Course.SharesInstructor(b.Course) {
				continue
			}
			if a.Pattern.Overlaps(b.Pattern) {
				violations = append(violations, Violation{
					Kind: InstructorOverlap,
					Message: fmt.Sprintf("courses %q and %q share an instructor and overlap",
						a.Course.Name, b.Course.Name),
				})
			}
		}
	}
	return violations
}

func checkHardCorrelationOverlap(schedule *domain.Schedule) []Violation {
	if schedule.Correlation == nil {
		return nil
	}
	var violations []Violation
	courses := scheduledCourses(schedule)
	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			a, b := courses[i], courses[j]
			if !schedule.Correlation.IsHard(a.Course.Name, b.Course.Name) {
				continue
			}
			if a.Pattern.Overlaps(b.Pattern) {
				violations = append(violations, Violation{
					Kind: HardCorrelationOverlap,
					Message: fmt.Sprintf("courses %q and %q are forbidden to overlap but do",
						a.Course.Name, b.Course.Name),
				})
			}
		}
	}
	return violations
}

func scheduledCourses(schedule *domain.Schedule) []*domain.ScheduledCourse {
	var out []*domain.ScheduledCourse
	for i := range schedule.Courses {
		if schedule.Courses[i].IsScheduled() {
			out = append(out, &schedule.Courses[i])
		}
	}
	return out
}
