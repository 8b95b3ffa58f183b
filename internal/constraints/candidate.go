package constraints

import "github.com/russross/classroom-scheduler/internal/domain"

// CandidateViolates reports whether assigning candidate to the course at
// courseIdx would break a hard constraint against the schedule's other
// already-placed courses, without needing a full Check() pass. Used by the
// greedy constructor (§4.5c) and the annealing scheduler's move validation
// (§4.6.2).
func CandidateViolates(schedule *domain.Schedule, courseIdx int, candidate domain.SessionPattern) bool {
	course := schedule.Courses[courseIdx].Course

	for _, instructor := range schedule.InstructorsFor(course) {
		if !candidate.FitsInstructor(instructor) {
			return true
		}
	}

	for i, sc := range schedule.Courses {
		if i == courseIdx || !sc.IsScheduled() {
			continue
		}
		if !candidate.Overlaps(sc.Pattern) {
			continue
		}
		if course.SharesInstructor(sc.Course) {
			return true
		}
		if schedule.Correlation != nil && schedule.Correlation.IsHard(course.Name, sc.Course.Name) {
			return true
		}
	}

	return false
}
