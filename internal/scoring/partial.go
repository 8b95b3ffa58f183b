package scoring

import (
	"math"
	"sort"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// CandidateCost estimates how much a candidate pattern would add to the
// objective if assigned to the course at courseIdx, given the schedule's
// other courses as already placed. It only accounts for terms that compare
// the candidate against already-placed courses and the candidate's own
// slots — exactly what the greedy constructor needs to rank candidates
// without rescoring the whole schedule each time (§4.5c).
func CandidateCost(schedule *domain.Schedule, courseIdx int, candidate domain.SessionPattern) float64 {
	course := schedule.Courses[courseIdx].Course
	var cost float64

	if schedule.Correlation != nil {
		for i, sc := range schedule.Courses {
			if i == courseIdx || !sc.IsScheduled() {
				continue
			}
			corr := schedule.Correlation.Get(course.Name, sc.Course.Name)
			if corr < domain.SoftCorrelationThreshold {
				continue
			}
			if candidate.Overlaps(sc.Pattern) {
				cost += corr * corr * correlationWeight
			}
		}
	}

	for _, slot := range candidate {
		if !slot.IsPreferred() {
			cost += offHoursWeight
		}
		if slot.IsEarly() {
			cost += (math.Exp(slot.EarlyHours()) - 1) * earlyClassWeight
		}
	}

	cost += instructorGapCostForCandidate(schedule, course, candidate)

	return cost
}

// instructorGapCostForCandidate computes the gap penalty the candidate would
// introduce against the course's instructors' already-placed slots.
func instructorGapCostForCandidate(schedule *domain.Schedule, course *domain.Course, candidate domain.SessionPattern) float64 {
	instructors := schedule.InstructorsFor(course)
	if len(instructors) == 0 {
		return 0
	}

	type slot struct {
		day         int
		start       domain.TimeOfDay
		end         domain.TimeOfDay
		isCandidate bool
	}

	var total float64
	for _, instructor := range instructors {
		existing := make(map[int][]slot)
		for _, sc := range schedule.Courses {
			if !sc.IsScheduled() || sc.Course == course {
				continue
			}
			if !hasInstructor(sc.Course, instructor.ID) {
				continue
			}
			for _, s := range sc.Pattern {
				dayIdx := weekdayIndex(s.Day)
				if dayIdx < 0 {
					continue
				}
				existing[dayIdx] = append(existing[dayIdx], slot{day: dayIdx, start: s.Start, end: s.End})
			}
		}

		for _, s := range candidate {
			dayIdx := weekdayIndex(s.Day)
			if dayIdx < 0 {
				continue
			}
			all := append([]slot(nil), existing[dayIdx]...)
			all = append(all, slot{day: dayIdx, start: s.Start, end: s.End, isCandidate: true})
			sort.Slice(all, func(i, j int) bool { return all[i].start < all[j].start })
			// only the pairs touching the inserted candidate slot are new;
			// gaps between two already-placed slots are not this candidate's cost.
			for i := 1; i < len(all); i++ {
				if !all[i].isCandidate && !all[i-1].isCandidate {
					continue
				}
				gap := float64(all[i].start - all[i-1].end)
				if gap > gapThresholdMinutes {
					total += (gap - gapThresholdMinutes) * gapWeight
				}
			}
		}
	}
	return total
}

func hasInstructor(c *domain.Course, id string) bool {
	for _, existing := range c.InstructorIDs {
		if existing == id {
			return true
		}
	}
	return false
}
