// Package scheduler builds and improves a Schedule's time assignment:
// greedy.go constructs an initial placement, annealing.go locally improves
// it. Grounded on russross/schedule's search.go exhaustive/greedy course
// ordering and on luccasniccolas177-timetabling-udp's simulated-annealing
// loop shape (temperature schedule, accept/reject, best-seen tracking).
package scheduler

import (
	"math/rand"
	"sort"

	"github.com/russross/classroom-scheduler/internal/catalog"
	"github.com/russross/classroom-scheduler/internal/constraints"
	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/scoring"
)

// maxCandidateSample caps how many catalog patterns a single placement
// decision considers, per §4.5b.
const maxCandidateSample = 100

// maxRelocateAttempts bounds how many random patterns a relocate move tries
// before giving up on finding a feasible one, per §4.6 step 1.
const maxRelocateAttempts = 20

// GreedyResult reports what the constructor did, for orchestrator telemetry.
type GreedyResult struct {
	Scheduled   int
	Unscheduled []string
}

// Greedy constructs an initial schedule by placing courses in descending
// order of total correlation, each into the catalog candidate that adds the
// least partial cost against what is already placed. It never calls the
// room allocator.
//
// shouldStop, if non-nil, is checked once per course placement so a caller
// can interrupt between courses per §5's cancellation contract; it is never
// checked mid-placement.
func Greedy(schedule *domain.Schedule, registry *catalog.Registry, rng *rand.Rand, shouldStop func() bool) GreedyResult {
	order := orderByCorrelationSum(schedule)

	result := GreedyResult{}
	for _, idx := range order {
		if shouldStop != nil && shouldStop() {
			break
		}

		course := schedule.Courses[idx].Course
		cat := registry.For(course.DurationMinutes)
		candidates := cat.Sample(maxCandidateSample, rng)

		best, _, found := bestCandidate(schedule, idx, candidates)
		if !found {
			result.Unscheduled = append(result.Unscheduled, course.Name)
			continue
		}
		schedule.Courses[idx].Pattern = best
		result.Scheduled++
	}
	return result
}

// orderByCorrelationSum returns course indices sorted descending by total
// correlation against every other course, course name ascending to break
// ties, per §4.5 step 1.
func orderByCorrelationSum(schedule *domain.Schedule) []int {
	n := len(schedule.Courses)
	sums := make([]float64, n)
	for i := range schedule.Courses {
		var sum float64
		if schedule.Correlation != nil {
			a := schedule.Courses[i].Course.Name
			for j := range schedule.Courses {
				if i == j {
					continue
				}
				sum += schedule.Correlation.Get(a, schedule.Courses[j].Course.Name)
			}
		}
		sums[i] = sum
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		oi, oj := order[i], order[j]
		if sums[oi] != sums[oj] {
			return sums[oi] > sums[oj]
		}
		return schedule.Courses[oi].Course.Name < schedule.Courses[oj].Course.Name
	})
	return order
}

// bestCandidate finds the feasible pattern with the smallest partial cost.
func bestCandidate(schedule *domain.Schedule, courseIdx int, candidates []domain.SessionPattern) (domain.SessionPattern, float64, bool) {
	var best domain.SessionPattern
	bestCost := 0.0
	found := false

	for _, candidate := range candidates {
		if constraints.CandidateViolates(schedule, courseIdx, candidate) {
			continue
		}
		cost := scoring.CandidateCost(schedule, courseIdx, candidate)
		if !found || cost < bestCost {
			best = candidate
			bestCost = cost
			found = true
		}
	}
	return best, bestCost, found
}
