package scheduler

import (
	"math"
	"math/rand"

	"github.com/russross/classroom-scheduler/internal/catalog"
	"github.com/russross/classroom-scheduler/internal/constraints"
	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/scoring"
)

// AnnealingParams tunes the local search, defaults per §4.6.
type AnnealingParams struct {
	T0       float64
	Cooling  float64
	MaxIter  int
	IterPerT int
	SwapProb float64
}

// DefaultAnnealingParams returns the spec's defaults.
func DefaultAnnealingParams() AnnealingParams {
	return AnnealingParams{T0: 1000, Cooling: 0.995, MaxIter: 50000, IterPerT: 100, SwapProb: 0.7}
}

// AnnealingResult reports search telemetry for the orchestrator.
type AnnealingResult struct {
	Accepted   int
	Rejected   int
	Iterations int
	BestScore  float64
}

// Anneal runs simulated annealing over schedule's currently-scheduled
// courses, returning the best schedule seen (a deep copy distinct from the
// input) and a telemetry summary. schedule is consumed as the starting
// "current" state and mutated in place during the search; callers that need
// the original untouched should clone before calling.
//
// shouldStop, if non-nil, is checked once per temperature step so a caller
// can interrupt between iterations per §5's cancellation contract; it is
// never checked mid-iteration.
func Anneal(schedule *domain.Schedule, registry *catalog.Registry, params AnnealingParams, rng *rand.Rand, shouldStop func() bool) (*domain.Schedule, AnnealingResult) {
	current := schedule
	currentScore, _ := scoring.Score(current)

	best := current.Clone()
	best.CachedScore = currentScore
	bestScore := currentScore

	result := AnnealingResult{BestScore: bestScore}

	movable := scheduledIndices(current)
	if len(movable) < 1 {
		return best, result
	}

	t := params.T0
	iter := 0
	for iter < params.MaxIter && t > 0.01 {
		for step := 0; step < params.IterPerT && iter < params.MaxIter; step++ {
			iter++

			undo, ok := applyMove(current, registry, movable, params.SwapProb, rng)
			if !ok {
				continue
			}

			newScore, _ := scoring.Score(current)
			delta := newScore - currentScore

			accept := delta < 0
			if !accept && t > 0 {
				accept = rng.Float64() < math.Exp(-delta/t)
			}

			if accept {
				currentScore = newScore
				result.Accepted++
				if currentScore < bestScore {
					bestScore = currentScore
					best = current.Clone()
					best.CachedScore = bestScore
				}
			} else {
				undo()
				result.Rejected++
			}
		}
		t *= params.Cooling
		if shouldStop != nil && shouldStop() {
			break
		}
	}

	result.Iterations = iter
	result.BestScore = bestScore
	return best, result
}

// scheduledIndices returns the indices of courses that currently have a
// non-empty pattern, i.e. those the greedy constructor managed to place.
func scheduledIndices(schedule *domain.Schedule) []int {
	var out []int
	for i := range schedule.Courses {
		if schedule.Courses[i].IsScheduled() {
			out = append(out, i)
		}
	}
	return out
}

// applyMove performs one tentative swap or relocate, returning an undo
// closure and true if the move was structurally applicable and feasible. A
// move that cannot find a feasible form (relocate exhausts its attempts, or
// swap would violate a hard constraint) returns ok=false with nothing
// applied.
func applyMove(schedule *domain.Schedule, registry *catalog.Registry, movable []int, swapProb float64, rng *rand.Rand) (func(), bool) {
	if len(movable) >= 2 && rng.Float64() < swapProb {
		return applySwap(schedule, movable, rng)
	}
	return applyRelocate(schedule, registry, movable, rng)
}

func applySwap(schedule *domain.Schedule, movable []int, rng *rand.Rand) (func(), bool) {
	i := movable[rng.Intn(len(movable))]
	j := movable[rng.Intn(len(movable))]
	for j == i {
		j = movable[rng.Intn(len(movable))]
	}

	patternI := schedule.Courses[i].Pattern
	patternJ := schedule.Courses[j].Pattern

	schedule.Courses[i].Pattern = patternJ
	schedule.Courses[j].Pattern = patternI

	if constraints.CandidateViolates(schedule, i, schedule.Courses[i].Pattern) ||
		constraints.CandidateViolates(schedule, j, schedule.Courses[j].Pattern) {
		schedule.Courses[i].Pattern = patternI
		schedule.Courses[j].Pattern = patternJ
		return nil, false
	}

	undo := func() {
		schedule.Courses[i].Pattern = patternI
		schedule.Courses[j].Pattern = patternJ
	}
	return undo, true
}

func applyRelocate(schedule *domain.Schedule, registry *catalog.Registry, movable []int, rng *rand.Rand) (func(), bool) {
	idx := movable[rng.Intn(len(movable))]
	course := schedule.Courses[idx].Course
	cat := registry.For(course.DurationMinutes)
	original := schedule.Courses[idx].Pattern

	for attempt := 0; attempt < maxRelocateAttempts; attempt++ {
		candidates := cat.Sample(1, rng)
		if len(candidates) == 0 {
			return nil, false
		}
		candidate := candidates[0]

		schedule.Courses[idx].Pattern = candidate
		if constraints.CandidateViolates(schedule, idx, candidate) {
			schedule.Courses[idx].Pattern = original
			continue
		}

		undo := func() {
			schedule.Courses[idx].Pattern = original
		}
		return undo, true
	}

	schedule.Courses[idx].Pattern = original
	return nil, false
}
