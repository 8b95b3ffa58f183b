// Package simulate generates synthetic courses, instructors, rooms, and a
// correlation matrix when a run does not supply existing data, per §4.9.
// Preference generation is a closed tagged union dispatched from a single
// function rather than a strategy interface hierarchy, per the design note
// in §9 — the teacher's search.go similarly keeps its move/acceptance
// choices as plain data switched over in one place instead of subclassing.
package simulate

import (
	"math/rand"
	"sort"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// StrategyKind names one of the five closed preference-generation variants.
type StrategyKind string

const (
	Random       StrategyKind = "Random"
	SmartRandom  StrategyKind = "SmartRandom"
	SizeBased    StrategyKind = "SizeBased"
	Satisfaction StrategyKind = "Satisfaction"
	Fixed        StrategyKind = "Fixed"
)

// Strategy carries whichever fields its Kind needs; unused fields are
// simply ignored, keeping this a single flat variant instead of five types.
type Strategy struct {
	Kind StrategyKind

	// K is the ranking length before completePreferences tops it up.
	K int

	// MedianCapacity is consulted by SmartRandom and SizeBased: the
	// configured "typical" capacity for each room type.
	MedianCapacity map[domain.RoomType]int

	// Table is consulted by Satisfaction: a per-type desirability score,
	// higher sorts earlier in the ranking.
	Table map[domain.RoomType]float64

	// List is used verbatim by Fixed, truncated to K; a shorter list is not
	// padded here.
	List []domain.RoomType
}

// satisfactionTable is the implementation-local scaling Open Question (c)
// in §9 defers to this package: a generic, type-agnostic desirability
// ordering as a fallback for courses with no configured preference.
var satisfactionTable = map[domain.RoomType]float64{
	domain.Lecture:         0.9,
	domain.Seminar:         0.85,
	domain.ComputerLab:     0.8,
	domain.Laboratory:      0.75,
	domain.ConferenceRoom:  0.7,
	domain.Workshop:        0.65,
	domain.StudioArt:       0.6,
	domain.PerformanceHall: 0.55,
	domain.Auditorium:      0.5,
	domain.Gymnasium:       0.4,
}

// Generate produces a ranking of room types for a course with the given
// cohort size, using the strategy's variant.
func Generate(cohortSize int, s Strategy, rng *rand.Rand) []domain.RoomType {
	switch s.Kind {
	case SmartRandom:
		return smartRandom(cohortSize, s, rng)
	case SizeBased:
		return sizeBased(cohortSize, s)
	case Satisfaction:
		return bySatisfaction(s)
	case Fixed:
		return fixed(s)
	default:
		return random(s, rng)
	}
}

func random(s Strategy, rng *rand.Rand) []domain.RoomType {
	all := domain.AllRoomTypes()
	shuffled := make([]domain.RoomType, len(all))
	copy(shuffled, all)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return truncate(shuffled, s.K)
}

// smartRandom biases the ranking toward room types whose median capacity is
// closest to cohortSize, then shuffles lightly within that bias by sorting
// on distance with a small random jitter.
func smartRandom(cohortSize int, s Strategy, rng *rand.Rand) []domain.RoomType {
	all := domain.AllRoomTypes()
	type scored struct {
		t     domain.RoomType
		score float64
	}
	scoredTypes := make([]scored, len(all))
	for i, t := range all {
		dist := absFloat(float64(cohortSize - medianFor(s, t)))
		scoredTypes[i] = scored{t, dist + rng.Float64()*5}
	}
	sort.SliceStable(scoredTypes, func(i, j int) bool { return scoredTypes[i].score < scoredTypes[j].score })

	out := make([]domain.RoomType, len(scoredTypes))
	for i, sc := range scoredTypes {
		out[i] = sc.t
	}
	return truncate(out, s.K)
}

func sizeBased(cohortSize int, s Strategy) []domain.RoomType {
	all := domain.AllRoomTypes()
	type scored struct {
		t     domain.RoomType
		score float64
	}
	scoredTypes := make([]scored, len(all))
	for i, t := range all {
		scoredTypes[i] = scored{t, absFloat(float64(cohortSize - medianFor(s, t)))}
	}
	sort.SliceStable(scoredTypes, func(i, j int) bool {
		if scoredTypes[i].score != scoredTypes[j].score {
			return scoredTypes[i].score < scoredTypes[j].score
		}
		return scoredTypes[i].t < scoredTypes[j].t
	})

	out := make([]domain.RoomType, len(scoredTypes))
	for i, sc := range scoredTypes {
		out[i] = sc.t
	}
	return truncate(out, s.K)
}

func bySatisfaction(s Strategy) []domain.RoomType {
	table := s.Table
	if table == nil {
		table = satisfactionTable
	}
	all := domain.AllRoomTypes()
	sorted := make([]domain.RoomType, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := table[sorted[i]], table[sorted[j]]
		if si != sj {
			return si > sj
		}
		return sorted[i] < sorted[j]
	})
	return truncate(sorted, s.K)
}

func fixed(s Strategy) []domain.RoomType {
	return truncate(s.List, s.K)
}

func medianFor(s Strategy, t domain.RoomType) int {
	if s.MedianCapacity != nil {
		if v, ok := s.MedianCapacity[t]; ok {
			return v
		}
	}
	return defaultMedianCapacity[t]
}

// defaultMedianCapacity gives every room type a plausible typical capacity
// so SmartRandom/SizeBased behave sensibly even with no caller-supplied
// table.
var defaultMedianCapacity = map[domain.RoomType]int{
	domain.Lecture:         80,
	domain.Seminar:         25,
	domain.Laboratory:      24,
	domain.ComputerLab:     30,
	domain.StudioArt:       20,
	domain.PerformanceHall: 200,
	domain.Auditorium:      300,
	domain.Workshop:        18,
	domain.ConferenceRoom:  12,
	domain.Gymnasium:       150,
}

func truncate(list []domain.RoomType, k int) []domain.RoomType {
	if k <= 0 || k >= len(list) {
		return append([]domain.RoomType(nil), list...)
	}
	return append([]domain.RoomType(nil), list[:k]...)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// CompletePreferences appends the remaining room types, in
// domain.AllRoomTypes order, skipping those already present, until the
// ranking reaches numPreferences.
func CompletePreferences(ranking []domain.RoomType, numPreferences int) []domain.RoomType {
	if len(ranking) >= numPreferences {
		return ranking
	}
	present := make(map[domain.RoomType]bool, len(ranking))
	for _, t := range ranking {
		present[t] = true
	}
	out := append([]domain.RoomType(nil), ranking...)
	for _, t := range domain.AllRoomTypes() {
		if len(out) >= numPreferences {
			break
		}
		if present[t] {
			continue
		}
		out = append(out, t)
		present[t] = true
	}
	return out
}
