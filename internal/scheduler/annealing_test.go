package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/catalog"
	"github.com/russross/classroom-scheduler/internal/constraints"
	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/scoring"
)

func greedilyScheduled(t *testing.T) (*domain.Schedule, *catalog.Registry) {
	t.Helper()
	a := domain.NewCourse("A", 20, 60, nil, []domain.RoomType{domain.Lecture})
	b := domain.NewCourse("B", 25, 60, nil, []domain.RoomType{domain.Lecture})
	c := domain.NewCourse("C", 30, 60, nil, []domain.RoomType{domain.Lecture})
	corr := domain.NewCorrelationMatrix([]string{"A", "B", "C"})
	require.NoError(t, corr.Set("A", "B", 1.0))
	require.NoError(t, corr.Set("B", "C", 0.8))

	schedule := domain.NewSchedule([]*domain.Course{a, b, c}, corr, map[string]*domain.Instructor{})
	registry := catalog.NewRegistry()
	Greedy(schedule, registry, rand.New(rand.NewSource(7)), nil)
	return schedule, registry
}

func TestAnnealNeverReturnsWorseThanGreedyStart(t *testing.T) {
	schedule, registry := greedilyScheduled(t)
	startScore, _ := scoring.Score(schedule)

	params := DefaultAnnealingParams()
	params.MaxIter = 2000
	params.IterPerT = 50

	best, result := Anneal(schedule, registry, params, rand.New(rand.NewSource(99)), nil)

	assert.LessOrEqual(t, result.BestScore, startScore)
	finalScore, _ := scoring.Score(best)
	assert.InDelta(t, result.BestScore, finalScore, 1e-9)
	assert.True(t, constraints.Feasible(best))
}

func TestAnnealStopsEarlyWhenShouldStopFires(t *testing.T) {
	schedule, registry := greedilyScheduled(t)
	params := DefaultAnnealingParams()
	params.IterPerT = 10

	calls := 0
	shouldStop := func() bool {
		calls++
		return calls >= 2
	}

	_, result := Anneal(schedule, registry, params, rand.New(rand.NewSource(3)), shouldStop)
	assert.Less(t, result.Iterations, params.MaxIter)
}

func TestAnnealOnSingleCourseOnlyRelocates(t *testing.T) {
	a := domain.NewCourse("Solo", 10, 60, nil, []domain.RoomType{domain.Lecture})
	schedule := domain.NewSchedule([]*domain.Course{a}, nil, map[string]*domain.Instructor{})
	registry := catalog.NewRegistry()
	Greedy(schedule, registry, rand.New(rand.NewSource(1)), nil)

	params := DefaultAnnealingParams()
	params.MaxIter = 200
	params.IterPerT = 20

	best, _ := Anneal(schedule, registry, params, rand.New(rand.NewSource(1)), nil)
	assert.True(t, best.Courses[0].IsScheduled())
}
