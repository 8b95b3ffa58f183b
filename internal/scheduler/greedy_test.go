package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/catalog"
	"github.com/russross/classroom-scheduler/internal/constraints"
	"github.com/russross/classroom-scheduler/internal/domain"
)

func twoCourseSchedule() *domain.Schedule {
	a := domain.NewCourse("A", 20, 60, nil, []domain.RoomType{domain.Lecture})
	b := domain.NewCourse("B", 25, 60, nil, []domain.RoomType{domain.Lecture})
	corr := domain.NewCorrelationMatrix([]string{"A", "B"})
	_ = corr.Set("A", "B", 3.0)
	return domain.NewSchedule([]*domain.Course{a, b}, corr, map[string]*domain.Instructor{})
}

func TestGreedySchedulesEveryFeasibleCourse(t *testing.T) {
	schedule := twoCourseSchedule()
	registry := catalog.NewRegistry()
	rng := rand.New(rand.NewSource(42))

	result := Greedy(schedule, registry, rng, nil)

	assert.Equal(t, 2, result.Scheduled)
	assert.Empty(t, result.Unscheduled)
	for _, sc := range schedule.Courses {
		assert.True(t, sc.IsScheduled())
	}
	assert.True(t, constraints.Feasible(schedule))
}

func TestGreedyOrdersByCorrelationSumDescending(t *testing.T) {
	schedule := twoCourseSchedule()
	order := orderByCorrelationSum(schedule)
	require.Len(t, order, 2)
	// both courses have identical correlation sum (symmetric pair), so the
	// deterministic tie-break by name ascending must put A first.
	assert.Equal(t, "A", schedule.Courses[order[0]].Course.Name)
}

func TestGreedyStopsBeforePlacingTheNextCourseWhenShouldStopFires(t *testing.T) {
	a := domain.NewCourse("A", 20, 60, nil, []domain.RoomType{domain.Lecture})
	b := domain.NewCourse("B", 20, 60, nil, []domain.RoomType{domain.Lecture})
	c := domain.NewCourse("C", 20, 60, nil, []domain.RoomType{domain.Lecture})
	schedule := domain.NewSchedule([]*domain.Course{a, b, c}, nil, map[string]*domain.Instructor{})
	registry := catalog.NewRegistry()
	rng := rand.New(rand.NewSource(42))

	calls := 0
	shouldStop := func() bool {
		calls++
		return calls >= 2
	}

	result := Greedy(schedule, registry, rng, shouldStop)
	assert.Less(t, result.Scheduled, 3, "stop check fired before every course could be placed")
}

func TestGreedyLeavesCourseUnscheduledWhenNoPatternFits(t *testing.T) {
	instructor := domain.NewInstructor("i1", "Prof X")
	// no availability windows at all: every candidate pattern is infeasible.
	course := domain.NewCourse("Impossible", 10, 60, []string{"i1"}, []domain.RoomType{domain.Lecture})
	schedule := domain.NewSchedule([]*domain.Course{course}, nil, map[string]*domain.Instructor{"i1": instructor})

	registry := catalog.NewRegistry()
	rng := rand.New(rand.NewSource(1))

	result := Greedy(schedule, registry, rng, nil)
	assert.Equal(t, 0, result.Scheduled)
	assert.Equal(t, []string{"Impossible"}, result.Unscheduled)
	assert.False(t, schedule.Courses[0].IsScheduled())
}
