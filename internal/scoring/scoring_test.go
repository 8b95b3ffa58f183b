package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/domain"
)

func slot(day time.Weekday, startHour, endHour int) domain.TimeSlot {
	return domain.TimeSlot{Day: day, Start: domain.NewTimeOfDay(startHour, 0), End: domain.NewTimeOfDay(endHour, 0)}
}

func TestScoreIsZeroWhenNoCoursesAreScheduled(t *testing.T) {
	courses := []*domain.Course{domain.NewCourse("a", 10, 60, nil, nil)}
	sched := domain.NewSchedule(courses, nil, nil)

	total, breakdown := Score(sched)
	assert.Zero(t, total)
	assert.Zero(t, breakdown[Correlation])
	assert.Zero(t, breakdown[InstructorGap])
	assert.Zero(t, breakdown[OffHours])
	assert.Zero(t, breakdown[EarlyClass])
}

func TestCorrelationPenaltyAppliesOnlyAtOrAboveSoftThreshold(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", domain.SoftCorrelationThreshold-0.01))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[Correlation])
}

func TestCorrelationPenaltyScalesWithSquaredCorrelation(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", 1.0))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	_, breakdown := Score(sched)
	assert.InDelta(t, 1.0*1.0*100000.0, breakdown[Correlation], 0.001)
}

func TestCorrelationPenaltyStillAppliesAtHardThreshold(t *testing.T) {
	// Open Question (b): hard-threshold overlaps also count in the soft sum.
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", domain.HardCorrelationThreshold))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	_, breakdown := Score(sched)
	assert.Greater(t, breakdown[Correlation], 0.0)
}

func TestCorrelationPenaltyIgnoresNonOverlappingPairs(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", 5.0))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 11, 12)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[Correlation])
}

func TestInstructorGapPenaltyAppliesOnlyPastThreshold(t *testing.T) {
	in := domain.NewInstructor("i1", "Jones")
	a := domain.NewCourse("a", 10, 60, []string{"i1"}, nil)
	b := domain.NewCourse("b", 10, 60, []string{"i1"}, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b}, nil, map[string]*domain.Instructor{"i1": in})

	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 11, 12)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[InstructorGap], "a 60 minute gap sits at the threshold, not past it")
}

func TestInstructorGapPenaltyIsPositiveBeyondThreshold(t *testing.T) {
	in := domain.NewInstructor("i1", "Jones")
	a := domain.NewCourse("a", 10, 60, []string{"i1"}, nil)
	b := domain.NewCourse("b", 10, 60, []string{"i1"}, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b}, nil, map[string]*domain.Instructor{"i1": in})

	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 12, 13)}

	_, breakdown := Score(sched)
	assert.Greater(t, breakdown[InstructorGap], 0.0)
}

func TestInstructorGapPenaltyIgnoresGapsAcrossDifferentDays(t *testing.T) {
	in := domain.NewInstructor("i1", "Jones")
	a := domain.NewCourse("a", 10, 60, []string{"i1"}, nil)
	b := domain.NewCourse("b", 10, 60, []string{"i1"}, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b}, nil, map[string]*domain.Instructor{"i1": in})

	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Tuesday, 18, 19)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[InstructorGap])
}

func TestOffHoursPenaltyAppliesOutsideNineToFive(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	sched := domain.NewSchedule([]*domain.Course{a}, nil, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 18, 19)}

	_, breakdown := Score(sched)
	assert.Equal(t, 50.0, breakdown[OffHours])
}

func TestOffHoursPenaltyIsZeroWithinPreferredWindow(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	sched := domain.NewSchedule([]*domain.Course{a}, nil, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 10, 11)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[OffHours])
}

func TestEarlyClassPenaltyUsesExponentialFormula(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	sched := domain.NewSchedule([]*domain.Course{a}, nil, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 8, 9)}

	_, breakdown := Score(sched)
	expected := (math.Exp(2.0) - 1) * 5.0 * 20.0
	assert.InDelta(t, expected, breakdown[EarlyClass], 0.001)
}

func TestEarlyClassPenaltyIsZeroAtOrAfterTenAM(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	sched := domain.NewSchedule([]*domain.Course{a}, nil, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 10, 11)}

	_, breakdown := Score(sched)
	assert.Zero(t, breakdown[EarlyClass])
}

func TestBreakdownTotalSumsEveryComponent(t *testing.T) {
	b := Breakdown{Correlation: 10, InstructorGap: 5, OffHours: 2, EarlyClass: 1}
	assert.Equal(t, 18.0, b.Total())
}

func TestCandidateCostMatchesFullScoreDeltaForOffHoursAndEarlyClass(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b}, nil, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	candidate := domain.SessionPattern{slot(time.Monday, 18, 19)}
	cost := CandidateCost(sched, 1, candidate)
	assert.Equal(t, 50.0, cost)

	early := domain.SessionPattern{slot(time.Monday, 8, 9)}
	assert.InDelta(t, 50.0+(math.Exp(2.0)-1)*5.0*20.0, CandidateCost(sched, 1, early), 0.001)
}

func TestCandidateCostIncludesCorrelationAgainstAlreadyPlacedCourses(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", 1.0))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	// the 09:00 start also carries the early-class term for one early hour.
	overlapping := domain.SessionPattern{slot(time.Monday, 9, 10)}
	assert.InDelta(t, 100000.0+(math.Exp(1.0)-1)*5.0*20.0, CandidateCost(sched, 1, overlapping), 0.001)

	clear := domain.SessionPattern{slot(time.Monday, 11, 12)}
	assert.Zero(t, CandidateCost(sched, 1, clear))
}

func TestCandidateCostIncludesInstructorGapAgainstSharedInstructorSlots(t *testing.T) {
	in := domain.NewInstructor("i1", "Jones")
	a := domain.NewCourse("a", 10, 60, []string{"i1"}, nil)
	b := domain.NewCourse("b", 10, 60, []string{"i1"}, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b}, nil, map[string]*domain.Instructor{"i1": in})
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}

	far := domain.SessionPattern{slot(time.Monday, 12, 13)}
	assert.Greater(t, CandidateCost(sched, 1, far), 0.0)

	adjacent := domain.SessionPattern{slot(time.Monday, 11, 12)}
	assert.Zero(t, CandidateCost(sched, 1, adjacent))
}

func TestCandidateCostInstructorGapIgnoresUnrelatedExistingGaps(t *testing.T) {
	in := domain.NewInstructor("i1", "Jones")
	a := domain.NewCourse("a", 10, 60, []string{"i1"}, nil)
	b := domain.NewCourse("b", 10, 60, []string{"i1"}, nil)
	c := domain.NewCourse("c", 10, 60, []string{"i1"}, nil)
	sched := domain.NewSchedule([]*domain.Course{a, b, c}, nil, map[string]*domain.Instructor{"i1": in})

	// instructor already has a 9-10 and a 13-14 slot: a 180-minute gap
	// between two already-placed courses that the candidate has nothing to
	// do with.
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 9, 10)}
	sched.Courses[1].Pattern = domain.SessionPattern{slot(time.Monday, 13, 14)}

	// candidate at 16-17 only introduces one new pair: 13-14 -> 16-17 (a
	// 120-minute gap, 60 minutes over threshold).
	candidate := domain.SessionPattern{slot(time.Monday, 16, 17)}
	cost := CandidateCost(sched, 2, candidate)

	expected := (120.0 - gapThresholdMinutes) * gapWeight
	assert.InDelta(t, expected, cost, 0.001, "must not re-add the unrelated 9-10 -> 13-14 gap")
}

func TestUnscheduledCoursesDoNotContributeToAnyComponent(t *testing.T) {
	a := domain.NewCourse("a", 10, 60, nil, nil)
	b := domain.NewCourse("b", 10, 60, nil, nil)
	corr := domain.NewCorrelationMatrix([]string{"a", "b"})
	require.NoError(t, corr.Set("a", "b", 5.0))

	sched := domain.NewSchedule([]*domain.Course{a, b}, corr, nil)
	sched.Courses[0].Pattern = domain.SessionPattern{slot(time.Monday, 18, 19)}
	// b is left unscheduled.

	total, _ := Score(sched)
	assert.Equal(t, 50.0, total, "only the off-hours penalty from the one scheduled course should count")
}
