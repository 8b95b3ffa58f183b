package allocator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/russross/classroom-scheduler/internal/domain"
)

func course(name string, cohortSize int, ranking ...domain.RoomType) *domain.Course {
	return domain.NewCourse(name, cohortSize, 60, nil, ranking)
}

func TestWorkedExampleSmallCourseGetsSmallRoom(t *testing.T) {
	rooms := []*domain.Room{
		domain.NewRoom("A", 30, domain.Lecture),
		domain.NewRoom("B", 50, domain.Lecture),
	}
	courses := []*domain.Course{
		course("c1", 25, domain.Lecture),
		course("c2", 40, domain.Lecture),
	}

	a := New(rooms, courses, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)

	assert.Equal(t, "A", assignments["c1"])
	assert.Equal(t, "B", assignments["c2"])
}

func TestWorkedExampleDisplacementSwapsRooms(t *testing.T) {
	rooms := []*domain.Room{
		domain.NewRoom("A", 30, domain.Lecture),
		domain.NewRoom("B", 50, domain.Lecture),
	}
	courses := []*domain.Course{
		course("c1", 45, domain.Lecture),
		course("c2", 20, domain.Lecture),
	}

	a := New(rooms, courses, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)

	assert.Equal(t, "B", assignments["c1"])
	assert.Equal(t, "A", assignments["c2"])
}

func TestSingleCourseTakesSmallestFittingRoomOfFirstFeasibleType(t *testing.T) {
	rooms := []*domain.Room{
		domain.NewRoom("Big", 100, domain.Lecture),
		domain.NewRoom("Small", 30, domain.Lecture),
	}
	courses := []*domain.Course{course("only", 25, domain.Lecture)}

	a := New(rooms, courses, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)
	assert.Equal(t, "Small", assignments["only"])
}

func TestCourseExceedingEveryRoomIsUnplaceable(t *testing.T) {
	rooms := []*domain.Room{domain.NewRoom("A", 10, domain.Lecture)}
	courses := []*domain.Course{course("too-big", 50, domain.Lecture)}

	a := New(rooms, courses, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)
	assert.Empty(t, assignments)

	unplaceable := a.Unplaceable()
	require.Len(t, unplaceable, 1)
	assert.Equal(t, "too-big", unplaceable[0].Name)
	assert.Equal(t, len(unplaceable[0].Ranking), unplaceable[0].ChoiceIndex)
}

// TestScenarioExhaustsBothRankedTypesWhenBetterFitsWin mirrors spec scenario
// 6: a course ranking two room types, both fully claimed by better-fitting
// competitors, ends unplaceable with choiceIndex advanced past both.
func TestScenarioExhaustsBothRankedTypesWhenBetterFitsWin(t *testing.T) {
	rooms := []*domain.Room{
		domain.NewRoom("X1", 20, domain.Lecture),
		domain.NewRoom("Y1", 20, domain.Seminar),
	}
	courses := []*domain.Course{
		course("better-x", 20, domain.Lecture, domain.Seminar),
		course("better-y", 20, domain.Seminar, domain.Lecture),
		course("squeezed", 15, domain.Lecture, domain.Seminar),
	}

	a := New(rooms, courses, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)

	assert.NotContains(t, assignments, "squeezed")
	squeezed := courses[2]
	assert.Equal(t, len(squeezed.Ranking), squeezed.ChoiceIndex)
}

func TestEmptyCourseListProducesEmptyAssignments(t *testing.T) {
	rooms := []*domain.Room{domain.NewRoom("A", 10, domain.Lecture)}
	a := New(rooms, nil, false)
	assignments, err := a.Allocate()
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestStrictModeRejectsEmptyRanking(t *testing.T) {
	rooms := []*domain.Room{domain.NewRoom("A", 10, domain.Lecture)}
	courses := []*domain.Course{course("no-pref", 5)}

	a := New(rooms, courses, true)
	_, err := a.Allocate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocateResetsStateAcrossCalls(t *testing.T) {
	rooms := []*domain.Room{domain.NewRoom("A", 10, domain.Lecture)}
	courses := []*domain.Course{course("c1", 5, domain.Lecture)}

	a := New(rooms, courses, false)
	_, err := a.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 1, courses[0].ChoiceIndex)

	_, err = a.Allocate()
	require.NoError(t, err)
	assert.Equal(t, 1, courses[0].ChoiceIndex)
}

// TestRandomizedInvariants is grounded on the pack's seeded property-test
// style: generate random room/course pools and check capacity safety,
// unique occupancy, and ranking progress hold on every trial.
func TestRandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := domain.AllRoomTypes()

	for trial := 0; trial < 200; trial++ {
		numRooms := rng.Intn(8) + 1
		numCourses := rng.Intn(12) + 1

		rooms := make([]*domain.Room, numRooms)
		roomByName := make(map[string]*domain.Room, numRooms)
		for i := range rooms {
			rt := types[rng.Intn(len(types))]
			r := domain.NewRoom(randName("room", i), rng.Intn(60)+1, rt)
			rooms[i] = r
			roomByName[r.Name] = r
		}

		courses := make([]*domain.Course, numCourses)
		for i := range courses {
			numPrefs := rng.Intn(len(types)) + 1
			ranking := make([]domain.RoomType, numPrefs)
			for j := range ranking {
				ranking[j] = types[rng.Intn(len(types))]
			}
			courses[i] = course(randName("course", i), rng.Intn(60)+1, ranking...)
		}

		a := New(rooms, courses, false)
		assignments, err := a.Allocate()
		require.NoError(t, err)

		seenRooms := make(map[string]bool, len(assignments))
		for courseName, roomName := range assignments {
			assert.False(t, seenRooms[roomName], "trial %d: room %s double-booked", trial, roomName)
			seenRooms[roomName] = true

			room := roomByName[roomName]
			var c *domain.Course
			for _, candidate := range courses {
				if candidate.Name == courseName {
					c = candidate
				}
			}
			require.NotNil(t, c)
			assert.GreaterOrEqual(t, room.Capacity, c.CohortSize, "trial %d: capacity safety violated", trial)
		}

		for _, c := range courses {
			assert.GreaterOrEqual(t, c.ChoiceIndex, 1, "trial %d: choiceIndex must advance at least once", trial)
			assert.LessOrEqual(t, c.ChoiceIndex, len(c.Ranking), "trial %d: choiceIndex must not exceed ranking length", trial)
		}
	}
}

func randName(prefix string, i int) string {
	return prefix + "-" + string(rune('A'+i%26)) + string(rune('0'+i/26))
}
