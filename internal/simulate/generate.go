package simulate

import (
	"fmt"
	"math/rand"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// CourseParams configures synthetic course generation per the §6 contract.
type CourseParams struct {
	NumCourses          int
	MinSize             int
	MaxSize             int
	ChangeSize          int
	NumPreferences      int
	CompletePreferences bool
	Strategy            Strategy
}

// GenerateCourses builds NumCourses synthetic courses. 80-90% (a single
// uniform draw per call, so every course in the run shares the same split)
// get a cohort size in [MinSize, ChangeSize]; the rest in [ChangeSize,
// MaxSize]. Both ranges are sampled uniformly. Each course's ranking comes
// from Strategy, optionally topped up by CompletePreferences.
func GenerateCourses(p CourseParams, rng *rand.Rand) []*domain.Course {
	lowFraction := 0.80 + rng.Float64()*0.10
	lowCount := int(float64(p.NumCourses) * lowFraction)

	courses := make([]*domain.Course, p.NumCourses)
	for i := 0; i < p.NumCourses; i++ {
		var cohortSize int
		if i < lowCount {
			cohortSize = uniformInt(rng, p.MinSize, p.ChangeSize)
		} else {
			cohortSize = uniformInt(rng, p.ChangeSize, p.MaxSize)
		}

		ranking := Generate(cohortSize, p.Strategy, rng)
		if p.CompletePreferences {
			ranking = CompletePreferences(ranking, p.NumPreferences)
		}

		duration := []int{60, 90, 120, 180, 200}[rng.Intn(5)]
		courses[i] = domain.NewCourse(fmt.Sprintf("Course-%03d", i+1), cohortSize, duration, nil, ranking)
	}
	return courses
}

// RoomParams configures synthetic room generation: one count per room type.
type RoomParams struct {
	PerType map[domain.RoomType]int
}

// GenerateRooms builds rooms of every configured type with capacities drawn
// around that type's default median.
func GenerateRooms(p RoomParams, rng *rand.Rand) []*domain.Room {
	var rooms []*domain.Room
	for _, t := range domain.AllRoomTypes() {
		count := p.PerType[t]
		median := defaultMedianCapacity[t]
		for i := 0; i < count; i++ {
			jitter := uniformInt(rng, -median/4, median/4)
			capacity := median + jitter
			if capacity < 1 {
				capacity = 1
			}
			rooms = append(rooms, domain.NewRoom(fmt.Sprintf("%s-%02d", t.String(), i+1), capacity, t))
		}
	}
	return rooms
}

// InstructorParams configures synthetic instructor generation.
type InstructorParams struct {
	NumInstructors int
}

// GenerateInstructors builds instructors available every weekday from 08:00
// to 20:00, a permissive default a loader-backed run would override with
// real availability data.
func GenerateInstructors(p InstructorParams) []*domain.Instructor {
	instructors := make([]*domain.Instructor, p.NumInstructors)
	for i := range instructors {
		instructor := domain.NewInstructor(fmt.Sprintf("instructor-%03d", i+1), fmt.Sprintf("Instructor %d", i+1))
		for _, day := range domain.Weekdays {
			instructor.Availability[day] = []domain.Interval{
				{Start: domain.NewTimeOfDay(8, 0), End: domain.NewTimeOfDay(20, 0)},
			}
		}
		instructors[i] = instructor
	}
	return instructors
}

// GenerateCorrelation builds a sparse correlation matrix: each pair gets a
// nonzero value with probability density, drawn uniformly from [0, 3), so
// about a sixth of those values fall below the soft threshold, half are soft
// and a third are hard.
func GenerateCorrelation(courseNames []string, density float64, rng *rand.Rand) *domain.CorrelationMatrix {
	matrix := domain.NewCorrelationMatrix(courseNames)
	for i := 0; i < len(courseNames); i++ {
		for j := i + 1; j < len(courseNames); j++ {
			if rng.Float64() >= density {
				continue
			}
			value := rng.Float64() * 3.0
			_ = matrix.Set(courseNames[i], courseNames[j], value)
		}
	}
	return matrix
}

func uniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
