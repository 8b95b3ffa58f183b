package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// JSONLoader reads courses, instructors, and the correlation matrix from
// JSON documents whose field names mirror §3, grounded on the teacher's
// json.go decode-into-intermediate-shape-then-validate approach.
type JSONLoader struct {
	OpenCourses     func() (io.ReadCloser, error)
	OpenInstructors func() (io.ReadCloser, error)
	OpenCorrelation func() (io.ReadCloser, error) // nil or non-existent is valid: yields a zero matrix
}

type jsonCourse struct {
	Name            string   `json:"name"`
	CohortSize      int      `json:"cohortSize"`
	DurationMinutes int      `json:"durationMinutes"`
	InstructorIDs   []string `json:"instructorIds"`
	Ranking         []string `json:"ranking"`
}

type jsonInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type jsonInstructor struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Availability map[string][]jsonInterval `json:"availability"`
}

type jsonCorrelationEntry struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Value float64 `json:"value"`
}

// LoadCourses decodes the course JSON document into domain courses.
func (l *JSONLoader) LoadCourses() ([]*domain.Course, error) {
	f, err := l.OpenCourses()
	if err != nil {
		return nil, fmt.Errorf("%w: opening course JSON: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	var raw []jsonCourse
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding course JSON: %v", domain.ErrInvalidInput, err)
	}

	courses := make([]*domain.Course, 0, len(raw))
	for _, rc := range raw {
		if rc.Name == "" {
			return nil, fmt.Errorf("%w: course with empty name", domain.ErrInvalidInput)
		}
		if rc.CohortSize <= 0 {
			return nil, fmt.Errorf("%w: course %q has non-positive cohort size %d", domain.ErrInvalidInput, rc.Name, rc.CohortSize)
		}

		ranking := make([]domain.RoomType, 0, len(rc.Ranking))
		for _, name := range rc.Ranking {
			rt, ok := domain.ParseRoomType(name)
			if !ok {
				return nil, fmt.Errorf("%w: course %q has unrecognized room type %q in ranking", domain.ErrInvalidInput, rc.Name, name)
			}
			ranking = append(ranking, rt)
		}

		courses = append(courses, domain.NewCourse(rc.Name, rc.CohortSize, rc.DurationMinutes, rc.InstructorIDs, ranking))
	}
	return courses, nil
}

// LoadInstructors decodes the instructor JSON document into domain
// instructors, parsing "HH:MM" availability bounds into TimeOfDay.
func (l *JSONLoader) LoadInstructors() ([]*domain.Instructor, error) {
	f, err := l.OpenInstructors()
	if err != nil {
		return nil, fmt.Errorf("%w: opening instructor JSON: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	var raw []jsonInstructor
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding instructor JSON: %v", domain.ErrInvalidInput, err)
	}

	instructors := make([]*domain.Instructor, 0, len(raw))
	for _, ri := range raw {
		if ri.ID == "" {
			return nil, fmt.Errorf("%w: instructor with empty id", domain.ErrInvalidInput)
		}
		instructor := domain.NewInstructor(ri.ID, ri.Name)
		for dayName, windows := range ri.Availability {
			day, err := parseWeekday(dayName)
			if err != nil {
				return nil, fmt.Errorf("%w: instructor %q: %v", domain.ErrInvalidInput, ri.ID, err)
			}
			for _, w := range windows {
				start, err := parseClock(w.Start)
				if err != nil {
					return nil, fmt.Errorf("%w: instructor %q: %v", domain.ErrInvalidInput, ri.ID, err)
				}
				end, err := parseClock(w.End)
				if err != nil {
					return nil, fmt.Errorf("%w: instructor %q: %v", domain.ErrInvalidInput, ri.ID, err)
				}
				instructor.Availability[day] = append(instructor.Availability[day], domain.Interval{Start: start, End: end})
			}
		}
		instructors = append(instructors, instructor)
	}
	return instructors, nil
}

// LoadCorrelation decodes the sparse correlation JSON document into a dense
// matrix over courseNames. A nil/unset OpenCorrelation or one that errors as
// "does not exist" yields a zero matrix of the right dimension, per §6.
func (l *JSONLoader) LoadCorrelation(courseNames []string) (*domain.CorrelationMatrix, error) {
	matrix := domain.NewCorrelationMatrix(courseNames)
	if l.OpenCorrelation == nil {
		return matrix, nil
	}

	f, err := l.OpenCorrelation()
	if err != nil {
		return matrix, nil
	}
	defer f.Close()

	var raw []jsonCorrelationEntry
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding correlation JSON: %v", domain.ErrInvalidInput, err)
	}

	for _, entry := range raw {
		if err := matrix.Set(entry.A, entry.B, entry.Value); err != nil {
			return nil, err
		}
	}
	return matrix, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch name {
	case "Monday":
		return time.Monday, nil
	case "Tuesday":
		return time.Tuesday, nil
	case "Wednesday":
		return time.Wednesday, nil
	case "Thursday":
		return time.Thursday, nil
	case "Friday":
		return time.Friday, nil
	default:
		return 0, fmt.Errorf("unrecognized weekday %q", name)
	}
}

func parseClock(text string) (domain.TimeOfDay, error) {
	t, err := time.Parse("15:04", text)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", text, err)
	}
	return domain.NewTimeOfDay(t.Hour(), t.Minute()), nil
}
