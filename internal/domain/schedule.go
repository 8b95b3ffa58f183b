package domain

// ScheduledCourse wraps a course with its (possibly empty) session pattern
// and the concrete room it has been assigned, if any.
type ScheduledCourse struct {
	Course   *Course
	Pattern  SessionPattern
	RoomName string
}

// IsScheduled reports whether this course has a non-empty session pattern.
func (s *ScheduledCourse) IsScheduled() bool {
	return len(s.Pattern) > 0
}

// Clone returns a copy that shares the underlying Course pointer (identity,
// not state, is what distinguishes courses) but owns an independent pattern
// slice.
func (s ScheduledCourse) Clone() ScheduledCourse {
	return ScheduledCourse{
		Course:   s.Course,
		Pattern:  s.Pattern.Clone(),
		RoomName: s.RoomName,
	}
}

// Schedule is the ordered working state of a run: one ScheduledCourse per
// input course, in the input order, plus the read-only references shared by
// every copy of the schedule.
type Schedule struct {
	Courses     []ScheduledCourse
	Correlation *CorrelationMatrix
	Instructors map[string]*Instructor

	// CachedScore is set by the scoring package after a full Score() call;
	// it is not kept in sync automatically when Courses is mutated.
	CachedScore float64
}

// NewSchedule builds an empty schedule over the given courses.
func NewSchedule(courses []*Course, correlation *CorrelationMatrix, instructors map[string]*Instructor) *Schedule {
	scheduled := make([]ScheduledCourse, len(courses))
	for i, c := range courses {
		scheduled[i] = ScheduledCourse{Course: c}
	}
	return &Schedule{
		Courses:     scheduled,
		Correlation: correlation,
		Instructors: instructors,
	}
}

// Clone performs the "deep copy" the annealing scheduler needs to keep a
// best-seen schedule: the slice of ScheduledCourse is cloned, but the
// correlation matrix and instructor map are immutable and shared.
func (s *Schedule) Clone() *Schedule {
	courses := make([]ScheduledCourse, len(s.Courses))
	for i, sc := range s.Courses {
		courses[i] = sc.Clone()
	}
	return &Schedule{
		Courses:     courses,
		Correlation: s.Correlation,
		Instructors: s.Instructors,
		CachedScore: s.CachedScore,
	}
}

// IndexOf returns the position of the course with the given name, or -1.
func (s *Schedule) IndexOf(name string) int {
	for i, sc := range s.Courses {
		if sc.Course.Name == name {
			return i
		}
	}
	return -1
}

// InstructorFor resolves the first instructor assigned to a course, or nil
// if the course has no instructors or none resolve in the schedule's map.
func (s *Schedule) InstructorFor(c *Course) *Instructor {
	for _, id := range c.InstructorIDs {
		if in, ok := s.Instructors[id]; ok {
			return in
		}
	}
	return nil
}

// InstructorsFor resolves every instructor assigned to a course.
func (s *Schedule) InstructorsFor(c *Course) []*Instructor {
	var out []*Instructor
	for _, id := range c.InstructorIDs {
		if in, ok := s.Instructors[id]; ok {
			out = append(out, in)
		}
	}
	return out
}
