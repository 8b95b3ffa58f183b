package domain

// Course is identified by name; two courses are equal iff their names match.
type Course struct {
	Name             string
	CohortSize       int
	DurationMinutes  int
	InstructorIDs    []string
	Ranking          []RoomType
	ChoiceIndex      int
	AssignedRoomName string

	Pattern SessionPattern
}

// NewCourse builds a course, snapping durationMinutes down to the nearest
// 30-minute multiple per the §3 invariant.
func NewCourse(name string, cohortSize, durationMinutes int, instructorIDs []string, ranking []RoomType) *Course {
	return &Course{
		Name:            name,
		CohortSize:      cohortSize,
		DurationMinutes: SnapDuration(durationMinutes),
		InstructorIDs:   instructorIDs,
		Ranking:         ranking,
	}
}

// Equal compares two courses by name, their only identity.
func (c *Course) Equal(other *Course) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name
}

// SessionsPerWeek is a convenience wrapper over the package-level function.
func (c *Course) SessionsPerWeek() int {
	return SessionsPerWeek(c.DurationMinutes)
}

// ResetAllocationState clears the allocator-owned fields; called at the
// start of every Allocate() call so a course's ranking progress never
// leaks across runs.
func (c *Course) ResetAllocationState() {
	c.ChoiceIndex = 0
	c.AssignedRoomName = ""
}

// CurrentPreference returns the room type the course should propose to next,
// or false if the ranking is exhausted.
func (c *Course) CurrentPreference() (RoomType, bool) {
	if c.ChoiceIndex >= len(c.Ranking) {
		return 0, false
	}
	return c.Ranking[c.ChoiceIndex], true
}

// SharesInstructor reports whether c and other have at least one instructor
// id in common.
func (c *Course) SharesInstructor(other *Course) bool {
	for _, a := range c.InstructorIDs {
		for _, b := range other.InstructorIDs {
			if a == b {
				return true
			}
		}
	}
	return false
}
