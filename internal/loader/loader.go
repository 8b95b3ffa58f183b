// Package loader implements the concrete DataLoader backends named in §6:
// a semicolon-separated CSV room loader and a JSON loader for courses,
// instructors, and the correlation matrix. Grounded on the teacher's
// parse.go (line-oriented CSV scanning, collecting errors with file/line
// context) and json.go (decode into an intermediate map shape, then
// cross-check against already-loaded entities).
package loader

import "github.com/russross/classroom-scheduler/internal/domain"

// DataLoader is the abstract collaborator the orchestrator's input stage
// depends on. CSVRoomLoader provides LoadRooms and JSONLoader provides the
// other three methods; neither type satisfies the whole interface alone.
type DataLoader interface {
	LoadRooms() ([]*domain.Room, error)
	LoadCourses() ([]*domain.Course, error)
	LoadInstructors() ([]*domain.Instructor, error)
	LoadCorrelation(courseNames []string) (*domain.CorrelationMatrix, error)
}
