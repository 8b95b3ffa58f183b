// Package orchestrator wires the catalog, scoring, constraints, greedy and
// annealing schedulers, and the room allocator into a single serialized
// "run", publishing results behind one status lock. Grounded on the
// teacher's cli.go/search.go orchestration of a run (global flags driving a
// single search loop, publishing a best-seen schedule) generalized into an
// explicit config/result pair and a reusable Orchestrator type.
package orchestrator

import (
	"time"

	"github.com/russross/classroom-scheduler/internal/loader"
	"github.com/russross/classroom-scheduler/internal/scoring"
	"github.com/russross/classroom-scheduler/internal/simulate"
)

// RunConfig is the orchestrator's input, validated at the HTTP edge with
// go-playground/validator tags before it ever reaches Submit.
type RunConfig struct {
	Strategy            string `json:"strategy" validate:"omitempty,oneof=SmartRandom Satisfaction SizeBased Random Fixed"`
	Optimizer           string `json:"optimizer" validate:"omitempty,oneof=OneAtATime SimulatedAnnealing"`
	NumPreferences      int    `json:"numPreferences" validate:"omitempty,min=1"`
	CompletePreferences bool   `json:"completePreferences"`

	UseExistingCourses bool `json:"useExistingCourses"`

	NumCourses int `json:"numCourses" validate:"omitempty,min=0"`
	MinSize    int `json:"minSize" validate:"omitempty,min=1"`
	MaxSize    int `json:"maxSize" validate:"omitempty,min=1"`
	ChangeSize int `json:"changeSize" validate:"omitempty,min=1"`

	// NumRoomsPerType and NumInstructors size the synthetic room/instructor
	// pool; they are not named by §6 but are required for a standalone
	// simulated run to be internally consistent.
	NumRoomsPerType    int     `json:"numRoomsPerType" validate:"omitempty,min=0"`
	NumInstructors     int     `json:"numInstructors" validate:"omitempty,min=0"`
	CorrelationDensity float64 `json:"correlationDensity" validate:"omitempty,min=0,max=1"`

	Seed int64 `json:"seed"`

	// Loader, when UseExistingCourses is true, supplies rooms/courses/
	// instructors/correlation instead of the simulator. Not part of the
	// JSON wire shape, so runs submitted over HTTP (including the CLI's) never
	// have one; only in-process callers of Submit/Run can set it. With no
	// Loader the simulator is used even when UseExistingCourses is true.
	Loader loader.DataLoader `json:"-" validate:"-"`
}

// withDefaults fills the zero-value fields with the spec's documented values.
func (c RunConfig) withDefaults() RunConfig {
	if c.Strategy == "" {
		c.Strategy = string(simulate.SmartRandom)
	}
	if c.Optimizer == "" {
		c.Optimizer = "SimulatedAnnealing"
	}
	if c.NumPreferences <= 0 {
		c.NumPreferences = 10
	}
	if c.NumCourses <= 0 {
		c.NumCourses = 100
	}
	if c.MinSize <= 0 {
		c.MinSize = 10
	}
	if c.MaxSize <= 0 {
		c.MaxSize = 200
	}
	if c.ChangeSize <= 0 {
		c.ChangeSize = 60
	}
	if c.NumRoomsPerType <= 0 {
		c.NumRoomsPerType = 5
	}
	if c.NumInstructors <= 0 {
		c.NumInstructors = c.NumCourses/2 + 1
	}
	if c.CorrelationDensity <= 0 {
		c.CorrelationDensity = 0.05
	}
	return c
}

// RunResult is the orchestrator's output, published atomically behind the
// status lock once a run completes.
type RunResult struct {
	RunID string `json:"runId"`

	Success bool `json:"success"`

	TotalCourses      int `json:"totalCourses"`
	AssignedCourses   int `json:"assignedCourses"`
	UnassignedCourses int `json:"unassignedCourses"`

	Assignments map[string]string `json:"assignments"`

	FirstChoiceCount    int     `json:"firstChoiceCount"`
	TopThreeChoiceCount int     `json:"topThreeChoiceCount"`
	AverageChoiceRank   float64 `json:"averageChoiceRank"`
	AllocationRate      float64 `json:"allocationRate"`

	ScoreBreakdown scoring.Breakdown `json:"scoreBreakdown"`

	ElapsedMs int64     `json:"elapsedMs"`
	Timestamp time.Time `json:"timestamp"`

	Error string `json:"error,omitempty"`
}

// Status is the read-only view served at GET /status.
type Status struct {
	IsRunning  bool       `json:"isRunning"`
	LastResult *RunResult `json:"lastResult,omitempty"`
}
