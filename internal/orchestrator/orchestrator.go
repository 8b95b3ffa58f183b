package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/russross/classroom-scheduler/internal/allocator"
	"github.com/russross/classroom-scheduler/internal/catalog"
	"github.com/russross/classroom-scheduler/internal/constraints"
	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/metrics"
	"github.com/russross/classroom-scheduler/internal/scheduler"
	"github.com/russross/classroom-scheduler/internal/scoring"
	"github.com/russross/classroom-scheduler/internal/simulate"
)

// Orchestrator serializes scheduling runs, publishing the result of the
// most recent one behind a single sync.RWMutex per §9's design note.
type Orchestrator struct {
	mu         sync.RWMutex
	isRunning  bool
	lastResult *RunResult
	done       chan struct{}

	stopRequested atomic.Bool

	logger   *zap.Logger
	metrics  *metrics.Metrics
	registry *catalog.Registry
}

// New builds an orchestrator. logger and m may be nil, in which case
// logging/metrics publication is skipped.
func New(logger *zap.Logger, m *metrics.Metrics) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		logger:   logger,
		metrics:  m,
		registry: catalog.NewRegistry(),
	}
}

// Submit starts a run on a dedicated goroutine and returns immediately with
// its run id. A second call while a run is in progress fails with
// domain.ErrAlreadyRunning, per §4.7.
func (o *Orchestrator) Submit(cfg RunConfig) (string, error) {
	o.mu.Lock()
	if o.isRunning {
		o.mu.Unlock()
		return "", domain.ErrAlreadyRunning
	}
	runID := uuid.NewString()
	o.isRunning = true
	o.done = make(chan struct{})
	o.stopRequested.Store(false)
	o.mu.Unlock()

	go o.execute(runID, cfg)
	return runID, nil
}

// Wait blocks until the most recently submitted run finishes and returns
// its result (nil if no run has ever been submitted).
func (o *Orchestrator) Wait() *RunResult {
	o.mu.RLock()
	done := o.done
	o.mu.RUnlock()
	if done != nil {
		<-done
	}
	return o.Status().LastResult
}

// Run submits a configuration and blocks until it completes, the
// synchronous entry point §9 names as the core surface shared by the CLI
// and the HTTP façade's Submit wrapper.
func (o *Orchestrator) Run(cfg RunConfig) (*RunResult, error) {
	if _, err := o.Submit(cfg); err != nil {
		return nil, err
	}
	return o.Wait(), nil
}

// Status returns a snapshot of {isRunning, lastResult} under the read lock.
func (o *Orchestrator) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return Status{IsRunning: o.isRunning, LastResult: o.lastResult}
}

// Shutdown requests the in-progress run stop at its next checked interruption
// point (once per annealing temperature step, once per greedy course
// placement) and waits for it to do so or for ctx to expire.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.stopRequested.Store(true)

	o.mu.RLock()
	done := o.done
	running := o.isRunning
	o.mu.RUnlock()
	if !running || done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) execute(runID string, cfg RunConfig) {
	start := time.Now()
	result := o.runPipeline(runID, cfg)
	elapsed := time.Since(start)

	result.ElapsedMs = elapsed.Milliseconds()
	result.Timestamp = time.Now()

	o.logger.Info("scheduling run complete",
		zap.String("run_id", runID),
		zap.Duration("elapsed", elapsed),
		zap.Float64("score", result.ScoreBreakdown.Total()),
		zap.Bool("success", result.Success),
	)
	o.metrics.ObserveRun(result.Success, elapsed.Seconds(), result.AllocationRate, result.UnassignedCourses, result.ScoreBreakdown)

	o.mu.Lock()
	o.isRunning = false
	o.lastResult = result
	done := o.done
	o.mu.Unlock()
	close(done)
}

// runPipeline implements §4.7's six steps.
func (o *Orchestrator) runPipeline(runID string, rawCfg RunConfig) *RunResult {
	cfg := rawCfg.withDefaults()
	rng := rand.New(rand.NewSource(seedOrClock(cfg.Seed)))

	rooms, courses, instructors, correlation, err := o.loadInputs(cfg, rng)
	if err != nil {
		return &RunResult{RunID: runID, Success: false, Error: err.Error()}
	}

	schedule := domain.NewSchedule(courses, correlation, instructorsByID(instructors))

	greedyResult := scheduler.Greedy(schedule, o.registry, rng, o.stopRequested.Load)
	o.logger.Debug("greedy scheduling complete",
		zap.String("run_id", runID),
		zap.Int("scheduled", greedyResult.Scheduled),
		zap.Int("unscheduled", len(greedyResult.Unscheduled)),
	)

	if cfg.Optimizer == "SimulatedAnnealing" {
		params := scheduler.DefaultAnnealingParams()
		best, annealResult := scheduler.Anneal(schedule, o.registry, params, rng, o.stopRequested.Load)
		schedule = best
		o.logger.Debug("annealing complete",
			zap.String("run_id", runID),
			zap.Int("accepted", annealResult.Accepted),
			zap.Int("rejected", annealResult.Rejected),
			zap.Float64("best_score", annealResult.BestScore),
		)
	}

	allocCourses := scheduledCourses(schedule)
	assignments, allocErr := allocator.New(rooms, allocCourses, false).Allocate()
	if allocErr != nil {
		return &RunResult{RunID: runID, Success: false, Error: allocErr.Error()}
	}

	capacityByRoom := make(map[string]int, len(rooms))
	for _, r := range rooms {
		capacityByRoom[r.Name] = r.Capacity
	}
	for _, c := range allocCourses {
		if room, ok := assignments[c.Name]; ok && capacityByRoom[room] < c.CohortSize {
			err := fmt.Errorf("%w: course %q (cohort %d) assigned to room %q (capacity %d)", domain.ErrInternal, c.Name, c.CohortSize, room, capacityByRoom[room])
			o.logger.Error("allocator invariant violated", zap.String("run_id", runID), zap.Error(err))
			return &RunResult{RunID: runID, Success: false, Error: err.Error()}
		}
	}

	_, breakdown := scoring.Score(schedule)
	if !constraints.Feasible(schedule) {
		o.logger.Error("run produced an infeasible schedule", zap.String("run_id", runID))
	}

	return buildResult(runID, courses, assignments, breakdown)
}

func (o *Orchestrator) loadInputs(cfg RunConfig, rng *rand.Rand) ([]*domain.Room, []*domain.Course, []*domain.Instructor, *domain.CorrelationMatrix, error) {
	if cfg.UseExistingCourses && cfg.Loader != nil {
		return o.loadFromLoader(cfg)
	}
	return o.loadFromSimulator(cfg, rng)
}

// loadFromLoader fetches rooms, courses, and instructors concurrently via
// errgroup since they are independent reads; correlation is loaded
// afterward because it is keyed by the course names the courses load just
// produced, the one real cross-dependency in an otherwise parallel stage.
func (o *Orchestrator) loadFromLoader(cfg RunConfig) ([]*domain.Room, []*domain.Course, []*domain.Instructor, *domain.CorrelationMatrix, error) {
	var rooms []*domain.Room
	var courses []*domain.Course
	var instructors []*domain.Instructor

	g := new(errgroup.Group)
	g.Go(func() (err error) { rooms, err = cfg.Loader.LoadRooms(); return })
	g.Go(func() (err error) { courses, err = cfg.Loader.LoadCourses(); return })
	g.Go(func() (err error) { instructors, err = cfg.Loader.LoadInstructors(); return })
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, err
	}

	names := make([]string, len(courses))
	for i, c := range courses {
		names[i] = c.Name
	}
	correlation, err := cfg.Loader.LoadCorrelation(names)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return rooms, courses, instructors, correlation, nil
}

// loadFromSimulator generates synthetic rooms, courses, instructors, and
// correlation concurrently via errgroup; synthetic course names are
// deterministic from cfg.NumCourses, so correlation generation needs no
// result from the courses goroutine and the four are genuinely independent.
func (o *Orchestrator) loadFromSimulator(cfg RunConfig, rng *rand.Rand) ([]*domain.Room, []*domain.Course, []*domain.Instructor, *domain.CorrelationMatrix, error) {
	var rooms []*domain.Room
	var courses []*domain.Course
	var instructors []*domain.Instructor
	var correlation *domain.CorrelationMatrix

	courseNames := make([]string, cfg.NumCourses)
	for i := range courseNames {
		courseNames[i] = fmt.Sprintf("Course-%03d", i+1)
	}

	perType := make(map[domain.RoomType]int, len(domain.AllRoomTypes()))
	for _, t := range domain.AllRoomTypes() {
		perType[t] = cfg.NumRoomsPerType
	}

	strategy := simulate.Strategy{Kind: simulate.StrategyKind(cfg.Strategy), K: cfg.NumPreferences}

	// Each goroutine gets its own RNG stream, forked from the shared seed
	// before any of them start, so concurrent generation stays
	// deterministic without a data race on a single *rand.Rand.
	roomsRNG, coursesRNG, correlationRNG := rngFork(rng), rngFork(rng), rngFork(rng)

	g := new(errgroup.Group)
	g.Go(func() error {
		rooms = simulate.GenerateRooms(simulate.RoomParams{PerType: perType}, roomsRNG)
		return nil
	})
	g.Go(func() error {
		courses = simulate.GenerateCourses(simulate.CourseParams{
			NumCourses:          cfg.NumCourses,
			MinSize:             cfg.MinSize,
			MaxSize:             cfg.MaxSize,
			ChangeSize:          cfg.ChangeSize,
			NumPreferences:      cfg.NumPreferences,
			CompletePreferences: cfg.CompletePreferences,
			Strategy:            strategy,
		}, coursesRNG)
		return nil
	})
	g.Go(func() error {
		instructors = simulate.GenerateInstructors(simulate.InstructorParams{NumInstructors: cfg.NumInstructors})
		return nil
	})
	g.Go(func() error {
		correlation = simulate.GenerateCorrelation(courseNames, cfg.CorrelationDensity, correlationRNG)
		return nil
	})
	_ = g.Wait() // no step here can fail: generation has no I/O

	assignSharedInstructors(courses, instructors)

	return rooms, courses, instructors, correlation, nil
}

// assignSharedInstructors gives each course one instructor, round-robin,
// so instructor-availability and instructor-overlap constraints have
// something to bite on in a purely synthetic run.
func assignSharedInstructors(courses []*domain.Course, instructors []*domain.Instructor) {
	if len(instructors) == 0 {
		return
	}
	for i, c := range courses {
		c.InstructorIDs = []string{instructors[i%len(instructors)].ID}
	}
}

func instructorsByID(instructors []*domain.Instructor) map[string]*domain.Instructor {
	out := make(map[string]*domain.Instructor, len(instructors))
	for _, in := range instructors {
		out[in.ID] = in
	}
	return out
}

func scheduledCourses(schedule *domain.Schedule) []*domain.Course {
	var out []*domain.Course
	for _, sc := range schedule.Courses {
		if sc.IsScheduled() {
			out = append(out, sc.Course)
		}
	}
	return out
}

func buildResult(runID string, courses []*domain.Course, assignments map[string]string, breakdown scoring.Breakdown) *RunResult {
	total := len(courses)
	assigned := len(assignments)

	var firstChoice, topThree int
	var rankSum int
	var rankedCount int
	for _, c := range courses {
		if c.AssignedRoomName == "" {
			continue
		}
		rank := c.ChoiceIndex
		rankSum += rank
		rankedCount++
		if rank == 1 {
			firstChoice++
		}
		if rank <= 3 {
			topThree++
		}
	}

	var avgRank float64
	if rankedCount > 0 {
		avgRank = float64(rankSum) / float64(rankedCount)
	}

	var allocationRate float64
	if total > 0 {
		allocationRate = float64(assigned) / float64(total)
	}

	return &RunResult{
		RunID:               runID,
		Success:             true,
		TotalCourses:        total,
		AssignedCourses:     assigned,
		UnassignedCourses:   total - assigned,
		Assignments:         assignments,
		FirstChoiceCount:    firstChoice,
		TopThreeChoiceCount: topThree,
		AverageChoiceRank:   avgRank,
		AllocationRate:      allocationRate,
		ScoreBreakdown:      breakdown,
	}
}

func seedOrClock(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// rngFork derives an independent RNG stream from the shared seed so the
// per-component generators run concurrently without a data race on a
// single *rand.Rand, while staying deterministic for a fixed outer seed.
func rngFork(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(parent.Int63()))
}
