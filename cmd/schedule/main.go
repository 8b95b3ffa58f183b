// Command schedule is the CLI front end: `serve` starts the HTTP façade in
// front of a shared orchestrator, while `run`/`status`/`score`/`bycourse`/
// `byinstructor` are thin HTTP clients against a running server, the same
// way the teacher's cli.go split commands that write a schedule from
// commands that only read and print one.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/russross/classroom-scheduler/internal/config"
	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/httpapi"
	"github.com/russross/classroom-scheduler/internal/logging"
	"github.com/russross/classroom-scheduler/internal/metrics"
	"github.com/russross/classroom-scheduler/internal/orchestrator"
)

var serverAddr = "http://localhost:8080"

func main() {
	log.SetFlags(log.Ltime)

	cmdSchedule := &cobra.Command{
		Use:   "schedule",
		Short: "Classroom schedule generation service",
		Long: "A service that generates and optimizes course/room/time schedules\n" +
			"by greedy construction plus simulated annealing, with a room\n" +
			"allocator on top.",
		SilenceUsage: true,
	}
	cmdSchedule.PersistentFlags().StringVar(&serverAddr, "server", serverAddr, "base URL of a running `serve` instance")

	cmdSchedule.AddCommand(cmdServe())
	cmdSchedule.AddCommand(cmdRun())
	cmdSchedule.AddCommand(cmdStatus())
	cmdSchedule.AddCommand(cmdScore())
	cmdSchedule.AddCommand(cmdByCourse())
	cmdSchedule.AddCommand(cmdByInstructor())

	if err := cmdSchedule.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func cmdServe() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP façade (POST /runs, GET /status, GET /metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg, _, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger, err := logging.New(srvCfg.LogLevel, srvCfg.LogFormat)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			m := metrics.New()
			orc := orchestrator.New(logger, m)
			server := httpapi.New(orc, m)

			addr := fmt.Sprintf(":%d", srvCfg.Port)
			logger.Sugar().Infow("listening", "addr", addr)
			return http.ListenAndServe(addr, server.Handler())
		},
	}
}

func cmdRun() *cobra.Command {
	var seed int64
	var numCourses int
	var strategy string
	var optimizer string
	var useExisting bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "submit a run and wait for it to finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, defaults, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg := defaults
			cfg.Seed = seed
			if numCourses > 0 {
				cfg.NumCourses = numCourses
			}
			if strategy != "" {
				cfg.Strategy = strategy
			}
			if optimizer != "" {
				cfg.Optimizer = optimizer
			}
			cfg.UseExistingCourses = useExisting

			result, err := submitAndWait(cfg)
			if err != nil {
				return err
			}
			printSummary(result)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&numCourses, "courses", 0, "number of synthetic courses to generate (0 uses the default)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "preference strategy: Random, SmartRandom, SizeBased, Satisfaction, Fixed")
	cmd.Flags().StringVar(&optimizer, "optimizer", "", "OneAtATime or SimulatedAnnealing")
	cmd.Flags().BoolVar(&useExisting, "use-existing", false, "set useExistingCourses on the run; the serve command has no data loader, so it still simulates inputs")
	return cmd
}

func cmdStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "print whether a run is in progress and the last result",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := fetchStatus()
			if err != nil {
				return err
			}
			fmt.Printf("running: %v\n", status.IsRunning)
			if status.LastResult != nil {
				printSummary(status.LastResult)
			}
			return nil
		},
	}
}

func cmdScore() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "print the score breakdown of the last completed run",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := fetchStatus()
			if err != nil {
				return err
			}
			if status.LastResult == nil {
				return errors.New("no completed run yet")
			}
			r := status.LastResult
			fmt.Printf("run %s: total score %.1f\n", r.RunID, r.ScoreBreakdown.Total())
			names := make([]string, 0, len(r.ScoreBreakdown))
			for name := range r.ScoreBreakdown {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-24s %10.1f\n", name, r.ScoreBreakdown[name])
			}
			return nil
		},
	}
}

func cmdByCourse() *cobra.Command {
	return &cobra.Command{
		Use:   "bycourse",
		Short: "print the last run's course-to-room assignments, ordered by course",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := fetchStatus()
			if err != nil {
				return err
			}
			if status.LastResult == nil {
				return errors.New("no completed run yet")
			}
			printAssignments(status.LastResult.Assignments)
			return nil
		},
	}
}

func cmdByInstructor() *cobra.Command {
	return &cobra.Command{
		Use:   "byinstructor",
		Short: "print the last run's course-to-room assignments, ordered by room",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := fetchStatus()
			if err != nil {
				return err
			}
			if status.LastResult == nil {
				return errors.New("no completed run yet")
			}
			// RunResult does not retain per-course instructor identity
			// (only course -> room survives the run), so this view groups
			// by room, the closest stand-in available at the HTTP edge.
			byRoom := make(map[string][]string)
			for course, room := range status.LastResult.Assignments {
				byRoom[room] = append(byRoom[room], course)
			}
			rooms := make([]string, 0, len(byRoom))
			for room := range byRoom {
				rooms = append(rooms, room)
			}
			sort.Strings(rooms)
			for _, room := range rooms {
				courses := byRoom[room]
				sort.Strings(courses)
				for _, course := range courses {
					fmt.Printf("%-20s  %s\n", room, course)
				}
			}
			return nil
		},
	}
}

func submitAndWait(cfg orchestrator.RunConfig) (*orchestrator.RunResult, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverAddr+"/runs", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusAccepted:
	case http.StatusConflict:
		return nil, domain.ErrAlreadyRunning
	case http.StatusBadRequest:
		return nil, domain.ErrInvalidInput
	default:
		return nil, fmt.Errorf("submitting run: server returned %s", resp.Status)
	}

	for {
		status, err := fetchStatus()
		if err != nil {
			return nil, err
		}
		if !status.IsRunning && status.LastResult != nil {
			return status.LastResult, nil
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func fetchStatus() (orchestrator.Status, error) {
	var envelope struct {
		Data orchestrator.Status `json:"data"`
	}
	resp, err := http.Get(serverAddr + "/status")
	if err != nil {
		return orchestrator.Status{}, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return orchestrator.Status{}, err
	}
	return envelope.Data, nil
}

func printSummary(r *orchestrator.RunResult) {
	fmt.Printf("run %s: %d/%d courses assigned (%.1f%%), took %s\n",
		r.RunID, r.AssignedCourses, r.TotalCourses, r.AllocationRate*100,
		humanizeMillis(r.ElapsedMs))
	fmt.Printf("score: %.1f  first choice: %d  top three: %d  avg rank: %.2f\n",
		r.ScoreBreakdown.Total(), r.FirstChoiceCount, r.TopThreeChoiceCount, r.AverageChoiceRank)
}

// humanizeMillis renders an elapsed duration the way humanize.Time renders a
// timestamp: a short, human phrase alongside the raw field it's derived from.
func humanizeMillis(ms int64) string {
	return humanize.RelTime(time.Now().Add(-time.Duration(ms)*time.Millisecond), time.Now(), "ago", "from now")
}

func printAssignments(assignments map[string]string) {
	courses := make([]string, 0, len(assignments))
	for course := range assignments {
		courses = append(courses, course)
	}
	sort.Strings(courses)
	for _, course := range courses {
		fmt.Printf("%-24s  %s\n", course, assignments[course])
	}
}

// exitCodeFor maps sentinel errors onto the process exit code scheme: 2 for
// invalid input, 3 for an already-running conflict, 1 for everything else.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return 2
	case errors.Is(err, domain.ErrAlreadyRunning):
		return 3
	default:
		return 1
	}
}
