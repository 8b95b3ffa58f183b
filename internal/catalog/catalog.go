// Package catalog enumerates and samples the legal weekly session patterns
// a course of a given duration can be assigned, grounded on the same
// same-time-different-days shape russross/schedule's named time table used,
// generalized to a generated 08:00-20:00 grid.
package catalog

import (
	"math/rand"

	"github.com/russross/classroom-scheduler/internal/domain"
)

const (
	dayStart   = 8 * 60  // 08:00 in minutes
	dayEnd     = 20 * 60 // 20:00 in minutes
	stepMinute = 30
)

// Catalog enumerates and samples session patterns for a fixed duration and
// sessions-per-week count.
type Catalog struct {
	DurationMinutes int
	SessionsPerWeek int

	patterns []domain.SessionPattern
}

// New builds a catalog, eagerly enumerating every candidate pattern.
func New(durationMinutes, sessionsPerWeek int) *Catalog {
	c := &Catalog{DurationMinutes: durationMinutes, SessionsPerWeek: sessionsPerWeek}
	c.patterns = c.enumerate()
	return c
}

// startTimes returns every legal slot start time for the catalog's duration,
// every 30 minutes from 08:00 up to 20:00 minus the duration.
func (c *Catalog) startTimes() []domain.TimeOfDay {
	var out []domain.TimeOfDay
	last := dayEnd - c.DurationMinutes
	for start := dayStart; start <= last; start += stepMinute {
		out = append(out, domain.TimeOfDay(start))
	}
	return out
}

// dayCombinations returns every way to choose SessionsPerWeek distinct days
// out of Monday-Friday, as index sets into domain.Weekdays.
func (c *Catalog) dayCombinations() [][]int {
	var combos [][]int
	var pick func(start int, chosen []int)
	pick = func(start int, chosen []int) {
		if len(chosen) == c.SessionsPerWeek {
			combos = append(combos, append([]int(nil), chosen...))
			return
		}
		for i := start; i < len(domain.Weekdays); i++ {
			pick(i+1, append(chosen, i))
		}
	}
	pick(0, nil)
	return combos
}

// enumerate builds the full finite set of candidate patterns: every
// (day-combination, start-time) pair using the same start time across all
// chosen days.
func (c *Catalog) enumerate() []domain.SessionPattern {
	if c.SessionsPerWeek <= 0 || c.SessionsPerWeek > len(domain.Weekdays) {
		return nil
	}
	starts := c.startTimes()
	combos := c.dayCombinations()
	patterns := make([]domain.SessionPattern, 0, len(starts)*len(combos))
	for _, start := range starts {
		end := start + domain.TimeOfDay(c.DurationMinutes)
		for _, combo := range combos {
			pattern := make(domain.SessionPattern, len(combo))
			for i, dayIdx := range combo {
				pattern[i] = domain.TimeSlot{
					Day:   domain.Weekdays[dayIdx],
					Start: start,
					End:   end,
				}
			}
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

// AllPatterns returns the full finite set of candidate patterns.
func (c *Catalog) AllPatterns() []domain.SessionPattern {
	return c.patterns
}

// Sample returns a uniformly random subset of up to maxK patterns, drawn
// from the injected RNG so callers keep determinism under a fixed seed.
func (c *Catalog) Sample(maxK int, rng *rand.Rand) []domain.SessionPattern {
	if maxK >= len(c.patterns) {
		out := make([]domain.SessionPattern, len(c.patterns))
		copy(out, c.patterns)
		return out
	}
	// Random permutation of all indices, keeping the first maxK.
	indices := rng.Perm(len(c.patterns))[:maxK]
	out := make([]domain.SessionPattern, maxK)
	for i, idx := range indices {
		out[i] = c.patterns[idx]
	}
	return out
}
