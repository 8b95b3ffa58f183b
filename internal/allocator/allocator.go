// Package allocator implements the type-based deferred-acceptance room
// allocator: courses propose to room types in ranked order, rooms of that
// type tentatively accept the best-fitting proposer, and the loser of each
// round advances to its next preference. Grounded on
// luccasniccolas177-timetabling-udp's round-based Burke room assignment
// (a DUD/unplaceable list accumulated across rounds) for the protocol
// shape, and on russross/schedule's per-slot Badness bookkeeping for how
// eligibility and ties are tracked.
package allocator

import (
	"fmt"
	"sort"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// Step is one audit-log entry: a course being tentatively accepted into, or
// displaced out of, a room.
type Step struct {
	Round       int
	CourseName  string
	RoomName    string
	RoomType    domain.RoomType
	Displaced   bool
	WastedSeats int
}

// Allocator runs deferred acceptance over a fixed room list and course list.
type Allocator struct {
	rooms      []*domain.Room
	courses    []*domain.Course
	strictMode bool

	roomsByType map[domain.RoomType][]*domain.Room
	steps       []Step
}

// New builds an allocator over rooms and courses. strictMode, when set,
// makes Allocate fail with domain.ErrInvalidInput if any course has an
// empty ranking, instead of marking it unplaceable.
func New(rooms []*domain.Room, courses []*domain.Course, strictMode bool) *Allocator {
	byType := make(map[domain.RoomType][]*domain.Room)
	for _, r := range rooms {
		byType[r.Type] = append(byType[r.Type], r)
	}
	for t := range byType {
		list := byType[t]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Capacity < list[j].Capacity })
		byType[t] = list
	}

	return &Allocator{
		rooms:       rooms,
		courses:     courses,
		strictMode:  strictMode,
		roomsByType: byType,
	}
}

// Allocate runs deferred acceptance to completion and returns a map from
// course name to the room name it was finally accepted into. Courses that
// exhaust their ranking are omitted from the map; their names are not
// otherwise reported by Allocate (call Unplaceable after it returns).
func (a *Allocator) Allocate() (map[string]string, error) {
	a.reset()
	for _, r := range a.rooms {
		r.ClearOccupant()
	}

	if a.strictMode {
		for _, c := range a.courses {
			if len(c.Ranking) == 0 {
				return nil, fmt.Errorf("%w: course %q has an empty room-type ranking", domain.ErrInvalidInput, c.Name)
			}
		}
	}

	active := make([]*domain.Course, len(a.courses))
	copy(active, a.courses)

	round := 0
	for len(active) > 0 {
		round++
		proposals := make(map[domain.RoomType][]*domain.Course)

		var stillActive []*domain.Course
		for _, c := range active {
			pref, ok := c.CurrentPreference()
			if !ok {
				continue
			}
			proposals[pref] = append(proposals[pref], c)
			stillActive = append(stillActive, c)
		}
		// pre-increment: every proposer this round moves past the
		// preference it just used, whether it wins or is displaced later.
		for _, c := range stillActive {
			c.ChoiceIndex++
		}

		// visit room types in enumeration order so the active list, and with
		// it every insertion-order tie-break, is the same on every run.
		roomTypes := make([]domain.RoomType, 0, len(proposals))
		for roomType := range proposals {
			roomTypes = append(roomTypes, roomType)
		}
		sort.Slice(roomTypes, func(i, j int) bool { return roomTypes[i] < roomTypes[j] })

		active = nil
		for _, roomType := range roomTypes {
			displaced := a.runRound(round, roomType, proposals[roomType])
			active = append(active, displaced...)
		}
	}

	assignments := make(map[string]string)
	for _, r := range a.rooms {
		if occ := r.Occupant(); occ != nil {
			occ.AssignedRoomName = r.Name
			assignments[occ.Name] = r.Name
		}
	}
	return assignments, nil
}

// runRound runs tentative acceptance for a single room type. Rooms are
// considered smallest-capacity first; each claims the best remaining
// candidate (occupants and this round's proposers pooled together) that
// fits, removing it from the pool so no course is ever double-booked. It
// returns the courses that end the round without a room of this type —
// displaced previous occupants and unsuccessful proposers alike — which
// must re-enter the active pool for the next round.
func (a *Allocator) runRound(round int, roomType domain.RoomType, proposers []*domain.Course) []*domain.Course {
	rooms := a.roomsByType[roomType]

	previousOccupant := make(map[*domain.Room]*domain.Course, len(rooms))
	pool := make([]*domain.Course, 0, len(proposers)+len(rooms))
	seen := make(map[*domain.Course]bool)
	for _, room := range rooms {
		previousOccupant[room] = room.Occupant()
		if occ := room.Occupant(); occ != nil && !seen[occ] {
			seen[occ] = true
			pool = append(pool, occ)
		}
	}
	for _, c := range proposers {
		if !seen[c] {
			seen[c] = true
			pool = append(pool, c)
		}
	}

	assignedTo := make(map[*domain.Course]*domain.Room, len(pool))
	for _, room := range rooms {
		winner := bestFit(room, pool)
		if winner == nil {
			continue
		}
		assignedTo[winner] = room
		pool = removeCourse(pool, winner)
	}

	for _, room := range rooms {
		previous := previousOccupant[room]
		winner, ok := findRoomWinner(assignedTo, room)

		if previous != nil && previous != winner {
			room.ClearOccupant()
			a.steps = append(a.steps, Step{Round: round, CourseName: previous.Name, RoomName: room.Name, RoomType: roomType, Displaced: true})
		}
		if ok && winner != previous {
			room.SetOccupant(winner)
			a.steps = append(a.steps, Step{
				Round:       round,
				CourseName:  winner.Name,
				RoomName:    room.Name,
				RoomType:    roomType,
				WastedSeats: room.Capacity - winner.CohortSize,
			})
		}
	}

	var displaced []*domain.Course
	for _, room := range rooms {
		if previous := previousOccupant[room]; previous != nil {
			if w, ok := findRoomWinner(assignedTo, room); !ok || w != previous {
				displaced = append(displaced, previous)
			}
		}
	}
	for _, c := range proposers {
		if _, ok := assignedTo[c]; !ok {
			displaced = append(displaced, c)
		}
	}

	return dedupe(displaced)
}

func findRoomWinner(assignedTo map[*domain.Course]*domain.Room, room *domain.Room) (*domain.Course, bool) {
	for c, r := range assignedTo {
		if r == room {
			return c, true
		}
	}
	return nil, false
}

func removeCourse(pool []*domain.Course, target *domain.Course) []*domain.Course {
	out := pool[:0]
	for _, c := range pool {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}

// bestFit picks the candidate minimizing wasted seats among those the room
// can actually hold, breaking ties by insertion order (first candidate
// wins). Returns nil if no candidate fits.
func bestFit(room *domain.Room, candidates []*domain.Course) *domain.Course {
	var best *domain.Course
	bestWaste := -1
	for _, c := range candidates {
		if c.CohortSize > room.Capacity {
			continue
		}
		waste := room.Capacity - c.CohortSize
		if best == nil || waste < bestWaste {
			best = c
			bestWaste = waste
		}
	}
	return best
}

func dedupe(courses []*domain.Course) []*domain.Course {
	seen := make(map[*domain.Course]bool, len(courses))
	out := make([]*domain.Course, 0, len(courses))
	for _, c := range courses {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// reset clears the allocator-owned fields on every course, per §4.2's
// requirement that Allocate() resets choiceIndex/assignedRoomName at the
// start of each call.
func (a *Allocator) reset() {
	for _, c := range a.courses {
		c.ResetAllocationState()
	}
	a.steps = nil
}

// Steps returns the audit log of displacements/assignments from the last
// Allocate() call.
func (a *Allocator) Steps() []Step {
	return a.steps
}

// Unplaceable returns the courses that exhausted their ranking during the
// last Allocate() call (those with no assigned room and choiceIndex ==
// len(ranking)+1 worth of attempts, i.e. ChoiceIndex == len(Ranking)).
func (a *Allocator) Unplaceable() []*domain.Course {
	var out []*domain.Course
	for _, c := range a.courses {
		if c.AssignedRoomName == "" {
			out = append(out, c)
		}
	}
	return out
}

// ExportState returns a snapshot of room occupancy, for telemetry.
func (a *Allocator) ExportState() map[string]string {
	state := make(map[string]string)
	for _, r := range a.rooms {
		if occ := r.Occupant(); occ != nil {
			state[r.Name] = occ.Name
		} else {
			state[r.Name] = ""
		}
	}
	return state
}
