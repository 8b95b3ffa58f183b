package domain

import "time"

// Room is identified by name and belongs to exactly one RoomType. Rooms are
// created once per run; the allocator is the only component that mutates
// the occupant field, via SetOccupant/ClearOccupant.
type Room struct {
	Name        string
	Capacity    int
	Type        RoomType
	Unavailable map[time.Weekday][]Interval

	occupant *Course
}

// NewRoom builds a room with an empty unavailability map.
func NewRoom(name string, capacity int, roomType RoomType) *Room {
	return &Room{
		Name:        name,
		Capacity:    capacity,
		Type:        roomType,
		Unavailable: make(map[time.Weekday][]Interval),
	}
}

// Occupant returns the course currently tentatively holding this room, or
// nil if the room is vacant.
func (r *Room) Occupant() *Course { return r.occupant }

// SetOccupant records the allocator's tentative acceptance of course.
func (r *Room) SetOccupant(c *Course) { r.occupant = c }

// ClearOccupant vacates the room.
func (r *Room) ClearOccupant() { r.occupant = nil }

// freeAt reports whether the room has no unavailability overlapping slot.
func (r *Room) freeAt(slot TimeSlot) bool {
	for _, window := range r.Unavailable[slot.Day] {
		if window.Overlaps(Interval{slot.Start, slot.End}) {
			return false
		}
	}
	return true
}

// Covers reports whether the room can host course for the given pattern:
// capacity suffices and no session in the pattern collides with a known
// unavailability window.
func (r *Room) Covers(course *Course, pattern SessionPattern) bool {
	if r.Capacity < course.CohortSize {
		return false
	}
	for _, slot := range pattern {
		if !r.freeAt(slot) {
			return false
		}
	}
	return true
}
