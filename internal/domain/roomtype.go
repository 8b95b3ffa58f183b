package domain

// RoomType is a closed enumeration of physical room categories. It is the
// grouping key the allocator runs deferred acceptance over.
type RoomType int

const (
	Lecture RoomType = iota
	Seminar
	Laboratory
	ComputerLab
	StudioArt
	PerformanceHall
	Auditorium
	Workshop
	ConferenceRoom
	Gymnasium

	numRoomTypes = int(Gymnasium) + 1
)

var roomTypeNames = [numRoomTypes]string{
	Lecture:         "Lecture Hall",
	Seminar:         "Seminar Room",
	Laboratory:      "Science Laboratory",
	ComputerLab:     "Computer Lab",
	StudioArt:       "Art Studio",
	PerformanceHall: "Performance Hall",
	Auditorium:      "Auditorium",
	Workshop:        "Workshop",
	ConferenceRoom:  "Conference Room",
	Gymnasium:       "Gymnasium",
}

// String renders the human display name used in CSV input/output.
func (t RoomType) String() string {
	if t < 0 || int(t) >= numRoomTypes {
		return "Unknown Room Type"
	}
	return roomTypeNames[t]
}

// ParseRoomType maps a CSV display name back to its RoomType. The second
// return value is false for any name outside the closed enumeration.
func ParseRoomType(display string) (RoomType, bool) {
	for i, name := range roomTypeNames {
		if name == display {
			return RoomType(i), true
		}
	}
	return 0, false
}

// AllRoomTypes returns the ten room types in their canonical declaration
// order, used whenever "remaining room types" need a deterministic order
// (e.g. RunConfig.completePreferences).
func AllRoomTypes() []RoomType {
	all := make([]RoomType, numRoomTypes)
	for i := range all {
		all[i] = RoomType(i)
	}
	return all
}
