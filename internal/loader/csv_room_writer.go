package loader

import (
	"fmt"
	"io"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// WriteRooms re-emits rooms in the same semicolon-separated format
// CSVRoomLoader consumes, header row included. Used by the round-trip test
// in §8: loading a room CSV and re-emitting its display name must reproduce
// the input row's third field exactly.
func WriteRooms(w io.Writer, rooms []*domain.Room) error {
	if _, err := fmt.Fprintln(w, "name;capacity;roomType"); err != nil {
		return err
	}
	for _, r := range rooms {
		if _, err := fmt.Fprintf(w, "%s;%d;%s\n", r.Name, r.Capacity, r.Type.String()); err != nil {
			return err
		}
	}
	return nil
}
