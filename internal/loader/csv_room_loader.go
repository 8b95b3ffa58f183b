package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/russross/classroom-scheduler/internal/domain"
)

// CSVRoomLoader reads the semicolon-separated room format of §6: one header
// row, then rows "name;capacity;roomTypeDisplayName". Empty, malformed, or
// unparseable-capacity rows are skipped with a logged warning; an
// unrecognized room-type name or a non-positive capacity fails the whole
// load, matching the teacher's parse.go policy of collecting context (line
// number) into the returned error.
type CSVRoomLoader struct {
	Open   func() (io.ReadCloser, error)
	Logger *zap.Logger
}

// NewCSVRoomLoader builds a loader reading from the reader returned by open
// each call.
func NewCSVRoomLoader(open func() (io.ReadCloser, error), logger *zap.Logger) *CSVRoomLoader {
	return &CSVRoomLoader{Open: open, Logger: logger}
}

func (l *CSVRoomLoader) LoadRooms() ([]*domain.Room, error) {
	f, err := l.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening room CSV: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	var rooms []*domain.Room

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if lineNumber == 1 {
			continue // header row
		}

		fields := strings.Split(line, ";")
		if len(fields) != 3 {
			l.warn("skipping malformed room row", lineNumber, line)
			continue
		}

		name := strings.TrimSpace(fields[0])
		capacityText := strings.TrimSpace(fields[1])
		typeName := strings.TrimSpace(fields[2])

		if name == "" || capacityText == "" || typeName == "" {
			l.warn("skipping empty room row", lineNumber, line)
			continue
		}

		capacity, err := strconv.Atoi(capacityText)
		if err != nil {
			l.warn("skipping room row with unparseable capacity", lineNumber, line)
			continue
		}
		if capacity <= 0 {
			return nil, fmt.Errorf("%w: line %d: room %q has non-positive capacity %d", domain.ErrInvalidInput, lineNumber, name, capacity)
		}

		roomType, ok := domain.ParseRoomType(typeName)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unrecognized room type %q", domain.ErrInvalidInput, lineNumber, typeName)
		}

		rooms = append(rooms, domain.NewRoom(name, capacity, roomType))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading room CSV: %v", domain.ErrInvalidInput, err)
	}
	return rooms, nil
}

func (l *CSVRoomLoader) warn(msg string, line int, content string) {
	if l.Logger == nil {
		return
	}
	l.Logger.Warn(msg, zap.Int("line", line), zap.String("content", content))
}
