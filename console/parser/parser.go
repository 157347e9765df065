package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/bookvote/model"
)

// Command is a click on one of the vote indicators of a row.
type Command struct {
	Row       int
	Direction model.Direction
}

// ParseLine parses "<direction> <row>", e.g. "up 3" or "-1 0".
// Blank lines and lines starting with '#' are ignored and yield nil.
func ParseLine(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, fmt.Errorf("expected '<up|down> <row>', got '%s'", line)
	}

	direction, err := model.ParseDirection(fields[0])
	if err != nil {
		return nil, fmt.Errorf("could not parse direction: %w", err)
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("could not parse row: %w", err)
	}

	if row < 0 {
		return nil, fmt.Errorf("row must not be negative, got %d", row)
	}

	return &Command{Row: row, Direction: direction}, nil
}
