package model

import (
	"fmt"
	"strings"
	"time"
)

// Direction of a vote. The underlying value is what gets sent to the server.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

func (d Direction) Value() int {
	return int(d)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "up", "down", "+1", "1" and "-1".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "+1", "1":
		return Up, nil
	case "down", "-1":
		return Down, nil
	default:
		return 0, fmt.Errorf("unknown vote direction: '%s'", s)
	}
}

// VoteState is the local state of a row: which indicator, if any, is active.
type VoteState int

const (
	StateNone VoteState = iota
	StateUp
	StateDown
)

func (s VoteState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateUp:
		return "up"
	case StateDown:
		return "down"
	default:
		return fmt.Sprintf("VoteState(%d)", int(s))
	}
}

// ParseVoteState is the inverse of VoteState.String.
func ParseVoteState(s string) (VoteState, error) {
	switch s {
	case "none", "":
		return StateNone, nil
	case "up":
		return StateUp, nil
	case "down":
		return StateDown, nil
	default:
		return StateNone, fmt.Errorf("unknown vote state: '%s'", s)
	}
}

// Next returns the state after the user clicks the indicator for d.
// Clicking the active indicator again resets the row.
func (s VoteState) Next(d Direction) VoteState {
	switch d {
	case Up:
		if s == StateUp {
			return StateNone
		}

		return StateUp
	case Down:
		if s == StateDown {
			return StateNone
		}

		return StateDown
	default:
		return s
	}
}

// VoteRecord is one journaled vote submission.
type VoteRecord struct {
	Title     string
	Value     int
	State     VoteState
	Status    int
	Rating    string
	Error     string
	Timestamp time.Time
}

// Failed reports whether the submission got no 2xx answer. Status is 0 when
// the request never reached the server.
func (r *VoteRecord) Failed() bool {
	return r.Error != "" || r.Status < 200 || r.Status > 299
}

// VoteResponse is the server's answer to an accepted vote.
type VoteResponse struct {
	Status int
	Rating string
}

// RowSummary aggregates journal records for one title.
type RowSummary struct {
	Title       string
	Submissions int
	Failures    int
	LastState   VoteState
	LastRating  string
}
