package model

import (
	"encoding/json"
	"fmt"
)

type Status string

const (
	StatusReserved   Status = "Reserved"
	StatusCheckedIn  Status = "Checked-in"
	StatusCheckedOut Status = "Checked-out"
	StatusCancelled  Status = "Cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReserved, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// Active reports whether a reservation in this status still holds its room.
func (s Status) Active() bool {
	switch s {
	case StatusReserved, StatusCheckedIn:
		return true
	case StatusCheckedOut, StatusCancelled:
		return false
	}
	return false
}

// CanTransitionTo encodes the lifecycle:
//
//	Reserved   -> Checked-in | Cancelled
//	Checked-in -> Checked-out
//	Checked-out -> Cancelled
//
// Cancelled is terminal. A checked-in stay must be checked out before it can be cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusReserved:
		return next == StatusCheckedIn || next == StatusCancelled
	case StatusCheckedIn:
		return next == StatusCheckedOut
	case StatusCheckedOut:
		return next == StatusCancelled
	case StatusCancelled:
		return false
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
