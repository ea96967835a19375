package model

import (
	"time"

	"shareit/util/apperr"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Booking struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Status   Status    `json:"status"`
}

// Approve and Reject are the only way a booking leaves WAITING. Both states
// are terminal.
func (b *Booking) Approve() error {
	return b.decide(StatusApproved)
}

func (b *Booking) Reject() error {
	return b.decide(StatusRejected)
}

func (b *Booking) decide(to Status) error {
	if b.Status != StatusWaiting {
		return apperr.BadRequest("booking %d status already decided", b.ID)
	}
	b.Status = to
	return nil
}

// State is the listing filter vocabulary shared by the renter and owner views.
type State string

const (
	StateAll      State = "ALL"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateCurrent  State = "CURRENT"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(s string) (State, error) {
	switch State(s) {
	case StateAll, StatePast, StateFuture, StateCurrent, StateWaiting, StateRejected:
		return State(s), nil
	default:
		return "", apperr.BadRequest("Unknown state: %s", s)
	}
}
