package model

import (
	"fmt"
	"time"
)

type Reservation struct {
	ID         int64     `json:"id"`
	GuestName  string    `json:"guest_name"`
	RoomNumber int       `json:"room_number"`
	RoomType   RoomType  `json:"room_type"`
	CheckIn    Date      `json:"check_in"`
	CheckOut   Date      `json:"check_out"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReservationRequest is the caller-supplied part of a new reservation; the room,
// id and status are assigned by the service.
type ReservationRequest struct {
	GuestName string   `json:"guest_name" validate:"required,max=100"`
	RoomType  RoomType `json:"room_type" validate:"required,room_type"`
	CheckIn   Date     `json:"check_in"`
	CheckOut  Date     `json:"check_out"`
}

// Overlaps reports whether the stay conflicts with the half-open window [in, out).
// Checking out on the morning another guest checks in is not a conflict.
func (r *Reservation) Overlaps(in, out Date) bool {
	return DatesOverlap(r.CheckIn, r.CheckOut, in, out)
}

func DatesOverlap(start1, end1, start2, end2 Date) bool {
	return start1.Before(end2) && end1.After(start2)
}

func (r *Reservation) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// SearchText is the haystack the free-text search matches against.
func (r *Reservation) SearchText() string {
	return fmt.Sprintf("%d %s %d %s %s %s %s",
		r.ID,
		r.GuestName,
		r.RoomNumber,
		r.RoomType,
		r.Status,
		r.CheckIn,
		r.CheckOut,
	)
}

func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
