package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrNoAvailability = errors.New("no room of the requested type is free for those dates")

	ErrInvalidTransition = errors.New("reservation status does not allow this transition")

	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	ErrUnknownRoomType = errors.New("unknown room type")
)
