// Package repository defines error types that are reused across multiple
// repositories. These values allow higher layers such as handlers to
// distinguish between different failure scenarios. For example,
// RoomsNotFoundError indicates that a booking referenced room numbers
// that do not exist, while RoomsUnavailableError signals that the rooms
// exist but are not currently available.
package repository

import (
	"errors"
	"fmt"
)

// ErrNoRooms is returned when a booking is attempted with an empty room
// list. Handlers should translate this into an HTTP 400 response.
var ErrNoRooms = errors.New("at least one room is required")

// ErrReservationNotFound is returned when an operation references a
// reservation that does not exist. Handlers should translate this into
// an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when a delete is blocked by dependent rows,
// e.g. removing a guest that still has reservations. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("operation conflicts with existing data")

// ErrGuestIdentity is returned when a guest is registered without a
// national id and without a passport number. The store enforces the
// same rule with a CHECK constraint; failing early gives the caller a
// usable message instead of a driver error.
var ErrGuestIdentity = errors.New("guest needs a national id or a passport number")

// RoomsNotFoundError reports the room numbers of a booking request that
// do not exist in the rooms table. IDs preserves the order in which the
// caller supplied them. Handlers should translate this into an HTTP 404
// response listing the ids.
type RoomsNotFoundError struct {
	IDs []uint64
}

func (e *RoomsNotFoundError) Error() string {
	return fmt.Sprintf("rooms not found: %v", e.IDs)
}

// RoomsUnavailableError reports rooms that exist but are not in the
// "available" state at booking time. Handlers should translate this
// into an HTTP 409 response listing the ids.
type RoomsUnavailableError struct {
	IDs []uint64
}

func (e *RoomsUnavailableError) Error() string {
	return fmt.Sprintf("rooms not available: %v", e.IDs)
}
