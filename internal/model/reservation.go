package model

import (
    "strings"
    "time"
)

// Reservation statuses.  Transitions are one-directional: an active
// reservation can be canceled or finished, and both terminal states
// release the linked rooms back to available.
const (
    ReservationActive   = "active"
    ReservationCanceled = "canceled"
    ReservationFinished = "finished"
)

// NormalizeReservationStatus trims and lower-cases a caller-supplied
// status string.  Anything that is not a known status coerces to
// "active"; callers importing historical stays pass "finished" or
// "canceled" explicitly.
func NormalizeReservationStatus(s string) string {
    s = strings.ToLower(strings.TrimSpace(s))
    switch s {
    case ReservationActive, ReservationCanceled, ReservationFinished:
        return s
    }
    return ReservationActive
}

// Reservation records a guest's booking created by a staff member.
// It aggregates one or more rooms booked under a single transaction
// and tracks the stay interval, the party size and the financial
// terms.
//
// Fields:
//  ID             – primary key identifier.
//  GuestID        – guest the rooms are booked for.
//  EmployeeID     – staff member who recorded the booking.
//  CheckIn        – first night of the stay.
//  CheckOut       – departure date; always after CheckIn.
//  BookingDate    – when the reservation row was created.
//  NumPeople      – party size; always > 0.
//  Status         – one of the Reservation* constants.
//  TotalCostCents – agreed total price in cents.
//  PaymentCents   – amount paid so far; only ever increases.
//  DiscountCents  – discount applied to the total.
type Reservation struct {
    ID             uint64    // reservations.res_id
    GuestID        uint64    // reservations.guest_id
    EmployeeID     uint64    // reservations.emp_id
    CheckIn        time.Time // reservations.check_in
    CheckOut       time.Time // reservations.check_out
    BookingDate    time.Time // reservations.booking_date
    NumPeople      uint32    // reservations.num_people
    Status         string    // reservations.status
    TotalCostCents int64     // reservations.total_cost_cents
    PaymentCents   int64     // reservations.payment_cents
    DiscountCents  int64     // reservations.discount_cents
}

// ReservationRoom links a reservation to one of the rooms it
// occupies.  The pair (ReservationID, RoomID) is the primary key;
// the link carries no further data.
type ReservationRoom struct {
    ReservationID uint64 // reservation_rooms.res_id
    RoomID        uint64 // reservation_rooms.room_id
}
