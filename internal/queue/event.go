// Package queue defines message payloads exchanged over the message broker.
package queue

// Reservation lifecycle actions carried in ReservationEvent.Action.
const (
    ActionBooked   = "booked"
    ActionCanceled = "canceled"
    ActionFinished = "finished"
    ActionPayment  = "payment"
)

// ReservationEvent is published whenever a reservation changes state.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationEvent struct {
    Action         string   `json:"action"`
    ReservationID  uint64   `json:"reservation_id"`
    GuestID        uint64   `json:"guest_id,omitempty"`
    EmployeeID     uint64   `json:"employee_id,omitempty"`
    RoomIDs        []uint64 `json:"room_ids,omitempty"`
    CheckIn        string   `json:"check_in,omitempty"`
    CheckOut       string   `json:"check_out,omitempty"`
    TotalCostCents int64    `json:"total_cost_cents,omitempty"`
    AmountCents    int64    `json:"amount_cents,omitempty"`
    OccurredAt     string   `json:"occurred_at"`
}
