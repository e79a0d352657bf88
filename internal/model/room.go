package model

// Room statuses. A room's status is the only field the reservation flow
// mutates: booking flips available rooms to reserved, cancelling or
// finishing a reservation flips its rooms back to available. The cleaning
// and occupied states are set by staff through the room endpoints.
const (
    RoomAvailable = "available"
    RoomReserved  = "reserved"
    RoomOccupied  = "occupied"
    RoomCleaning  = "cleaning"
)

// ValidRoomStatus reports whether s is one of the four known room states.
func ValidRoomStatus(s string) bool {
    switch s {
    case RoomAvailable, RoomReserved, RoomOccupied, RoomCleaning:
        return true
    }
    return false
}

// Room mirrors the `rooms` table. Unlike the other entities, the room
// number is assigned by staff when the room is registered rather than
// generated by the database.
//
// Fields:
//  ID         – rooms.room_id (caller-assigned room number).
//  Type       – room category (single, double, suite, ...).
//  Capacity   – how many people the room sleeps; always > 0.
//  PriceCents – nightly price in cents; never negative.
//  Features   – optional free-text description of amenities.
//  Floor      – floor the room is on.
//  BedType    – bed description (queen, twin, ...).
//  Smoking    – whether smoking is permitted.
//  Status     – one of the Room* constants above.
type Room struct {
    ID         uint64  // rooms.room_id
    Type       string  // rooms.type
    Capacity   uint32  // rooms.capacity
    PriceCents int64   // rooms.price_cents
    Features   *string // rooms.features (nullable)
    Floor      int32   // rooms.floor
    BedType    string  // rooms.bed_type
    Smoking    bool    // rooms.smoking
    Status     string  // rooms.status
}
