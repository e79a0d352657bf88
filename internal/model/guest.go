package model

import "time"

// Guest represents a hotel guest as stored in the `guests` table.
// At least one of NationalID or Passport must be present; the store
// enforces this with a CHECK constraint and the repository rejects
// rows missing both before touching the database.
type Guest struct {
    ID         uint64    // guests.guest_id
    Name       string    // guests.name
    Family     string    // guests.family
    NationalID *string   // guests.national_id (nullable)
    Passport   *string   // guests.passport (nullable)
    Birthdate  time.Time // guests.birthdate
    Email      string    // guests.email (unique)
}

// GuestPhone is a phone number attached to a guest.  A guest may
// have any number of phones; the pair (guest, phone) is unique.
type GuestPhone struct {
    ID      uint64 // guest_phones.phone_id
    GuestID uint64 // guest_phones.guest_id
    Phone   string // guest_phones.phone
}

// GuestAddress is a postal address attached to a guest.
type GuestAddress struct {
    ID       uint64 // guest_addresses.address_id
    GuestID  uint64 // guest_addresses.guest_id
    Province string // guest_addresses.province
    City     string // guest_addresses.city
    Street   string // guest_addresses.street
    Plaque   string // guest_addresses.plaque
}
