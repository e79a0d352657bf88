package model

import "testing"

func TestNormalizeReservationStatus(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"active", "active", ReservationActive},
		{"canceled", "canceled", ReservationCanceled},
		{"finished", "finished", ReservationFinished},
		{"upper case", "ACTIVE", ReservationActive},
		{"mixed case terminal", "Finished", ReservationFinished},
		{"surrounding space", "  canceled \n", ReservationCanceled},
		{"empty coerces to active", "", ReservationActive},
		{"unknown coerces to active", "pending", ReservationActive},
		{"british spelling coerces to active", "cancelled", ReservationActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeReservationStatus(tc.in); got != tc.want {
				t.Errorf("NormalizeReservationStatus(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidRoomStatus(t *testing.T) {
	for _, s := range []string{RoomAvailable, RoomReserved, RoomOccupied, RoomCleaning} {
		if !ValidRoomStatus(s) {
			t.Errorf("ValidRoomStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Available", "free", "booked"} {
		if ValidRoomStatus(s) {
			t.Errorf("ValidRoomStatus(%q) = true", s)
		}
	}
}
