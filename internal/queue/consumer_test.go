package queue

import (
	"strings"
	"testing"
)

func TestFormatLineBooked(t *testing.T) {
	line := formatLine(ReservationEvent{
		Action:         ActionBooked,
		ReservationID:  42,
		GuestID:        7,
		EmployeeID:     1,
		RoomIDs:        []uint64{101, 102},
		CheckIn:        "2026-09-01",
		CheckOut:       "2026-09-04",
		TotalCostCents: 120000,
		OccurredAt:     "2026-08-27T10:00:00Z",
	})
	for _, want := range []string{
		"Reservation booked",
		"reservation_id=42",
		"guest_id=7",
		"stay=2026-09-01..2026-09-04",
		"total=120000 cents",
		"rooms=[101,102]",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %s", want, line)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line not newline terminated")
	}
}

func TestFormatLinePayment(t *testing.T) {
	line := formatLine(ReservationEvent{
		Action:        ActionPayment,
		ReservationID: 42,
		AmountCents:   5000,
		OccurredAt:    "2026-08-27T10:00:00Z",
	})
	if !strings.Contains(line, "Payment received") || !strings.Contains(line, "amount=5000 cents") {
		t.Errorf("unexpected payment line: %s", line)
	}
}

func TestFormatLineNoRooms(t *testing.T) {
	line := formatLine(ReservationEvent{Action: ActionCanceled, ReservationID: 9})
	if !strings.Contains(line, "rooms=[]") {
		t.Errorf("expected empty rooms marker: %s", line)
	}
}
