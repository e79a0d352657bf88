package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/sabahotel/backoffice/internal/auth"
	"github.com/sabahotel/backoffice/internal/model"
	"github.com/sabahotel/backoffice/internal/repository"
)

type fakeVerifier struct {
	username, secret string
	emp              model.Employee
}

func (f *fakeVerifier) Authenticate(_ context.Context, username, secret string) (model.Employee, error) {
	if username == f.username && secret == f.secret {
		return f.emp, nil
	}
	return model.Employee{}, auth.ErrInvalidCredentials
}

type fakeInventory struct {
	byStatus map[string][]model.Room
}

func (f *fakeInventory) ListByStatus(_ context.Context, status string) ([]model.Room, error) {
	return f.byStatus[status], nil
}

type fakeBoard struct {
	active []repository.ReservationSummary
}

func (f *fakeBoard) ListActive(_ context.Context) ([]repository.ReservationSummary, error) {
	return f.active, nil
}

type fakeCounter struct {
	counts repository.RoomStatusCounts
}

func (f *fakeCounter) RoomStatus(_ context.Context) (repository.RoomStatusCounts, error) {
	return f.counts, nil
}

func testEngine() *Engine {
	return &Engine{
		Sessions: NewMemorySessionStore(),
		Auth: &fakeVerifier{
			username: "sara",
			secret:   "pw",
			emp:      model.Employee{ID: 3, Username: "sara", Name: "Sara", Family: "Ahmadi"},
		},
		Rooms: &fakeInventory{byStatus: map[string][]model.Room{
			model.RoomAvailable: {{ID: 101, Floor: 1, Type: "double", BedType: "queen", Capacity: 2, PriceCents: 150000, Status: model.RoomAvailable}},
			model.RoomCleaning:  {{ID: 207, Floor: 2, Type: "single", BedType: "twin", Capacity: 1, Status: model.RoomCleaning}},
		}},
		Reservations: &fakeBoard{active: []repository.ReservationSummary{{
			ID: 5, GuestName: "Omid", GuestFamily: "Karimi",
			CheckIn: "2026-09-01", CheckOut: "2026-09-03",
			RoomIDs: []uint64{101}, TotalCostCents: 300000, PaymentCents: 100000,
		}}},
		Stats:        &fakeCounter{counts: repository.RoomStatusCounts{Total: 10, Available: 4, Reserved: 3, Occupied: 2, Cleaning: 1, ActiveReservations: 3}},
		DashboardURL: "https://hotel.example/dash",
	}
}

const chat = int64(12345)

func say(t *testing.T, e *Engine, text string) Reply {
	t.Helper()
	r, err := e.Handle(context.Background(), chat, text)
	if err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
	return r
}

func login(t *testing.T, e *Engine) {
	t.Helper()
	say(t, e, "login")
	say(t, e, "sara")
	r := say(t, e, "pw")
	if !strings.Contains(r.Text, "Welcome, Sara Ahmadi") {
		t.Fatalf("login reply = %q", r.Text)
	}
}

func TestLoginConversation(t *testing.T) {
	e := testEngine()

	r := say(t, e, "hello")
	if !strings.Contains(r.Text, "not logged in") {
		t.Errorf("logged-out reply = %q", r.Text)
	}

	r = say(t, e, "login")
	if r.Text != "Enter your username:" {
		t.Errorf("username prompt = %q", r.Text)
	}
	r = say(t, e, "sara")
	if r.Text != "Enter your password:" {
		t.Errorf("password prompt = %q", r.Text)
	}
	r = say(t, e, "pw")
	if !strings.Contains(r.Text, "Welcome") || len(r.Keyboard) == 0 {
		t.Errorf("welcome reply = %+v", r)
	}

	sess, err := e.Sessions.Get(context.Background(), chat)
	if err != nil {
		t.Fatal(err)
	}
	if sess.State != StateLoggedIn || sess.EmployeeID != 3 {
		t.Errorf("session after login = %+v", sess)
	}
}

func TestLoginWrongPasswordRestarts(t *testing.T) {
	e := testEngine()
	say(t, e, "login")
	say(t, e, "sara")
	r := say(t, e, "wrong")
	if !strings.Contains(r.Text, "Invalid username or password") {
		t.Fatalf("failure reply = %q", r.Text)
	}
	// The conversation restarts at the username prompt.
	r = say(t, e, "sara")
	if r.Text != "Enter your password:" {
		t.Errorf("after restart = %q", r.Text)
	}
}

func TestMenuCommands(t *testing.T) {
	e := testEngine()
	login(t, e)

	cases := []struct {
		cmd  string
		want []string
	}{
		{"status", []string{"Rooms: 10 total", "Available: 4", "Cleaning: 1", "Active reservations: 3"}},
		{"available", []string{"Room 101", "floor 1", "$1500.00/night"}},
		{"cleaning", []string{"Room 207", "floor 2"}},
		{"active", []string{"#5 Omid Karimi", "2026-09-01 -> 2026-09-03", "rooms 101", "paid $1000.00 of $3000.00"}},
		{"dashboard", []string{"https://hotel.example/dash"}},
		{"bogus", []string{"Pick one of"}},
	}
	for _, tc := range cases {
		r := say(t, e, tc.cmd)
		for _, want := range tc.want {
			if !strings.Contains(r.Text, want) {
				t.Errorf("%q reply missing %q: %s", tc.cmd, want, r.Text)
			}
		}
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	e := testEngine()
	login(t, e)
	r := say(t, e, "  STATUS ")
	if !strings.Contains(r.Text, "Hotel status") {
		t.Errorf("upper-case command reply = %q", r.Text)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	e := testEngine()
	login(t, e)
	r := say(t, e, "logout")
	if !strings.Contains(r.Text, "Logged out") {
		t.Fatalf("logout reply = %q", r.Text)
	}
	sess, err := e.Sessions.Get(context.Background(), chat)
	if err != nil {
		t.Fatal(err)
	}
	if sess.State != StateLoggedOut {
		t.Errorf("session after logout = %+v", sess)
	}
}

func TestSessionsAreIsolatedPerChat(t *testing.T) {
	e := testEngine()
	login(t, e)
	// A different chat id is still logged out.
	r, err := e.Handle(context.Background(), chat+1, "status")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.Text, "not logged in") {
		t.Errorf("second chat reply = %q", r.Text)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{150, "$1.50"},
		{123456, "$1234.56"},
		{-250, "-$2.50"},
	}
	for _, tc := range cases {
		if got := formatCents(tc.in); got != tc.want {
			t.Errorf("formatCents(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
