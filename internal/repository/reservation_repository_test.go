package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sabahotel/backoffice/internal/model"
)

// stubConnector hands out a fixed connection so tests can script the
// row sets a transaction will see, query by query.
type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return nil }

type stubConn struct {
	rowSets []*stubRows // consumed in order, one per query
	calls   int
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

func (c *stubConn) QueryContext(_ context.Context, _ string, _ []driver.NamedValue) (driver.Rows, error) {
	if c.calls >= len(c.rowSets) {
		return nil, errors.New("unexpected query")
	}
	r := c.rowSets[c.calls]
	c.calls++
	return r, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

// stubRows yields its data rows and then, when set, an iteration error
// instead of io.EOF.
type stubRows struct {
	cols []string
	data [][]driver.Value
	err  error
	i    int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.i < len(r.data) {
		copy(dest, r.data[r.i])
		r.i++
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return io.EOF
}

func stubDB(rowSets ...*stubRows) *sql.DB {
	return sql.OpenDB(stubConnector{conn: &stubConn{rowSets: rowSets}})
}

func baseParams(roomIDs ...uint64) CreateParams {
	return CreateParams{
		GuestID:    1,
		EmployeeID: 1,
		CheckIn:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		NumPeople:  2,
		RoomIDs:    roomIDs,
	}
}

func TestCreateEmptyRoomListFailsFast(t *testing.T) {
	// A nil DB proves the empty list is rejected before any store access.
	r := NewReservationRepo(nil)
	for _, ids := range [][]uint64{nil, {}} {
		if _, err := r.Create(context.Background(), baseParams(ids...)); !errors.Is(err, ErrNoRooms) {
			t.Errorf("Create(room_ids=%v) err = %v, want ErrNoRooms", ids, err)
		}
	}
}

func TestCreateReportsMissingRoomsInCallerOrder(t *testing.T) {
	// Only room 10 exists; 30 and 20 must come back in request order.
	lock := &stubRows{
		cols: []string{"room_id", "status"},
		data: [][]driver.Value{{int64(10), model.RoomAvailable}},
	}
	r := NewReservationRepo(stubDB(lock))
	_, err := r.Create(context.Background(), baseParams(30, 10, 20))
	var notFound *RoomsNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *RoomsNotFoundError", err)
	}
	if len(notFound.IDs) != 2 || notFound.IDs[0] != 30 || notFound.IDs[1] != 20 {
		t.Errorf("missing ids = %v, want [30 20]", notFound.IDs)
	}
}

func TestCreateRejectsUnavailableRooms(t *testing.T) {
	lock := &stubRows{
		cols: []string{"room_id", "status"},
		data: [][]driver.Value{
			{int64(101), model.RoomAvailable},
			{int64(102), model.RoomOccupied},
			{int64(103), model.RoomCleaning},
		},
	}
	r := NewReservationRepo(stubDB(lock))
	_, err := r.Create(context.Background(), baseParams(101, 102, 103))
	var unavailable *RoomsUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want *RoomsUnavailableError", err)
	}
	if len(unavailable.IDs) != 2 || unavailable.IDs[0] != 102 || unavailable.IDs[1] != 103 {
		t.Errorf("unavailable ids = %v, want [102 103]", unavailable.IDs)
	}
}

func TestCreateSurfacesLockReadFailure(t *testing.T) {
	// The connection drops after the first locked row.  The caller must
	// see a store failure, not a not-found verdict for the other room.
	readErr := errors.New("connection reset")
	lock := &stubRows{
		cols: []string{"room_id", "status"},
		data: [][]driver.Value{{int64(101), model.RoomAvailable}},
		err:  readErr,
	}
	r := NewReservationRepo(stubDB(lock))
	_, err := r.Create(context.Background(), baseParams(101, 102))
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want the read error", err)
	}
	var notFound *RoomsNotFoundError
	if errors.As(err, &notFound) {
		t.Errorf("read failure misreported as missing rooms: %v", err)
	}
}

func TestCancelSurfacesLinkReadFailure(t *testing.T) {
	// Status lookup succeeds; the room-link read dies mid-iteration.
	// Cancelling from a partial list would strand rooms in "reserved".
	readErr := errors.New("connection reset")
	status := &stubRows{
		cols: []string{"status"},
		data: [][]driver.Value{{model.ReservationActive}},
	}
	links := &stubRows{
		cols: []string{"room_id"},
		data: [][]driver.Value{{int64(101)}},
		err:  readErr,
	}
	r := NewReservationRepo(stubDB(status, links))
	if err := r.Cancel(context.Background(), 5); !errors.Is(err, readErr) {
		t.Fatalf("Cancel err = %v, want the read error", err)
	}
}

func TestRoomErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &RoomsNotFoundError{IDs: []uint64{30, 20}}, "rooms not found: [30 20]"},
		{"unavailable", &RoomsUnavailableError{IDs: []uint64{102}}, "rooms not available: [102]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}
