package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sabahotel/backoffice/internal/model"
)

// RoomRepo provides data access to the 'rooms' table. Room numbers are
// assigned by staff, so Create takes a full model including the ID.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

var ErrRoomExists = errors.New("room number already registered")

const roomCols = "room_id,type,capacity,price_cents,features,floor,bed_type,smoking,status"

func scanRoom(row interface{ Scan(...interface{}) error }) (model.Room, error) {
	var rm model.Room
	var features sql.NullString
	err := row.Scan(&rm.ID, &rm.Type, &rm.Capacity, &rm.PriceCents, &features, &rm.Floor, &rm.BedType, &rm.Smoking, &rm.Status)
	if err != nil {
		return rm, err
	}
	if features.Valid {
		v := features.String
		rm.Features = &v
	}
	return rm, nil
}

// Create registers a room under its caller-assigned number.
func (r *RoomRepo) Create(ctx context.Context, rm model.Room) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (room_id, type, capacity, price_cents, features, floor, bed_type, smoking, status) VALUES (?,?,?,?,?,?,?,?,?)",
		rm.ID, rm.Type, rm.Capacity, rm.PriceCents, rm.Features, rm.Floor, rm.BedType, rm.Smoking, rm.Status)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrRoomExists
	}
	return err
}

// GetByID fetches a room by number.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE room_id=? LIMIT 1", id)
	return scanRoom(row)
}

// List returns all rooms ordered by floor then number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return r.query(ctx, "SELECT "+roomCols+" FROM rooms ORDER BY floor, room_id")
}

// ListByStatus returns rooms in the given state ordered by floor then
// number. The status must be one of the model.Room* constants.
func (r *RoomRepo) ListByStatus(ctx context.Context, status string) ([]model.Room, error) {
	return r.query(ctx, "SELECT "+roomCols+" FROM rooms WHERE status=? ORDER BY floor, room_id", status)
}

func (r *RoomRepo) query(ctx context.Context, q string, args ...interface{}) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// UpdateStatus moves a room to a new state. Callers validate the
// status against model.ValidRoomStatus and check existence beforehand;
// setting the state a room is already in is a no-op, not an error.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE rooms SET status=? WHERE room_id=?", status, id)
	return err
}

// Delete removes a room. Rooms referenced by reservation links block
// the delete with a foreign key error, surfaced as ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE room_id=?", id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
