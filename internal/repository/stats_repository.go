package repository

import (
	"context"
	"database/sql"

	"github.com/sabahotel/backoffice/internal/model"
)

// StatsRepo aggregates counts for the dashboard and the bot quick
// status. It only reads; all queries run outside transactions.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// DashboardStats is the headline figure set shown on the staff
// dashboard landing page.
type DashboardStats struct {
	TotalGuests        int64 `json:"total_guests"`
	TotalRooms         int64 `json:"total_rooms"`
	AvailableRooms     int64 `json:"available_rooms"`
	ActiveReservations int64 `json:"active_reservations"`
	TotalPaymentCents  int64 `json:"total_payment_cents"`
	TotalRevenueCents  int64 `json:"total_revenue_cents"`
}

// Dashboard computes the landing-page figures. Revenue counts the
// agreed totals of finished reservations; payments count everything
// received so far regardless of status.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats
	steps := []struct {
		q    string
		args []interface{}
		dst  *int64
	}{
		{"SELECT COUNT(*) FROM guests", nil, &s.TotalGuests},
		{"SELECT COUNT(*) FROM rooms", nil, &s.TotalRooms},
		{"SELECT COUNT(*) FROM rooms WHERE status=?", []interface{}{model.RoomAvailable}, &s.AvailableRooms},
		{"SELECT COUNT(*) FROM reservations WHERE status=?", []interface{}{model.ReservationActive}, &s.ActiveReservations},
		{"SELECT COALESCE(SUM(payment_cents),0) FROM reservations", nil, &s.TotalPaymentCents},
		{"SELECT COALESCE(SUM(total_cost_cents - discount_cents),0) FROM reservations WHERE status=?", []interface{}{model.ReservationFinished}, &s.TotalRevenueCents},
	}
	for _, st := range steps {
		if err := r.DB.QueryRowContext(ctx, st.q, st.args...).Scan(st.dst); err != nil {
			return DashboardStats{}, err
		}
	}
	return s, nil
}

// RoomStatusCounts breaks the room inventory down by state, plus the
// number of active reservations. Used by the bot quick status.
type RoomStatusCounts struct {
	Total              int64 `json:"total"`
	Available          int64 `json:"available"`
	Reserved           int64 `json:"reserved"`
	Occupied           int64 `json:"occupied"`
	Cleaning           int64 `json:"cleaning"`
	ActiveReservations int64 `json:"active_reservations"`
}

// RoomStatus counts rooms per state in a single GROUP BY pass.
func (r *StatsRepo) RoomStatus(ctx context.Context) (RoomStatusCounts, error) {
	var s RoomStatusCounts
	rows, err := r.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM rooms GROUP BY status")
	if err != nil {
		return s, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return RoomStatusCounts{}, err
		}
		s.Total += n
		switch status {
		case model.RoomAvailable:
			s.Available = n
		case model.RoomReserved:
			s.Reserved = n
		case model.RoomOccupied:
			s.Occupied = n
		case model.RoomCleaning:
			s.Cleaning = n
		}
	}
	if err := rows.Err(); err != nil {
		return RoomStatusCounts{}, err
	}
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE status=?", model.ReservationActive).Scan(&s.ActiveReservations)
	if err != nil {
		return RoomStatusCounts{}, err
	}
	return s, nil
}
