package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/sabahotel/backoffice/internal/model"
)

// ReservationRepo provides data access to the reservations and
// reservation_rooms tables.  A reservation groups one or more rooms
// booked for a guest by a staff member.  Booking, cancelling and
// finishing each run as a single transaction so that the reservation
// row, the room links and the room statuses always change together.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateParams carries everything needed to record a booking.  Status
// is normalized with model.NormalizeReservationStatus before use, so
// callers may pass an empty string for a regular active booking.
type CreateParams struct {
    GuestID        uint64
    EmployeeID     uint64
    CheckIn        time.Time
    CheckOut       time.Time
    NumPeople      uint32
    Status         string
    TotalCostCents int64
    PaymentCents   int64
    DiscountCents  int64
    RoomIDs        []uint64
}

// placeholderList returns "?, ?, ?" with n placeholders for building
// IN clauses.
func placeholderList(n int) string {
    ps := make([]string, n)
    for i := range ps {
        ps[i] = "?"
    }
    return strings.Join(ps, ", ")
}

// Create records a booking atomically and returns the new reservation
// ID.  Within one transaction it locks the requested room rows with
// SELECT ... FOR UPDATE so two concurrent bookings for the same room
// cannot both observe "available", re-validates existence and
// availability, inserts the reservation and its room links, and, when
// the normalized status is active, moves the rooms to "reserved".
//
// Failure modes: ErrNoRooms when RoomIDs is empty (checked before any
// store access), *RoomsNotFoundError when any requested room does not
// exist, *RoomsUnavailableError when the booking is active and any
// requested room is not available.  Terminal-status bookings
// (finished, canceled) skip the availability check and leave room
// statuses untouched.
func (r *ReservationRepo) Create(ctx context.Context, p CreateParams) (uint64, error) {
    if len(p.RoomIDs) == 0 {
        return 0, ErrNoRooms
    }
    status := model.NormalizeReservationStatus(p.Status)

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the requested rooms for the duration of the transaction.
    lockQ := `SELECT room_id, status FROM rooms WHERE room_id IN (` + placeholderList(len(p.RoomIDs)) + `) FOR UPDATE`
    args := make([]interface{}, 0, len(p.RoomIDs))
    for _, id := range p.RoomIDs {
        args = append(args, id)
    }
    rows, err := tx.QueryContext(ctx, lockQ, args...)
    if err != nil {
        return 0, err
    }
    found := make(map[uint64]string, len(p.RoomIDs))
    for rows.Next() {
        var id uint64
        var st string
        if scanErr := rows.Scan(&id, &st); scanErr != nil {
            rows.Close()
            return 0, scanErr
        }
        found[id] = st
    }
    // A read error mid-iteration must not masquerade as missing rooms.
    if err = rows.Err(); err != nil {
        rows.Close()
        return 0, err
    }
    if err = rows.Close(); err != nil {
        return 0, err
    }

    // Report missing and unavailable rooms in the order the caller
    // supplied them.
    var missing []uint64
    for _, id := range p.RoomIDs {
        if _, ok := found[id]; !ok {
            missing = append(missing, id)
        }
    }
    if len(missing) > 0 {
        return 0, &RoomsNotFoundError{IDs: missing}
    }
    if status == model.ReservationActive {
        var unavailable []uint64
        for _, id := range p.RoomIDs {
            if found[id] != model.RoomAvailable {
                unavailable = append(unavailable, id)
            }
        }
        if len(unavailable) > 0 {
            return 0, &RoomsUnavailableError{IDs: unavailable}
        }
    }

    const insQ = `INSERT INTO reservations
                  (guest_id, emp_id, check_in, check_out, num_people, status, total_cost_cents, payment_cents, discount_cents)
                  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, insQ,
        p.GuestID, p.EmployeeID,
        p.CheckIn.Format("2006-01-02"), p.CheckOut.Format("2006-01-02"),
        p.NumPeople, status, p.TotalCostCents, p.PaymentCents, p.DiscountCents,
    )
    if err != nil {
        return 0, err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return 0, err
    }
    resID := uint64(id)

    // Bulk-insert the room links in a single statement.
    linkQ := `INSERT INTO reservation_rooms (res_id, room_id) VALUES `
    linkArgs := make([]interface{}, 0, len(p.RoomIDs)*2)
    for i, roomID := range p.RoomIDs {
        if i > 0 {
            linkQ += ","
        }
        linkQ += "(?, ?)"
        linkArgs = append(linkArgs, resID, roomID)
    }
    if _, err = tx.ExecContext(ctx, linkQ, linkArgs...); err != nil {
        return 0, err
    }

    if status == model.ReservationActive {
        updQ := `UPDATE rooms SET status = ? WHERE room_id IN (` + placeholderList(len(p.RoomIDs)) + `)`
        updArgs := make([]interface{}, 0, len(p.RoomIDs)+1)
        updArgs = append(updArgs, model.RoomReserved)
        updArgs = append(updArgs, args...)
        if _, err = tx.ExecContext(ctx, updQ, updArgs...); err != nil {
            return 0, err
        }
    }

    if err = tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return resID, nil
}

// Cancel marks a reservation canceled and releases its rooms back to
// available.  It returns ErrReservationNotFound when no reservation
// with the given ID exists.  Cancelling an already-terminal
// reservation is not rejected; the rooms are simply released again.
func (r *ReservationRepo) Cancel(ctx context.Context, resID uint64) error {
    return r.release(ctx, resID, model.ReservationCanceled)
}

// Finish marks a reservation finished (guest checked out) and releases
// its rooms back to available.  Same semantics as Cancel otherwise.
func (r *ReservationRepo) Finish(ctx context.Context, resID uint64) error {
    return r.release(ctx, resID, model.ReservationFinished)
}

// release performs the shared terminal transition: lock the
// reservation row, collect its linked room ids, set the status and
// free the rooms, all in one transaction.
func (r *ReservationRepo) release(ctx context.Context, resID uint64, status string) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Existence check doubles as a row lock on the reservation.
    var current string
    err = tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE res_id = ? FOR UPDATE`, resID).Scan(&current)
    if err != nil {
        if err == sql.ErrNoRows {
            return ErrReservationNotFound
        }
        return err
    }

    rows, err := tx.QueryContext(ctx, `SELECT room_id FROM reservation_rooms WHERE res_id = ?`, resID)
    if err != nil {
        return err
    }
    var roomIDs []uint64
    for rows.Next() {
        var id uint64
        if scanErr := rows.Scan(&id); scanErr != nil {
            rows.Close()
            return scanErr
        }
        roomIDs = append(roomIDs, id)
    }
    // Releasing from a partial room list would leave rooms stuck in
    // "reserved"; surface the read error instead.
    if err = rows.Err(); err != nil {
        rows.Close()
        return err
    }
    if err = rows.Close(); err != nil {
        return err
    }

    if _, err = tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE res_id = ?`, status, resID); err != nil {
        return err
    }
    if len(roomIDs) > 0 {
        updQ := `UPDATE rooms SET status = ? WHERE room_id IN (` + placeholderList(len(roomIDs)) + `)`
        updArgs := make([]interface{}, 0, len(roomIDs)+1)
        updArgs = append(updArgs, model.RoomAvailable)
        for _, id := range roomIDs {
            updArgs = append(updArgs, id)
        }
        if _, err = tx.ExecContext(ctx, updQ, updArgs...); err != nil {
            return err
        }
    }

    if err = tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// AddPayment accumulates a payment onto a reservation:
// payment_cents = payment_cents + amountCents.  The caller validates
// that amountCents is positive, which also makes RowsAffected a
// reliable existence signal (adding a positive amount always changes
// the row).
func (r *ReservationRepo) AddPayment(ctx context.Context, resID uint64, amountCents int64) error {
    result, err := r.db.ExecContext(ctx,
        `UPDATE reservations SET payment_cents = payment_cents + ? WHERE res_id = ?`,
        amountCents, resID)
    if err != nil {
        return err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrReservationNotFound
    }
    return nil
}

// GetByID returns a single reservation row.  When no reservation with
// the given ID exists, sql.ErrNoRows is returned.
func (r *ReservationRepo) GetByID(ctx context.Context, resID uint64) (model.Reservation, error) {
    const q = `SELECT res_id, guest_id, emp_id, check_in, check_out, booking_date,
                      num_people, status, total_cost_cents, payment_cents, discount_cents
               FROM reservations WHERE res_id = ?`
    var res model.Reservation
    err := r.db.QueryRowContext(ctx, q, resID).Scan(
        &res.ID, &res.GuestID, &res.EmployeeID, &res.CheckIn, &res.CheckOut, &res.BookingDate,
        &res.NumPeople, &res.Status, &res.TotalCostCents, &res.PaymentCents, &res.DiscountCents,
    )
    return res, err
}

// RoomIDsFor returns the room numbers linked to a reservation in
// ascending order.  A reservation with no links yields an empty slice.
func (r *ReservationRepo) RoomIDsFor(ctx context.Context, resID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT room_id FROM reservation_rooms WHERE res_id = ? ORDER BY room_id`, resID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    ids := make([]uint64, 0)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}

// ReservationSummary is the joined view of a reservation used by the
// dashboard listing and the bot.  Dates are formatted YYYY-MM-DD.
type ReservationSummary struct {
    ID               uint64   `json:"id"`
    GuestID          uint64   `json:"guest_id"`
    GuestName        string   `json:"guest_name"`
    GuestFamily      string   `json:"guest_family"`
    EmployeeID       uint64   `json:"employee_id"`
    EmployeeUsername string   `json:"employee_username"`
    CheckIn          string   `json:"check_in"`
    CheckOut         string   `json:"check_out"`
    NumPeople        uint32   `json:"num_people"`
    Status           string   `json:"status"`
    TotalCostCents   int64    `json:"total_cost_cents"`
    PaymentCents     int64    `json:"payment_cents"`
    DiscountCents    int64    `json:"discount_cents"`
    RoomIDs          []uint64 `json:"room_ids"`
}

// ListActive returns all active reservations joined with guest and
// employee names, newest first, with their room numbers populated.
// When no active reservations exist, an empty slice is returned.
func (r *ReservationRepo) ListActive(ctx context.Context) ([]ReservationSummary, error) {
    const q = `SELECT r.res_id, r.guest_id, g.name, g.family,
                      r.emp_id, e.username,
                      r.check_in, r.check_out, r.num_people, r.status,
                      r.total_cost_cents, r.payment_cents, r.discount_cents
               FROM reservations r
               JOIN guests g ON g.guest_id = r.guest_id
               JOIN employees e ON e.emp_id = r.emp_id
               WHERE r.status = ?
               ORDER BY r.res_id DESC`
    rows, err := r.db.QueryContext(ctx, q, model.ReservationActive)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    summaries := make([]ReservationSummary, 0)
    // Keep track of index by reservation ID for room population.
    index := make(map[uint64]int)
    for rows.Next() {
        var s ReservationSummary
        var checkIn, checkOut time.Time
        if err := rows.Scan(
            &s.ID, &s.GuestID, &s.GuestName, &s.GuestFamily,
            &s.EmployeeID, &s.EmployeeUsername,
            &checkIn, &checkOut, &s.NumPeople, &s.Status,
            &s.TotalCostCents, &s.PaymentCents, &s.DiscountCents,
        ); err != nil {
            return nil, err
        }
        s.CheckIn = checkIn.Format("2006-01-02")
        s.CheckOut = checkOut.Format("2006-01-02")
        s.RoomIDs = []uint64{}
        index[s.ID] = len(summaries)
        summaries = append(summaries, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(summaries) == 0 {
        return summaries, nil
    }
    // Fetch rooms for all reservations in one query.
    ids := make([]interface{}, 0, len(summaries))
    for _, s := range summaries {
        ids = append(ids, s.ID)
    }
    roomQ := `SELECT res_id, room_id FROM reservation_rooms
              WHERE res_id IN (` + placeholderList(len(summaries)) + `)
              ORDER BY res_id, room_id`
    rrows, err := r.db.QueryContext(ctx, roomQ, ids...)
    if err != nil {
        return nil, err
    }
    defer rrows.Close()
    for rrows.Next() {
        var resID, roomID uint64
        if err := rrows.Scan(&resID, &roomID); err != nil {
            return nil, err
        }
        idx, ok := index[resID]
        if !ok {
            continue
        }
        summaries[idx].RoomIDs = append(summaries[idx].RoomIDs, roomID)
    }
    if err := rrows.Err(); err != nil {
        return nil, err
    }
    return summaries, nil
}
