package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sabahotel/backoffice/internal/model"
)

// GuestRepo provides data access to the guests, guest_phones and
// guest_addresses tables.
type GuestRepo struct{ DB *sql.DB }

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")
var ErrPhoneExists = errors.New("phone already registered for this guest")

const guestCols = "guest_id,name,family,national_id,passport,birthdate,email"

func scanGuest(row interface{ Scan(...interface{}) error }) (model.Guest, error) {
	var g model.Guest
	var nationalID, passport sql.NullString
	err := row.Scan(&g.ID, &g.Name, &g.Family, &nationalID, &passport, &g.Birthdate, &g.Email)
	if err != nil {
		return g, err
	}
	if nationalID.Valid {
		v := nationalID.String
		g.NationalID = &v
	}
	if passport.Valid {
		v := passport.String
		g.Passport = &v
	}
	return g, nil
}

// Create inserts a guest and returns its ID. A guest must carry a
// national id or a passport number; rows with neither are rejected
// with ErrGuestIdentity before touching the store.
func (r *GuestRepo) Create(ctx context.Context, g model.Guest) (uint64, error) {
	if g.NationalID == nil && g.Passport == nil {
		return 0, ErrGuestIdentity
	}
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guests (name, family, national_id, passport, birthdate, email) VALUES (?,?,?,?,?,?)",
		g.Name, g.Family, g.NationalID, g.Passport, g.Birthdate.Format("2006-01-02"), g.Email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a guest by id.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (model.Guest, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+guestCols+" FROM guests WHERE guest_id=? LIMIT 1", id)
	return scanGuest(row)
}

// List returns all guests ordered by id.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+guestCols+" FROM guests ORDER BY guest_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes a guest. Phones and addresses cascade; reservations
// referencing the guest block the delete with a foreign key error.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM guests WHERE guest_id=?", id)
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

// AddPhone attaches a phone number to a guest.
func (r *GuestRepo) AddPhone(ctx context.Context, guestID uint64, phone string) (uint64, error) {
	phone = strings.TrimSpace(phone)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guest_phones (guest_id, phone) VALUES (?,?)", guestID, phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListPhones returns a guest's phone numbers ordered by insertion.
func (r *GuestRepo) ListPhones(ctx context.Context, guestID uint64) ([]model.GuestPhone, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT phone_id, guest_id, phone FROM guest_phones WHERE guest_id=? ORDER BY phone_id", guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.GuestPhone, 0)
	for rows.Next() {
		var p model.GuestPhone
		if err := rows.Scan(&p.ID, &p.GuestID, &p.Phone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePhone removes a single phone row.
func (r *GuestRepo) DeletePhone(ctx context.Context, phoneID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM guest_phones WHERE phone_id=?", phoneID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddAddress attaches a postal address to a guest.
func (r *GuestRepo) AddAddress(ctx context.Context, a model.GuestAddress) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guest_addresses (guest_id, province, city, street, plaque) VALUES (?,?,?,?,?)",
		a.GuestID, a.Province, a.City, a.Street, a.Plaque)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAddresses returns a guest's addresses ordered by insertion.
func (r *GuestRepo) ListAddresses(ctx context.Context, guestID uint64) ([]model.GuestAddress, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT address_id, guest_id, province, city, street, plaque FROM guest_addresses WHERE guest_id=? ORDER BY address_id", guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.GuestAddress, 0)
	for rows.Next() {
		var a model.GuestAddress
		if err := rows.Scan(&a.ID, &a.GuestID, &a.Province, &a.City, &a.Street, &a.Plaque); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAddress removes a single address row.
func (r *GuestRepo) DeleteAddress(ctx context.Context, addressID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM guest_addresses WHERE address_id=?", addressID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
