package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sabahotel/backoffice/internal/auth"
	"github.com/sabahotel/backoffice/internal/model"
)

// EmployeeRepo provides data access to the 'employees' table. It also
// satisfies auth.CredentialStore so the authenticator can look up and
// upgrade stored credentials without depending on this package.
type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")

const employeeCols = "emp_id,name,family,national_id,birthdate,position,username,password,access_level"

// Create inserts an employee and returns its ID. The plain secret is
// hashed before it reaches the database.
func (r *EmployeeRepo) Create(ctx context.Context, e model.Employee, plainSecret string) (uint64, error) {
	e.Username = strings.TrimSpace(e.Username)
	record, err := auth.HashSecret(plainSecret)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (name, family, national_id, birthdate, position, username, password, access_level) VALUES (?,?,?,?,?,?,?,?)",
		e.Name, e.Family, e.NationalID, e.Birthdate.Format("2006-01-02"), e.Position, e.Username, record, e.AccessLevel)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an employee by login name.
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (model.Employee, error) {
	username = strings.TrimSpace(username)
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE username=? LIMIT 1",
		username).Scan(&e.ID, &e.Name, &e.Family, &e.NationalID, &e.Birthdate, &e.Position, &e.Username, &e.Password, &e.AccessLevel)
	return e, err
}

// GetByID fetches an employee by id.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE emp_id=? LIMIT 1",
		id).Scan(&e.ID, &e.Name, &e.Family, &e.NationalID, &e.Birthdate, &e.Position, &e.Username, &e.Password, &e.AccessLevel)
	return e, err
}

// UpdatePassword replaces the stored credential record. The record is
// expected to already be hashed (auth.HashSecret output); this method
// never hashes.
func (r *EmployeeRepo) UpdatePassword(ctx context.Context, empID uint64, record string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE employees SET password=? WHERE emp_id=?", record, empID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all employees ordered by id. Password records are
// included; handlers must not serialize them.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+employeeCols+" FROM employees ORDER BY emp_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Family, &e.NationalID, &e.Birthdate, &e.Position, &e.Username, &e.Password, &e.AccessLevel); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
