package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists/validates refresh tokens for employees (single
// 'token_hash' column in the employee_tokens table).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, empID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO employee_tokens (emp_id, token_hash, expires_at) VALUES (?,?,?)",
		empID, tokenHash, exp)
	return err
}

// ValidateRefresh returns the employee ID if a non-revoked, non-expired
// token exists.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		empID     uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT emp_id, expires_at, revoked_at FROM employee_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&empID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, sql.ErrNoRows
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return empID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE employee_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForEmployee revokes all of an employee's active tokens.
func (r *TokenRepo) RevokeAllForEmployee(ctx context.Context, empID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE employee_tokens SET revoked_at=NOW() WHERE emp_id=? AND revoked_at IS NULL",
		empID)
	return err
}
