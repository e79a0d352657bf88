package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/sabahotel/backoffice/internal/model"
)

// fakeStore is an in-memory CredentialStore for authenticator tests.
type fakeStore struct {
	byUsername  map[string]model.Employee
	updateErr   error
	updateCalls int
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (model.Employee, error) {
	emp, ok := f.byUsername[username]
	if !ok {
		return model.Employee{}, sql.ErrNoRows
	}
	return emp, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, empID uint64, record string) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for k, e := range f.byUsername {
		if e.ID == empID {
			e.Password = record
			f.byUsername[k] = e
		}
	}
	return nil
}

func TestAuthenticateUnknownUser(t *testing.T) {
	a := NewAuthenticator(&fakeStore{byUsername: map[string]model.Employee{}})
	_, err := a.Authenticate(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	rec, err := HashSecret("right")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	store := &fakeStore{byUsername: map[string]model.Employee{
		"sara": {ID: 7, Username: "sara", Password: rec},
	}}
	a := NewAuthenticator(store)
	if _, err := a.Authenticate(context.Background(), "sara", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if store.updateCalls != 0 {
		t.Errorf("UpdatePassword called %d times on failed login", store.updateCalls)
	}
}

func TestAuthenticateEmptyInputs(t *testing.T) {
	a := NewAuthenticator(&fakeStore{byUsername: map[string]model.Employee{}})
	for _, pair := range [][2]string{{"", "pw"}, {"sara", ""}, {"", ""}, {"   ", "pw"}} {
		if _, err := a.Authenticate(context.Background(), pair[0], pair[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) err = %v, want ErrInvalidCredentials", pair[0], pair[1], err)
		}
	}
}

func TestAuthenticateHashedRecordNoUpgrade(t *testing.T) {
	rec, err := HashSecret("pass123")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	store := &fakeStore{byUsername: map[string]model.Employee{
		"sara": {ID: 7, Username: "sara", Password: rec},
	}}
	a := NewAuthenticator(store)
	emp, err := a.Authenticate(context.Background(), "sara", "pass123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if emp.ID != 7 {
		t.Errorf("emp.ID = %d, want 7", emp.ID)
	}
	if store.updateCalls != 0 {
		t.Errorf("UpdatePassword called %d times for an already-hashed record", store.updateCalls)
	}
}

func TestAuthenticateLegacyUpgrade(t *testing.T) {
	store := &fakeStore{byUsername: map[string]model.Employee{
		"admin": {ID: 1, Username: "admin", Password: "admin123"},
	}}
	a := NewAuthenticator(store)
	emp, err := a.Authenticate(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if store.updateCalls != 1 {
		t.Fatalf("UpdatePassword called %d times, want 1", store.updateCalls)
	}
	upgraded := store.byUsername["admin"].Password
	if !IsHashedRecord(upgraded) {
		t.Fatalf("stored record not upgraded: %q", upgraded)
	}
	if !VerifySecret(upgraded, "admin123") {
		t.Error("upgraded record does not verify the original secret")
	}
	if emp.Password != upgraded {
		t.Error("returned employee still carries the legacy record")
	}
	// Second login goes through the hashed path; no further upgrade.
	if _, err := a.Authenticate(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("second Authenticate: %v", err)
	}
	if store.updateCalls != 1 {
		t.Errorf("UpdatePassword called %d times after second login, want 1", store.updateCalls)
	}
}

func TestAuthenticateLegacyUpgradePersistFailure(t *testing.T) {
	store := &fakeStore{
		byUsername: map[string]model.Employee{
			"admin": {ID: 1, Username: "admin", Password: "admin123"},
		},
		updateErr: errors.New("store is read-only"),
	}
	a := NewAuthenticator(store)
	emp, err := a.Authenticate(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate: %v, want success despite persist failure", err)
	}
	if emp.ID != 1 {
		t.Errorf("emp.ID = %d, want 1", emp.ID)
	}
	if store.byUsername["admin"].Password != "admin123" {
		t.Error("stored record changed despite update error")
	}
}
