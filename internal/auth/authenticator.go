package auth

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "strings"

    "github.com/sabahotel/backoffice/internal/model"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// secrets alike, so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialStore is the slice of the employee store the authenticator
// needs: a lookup by login name and a way to persist an upgraded
// credential record.  *repository.EmployeeRepo satisfies it.
type CredentialStore interface {
    GetByUsername(ctx context.Context, username string) (model.Employee, error)
    UpdatePassword(ctx context.Context, empID uint64, record string) error
}

// Authenticator verifies staff logins against the credential store and
// transparently upgrades legacy plain-text records to hashed ones.
type Authenticator struct {
    store CredentialStore
}

// NewAuthenticator returns an Authenticator backed by the given store.
func NewAuthenticator(store CredentialStore) *Authenticator {
    return &Authenticator{store: store}
}

// Authenticate resolves a username/secret pair to an employee.  When
// verification succeeds against a legacy record (stored secret exactly
// equal to the presented one), the record is re-hashed and persisted.
// The upgrade is best-effort: a persist failure is logged and the
// login still succeeds.
func (a *Authenticator) Authenticate(ctx context.Context, username, secret string) (model.Employee, error) {
    username = strings.TrimSpace(username)
    if username == "" || secret == "" {
        return model.Employee{}, ErrInvalidCredentials
    }
    emp, err := a.store.GetByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Employee{}, ErrInvalidCredentials
        }
        return model.Employee{}, err
    }
    if !VerifySecret(emp.Password, secret) {
        return model.Employee{}, ErrInvalidCredentials
    }
    if emp.Password == secret {
        // Legacy record; upgrade in place.
        record, hashErr := HashSecret(secret)
        if hashErr == nil {
            if upErr := a.store.UpdatePassword(ctx, emp.ID, record); upErr != nil {
                log.Printf("auth: credential upgrade for %q failed: %v", username, upErr)
            } else {
                emp.Password = record
            }
        }
    }
    return emp, nil
}
