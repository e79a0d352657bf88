package model

import "time"

// Employee represents a staff account as stored in the `employees`
// table.  The json tags are omitted here because these structs are
// primarily used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// The Password column holds either a salted PBKDF2 record (192 hex
// characters) or, for accounts created before hashing was introduced,
// the plain secret.  Legacy records are upgraded in place on the
// first successful login; see internal/auth.
//
// Fields:
//  ID          – primary key identifier of the employee.
//  Name        – given name.
//  Family      – family name.
//  NationalID  – unique national identity number.
//  Birthdate   – date of birth.
//  Position    – job title (receptionist, manager, ...).
//  Username    – unique login name.
//  Password    – stored credential record (hashed or legacy plain).
//  AccessLevel – permission tier, 1 (lowest) through 5 (admin).
type Employee struct {
    ID          uint64    // employees.emp_id
    Name        string    // employees.name
    Family      string    // employees.family
    NationalID  string    // employees.national_id
    Birthdate   time.Time // employees.birthdate
    Position    string    // employees.position
    Username    string    // employees.username
    Password    string    // employees.password
    AccessLevel uint8     // employees.access_level
}

// RefreshToken models an entry in the `employee_tokens` table.  Each
// refresh token belongs to an employee and contains metadata for
// expiry and revocation.  The plain token is not stored; only its
// SHA-256 hash.
type RefreshToken struct {
    ID         uint64     // employee_tokens.id
    EmployeeID uint64     // employee_tokens.emp_id
    TokenHash  string     // employee_tokens.token_hash
    ExpiresAt  time.Time  // employee_tokens.expires_at
    RevokedAt  *time.Time // employee_tokens.revoked_at (nullable)
    CreatedAt  time.Time  // employee_tokens.created_at
}
