package auth // package auth implements the credential scheme and login flow

import (
    "crypto/rand"   // secure random salt generation
    "crypto/sha512" // PBKDF2 pseudo-random function
    "crypto/subtle" // constant-time digest comparison
    "encoding/hex"  // hex encoding of salts and derived keys
    "strings"

    "golang.org/x/crypto/pbkdf2" // key derivation for stored credentials
)

// Stored credential records are a single hex string: the first 64
// characters are the salt, the remainder is the derived key.  Both
// halves are produced lowercase; verification tolerates uppercase in
// the derived half.
const (
    saltHexLen    = 64     // 32 random bytes, hex encoded
    iterations    = 100000 // PBKDF2 round count
    derivedKeyLen = 64     // bytes of derived key -> 128 hex chars
)

// HashSecret derives a fresh credential record for a plain secret.
// Each call uses a new random salt, so hashing the same secret twice
// yields different records.  The salt's hex form (not the raw bytes)
// feeds the derivation, which keeps records verifiable from the
// stored string alone.
func HashSecret(secret string) (string, error) {
    salt := make([]byte, saltHexLen/2)
    if _, err := rand.Read(salt); err != nil {
        return "", err
    }
    saltHex := hex.EncodeToString(salt)
    key := pbkdf2.Key([]byte(secret), []byte(saltHex), iterations, derivedKeyLen, sha512.New)
    return saltHex + hex.EncodeToString(key), nil
}

// IsHashedRecord reports whether a stored credential looks like a
// hashed record: at least as long as a salt and made up entirely of
// hex digits.  Anything else is treated as a legacy plain secret.
func IsHashedRecord(s string) bool {
    if len(s) < saltHexLen {
        return false
    }
    for i := 0; i < len(s); i++ {
        c := s[i]
        switch {
        case c >= '0' && c <= '9':
        case c >= 'a' && c <= 'f':
        case c >= 'A' && c <= 'F':
        default:
            return false
        }
    }
    return true
}

// VerifySecret checks a presented secret against a stored record.  An
// empty stored record never verifies.  Hashed records are re-derived
// with the embedded salt and compared in constant time; legacy plain
// records compare by direct string equality.
func VerifySecret(stored, presented string) bool {
    if stored == "" {
        return false
    }
    if IsHashedRecord(stored) {
        saltHex := stored[:saltHexLen]
        want := strings.ToLower(stored[saltHexLen:])
        key := pbkdf2.Key([]byte(presented), []byte(saltHex), iterations, derivedKeyLen, sha512.New)
        got := hex.EncodeToString(key)
        return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
    }
    return stored == presented
}
