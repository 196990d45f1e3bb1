// Package cryptox implements password hashing for the credential store.
//
// Hashes are self-describing strings: bcrypt records carry their "$2a$"
// style prefix and cost, argon2id records use the PHC string format
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// so Verify can check a record produced under any supported algorithm,
// whatever the hasher is currently configured to produce.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm selects the scheme used for new hashes.
type Algorithm string

const (
	Bcrypt   Algorithm = "bcrypt"
	Argon2id Algorithm = "argon2id"
)

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

// DefaultArgon2Params match the parameters used for key derivation
// elsewhere in the codebase: one pass, 64 MiB, four lanes.
var DefaultArgon2Params = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}

// upper bounds accepted from stored records
const (
	maxArgonMemory  = 1 << 20
	maxArgonTime    = 16
	maxArgonKeyLen  = 128
	argon2idVersion = argon2.Version
)

// PasswordHasher produces and checks salted, algorithm-tagged password
// hashes. It is safe for concurrent use.
type PasswordHasher struct {
	algo       Algorithm
	bcryptCost int
	argon      Argon2Params

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordHasher returns a hasher producing algo hashes with default costs.
func NewPasswordHasher(algo Algorithm) (*PasswordHasher, error) {
	switch algo {
	case Bcrypt, Argon2id:
	case "":
		algo = Bcrypt
	default:
		return nil, fmt.Errorf("unsupported password hash algorithm %q", algo)
	}
	return &PasswordHasher{algo: algo, bcryptCost: bcrypt.DefaultCost, argon: DefaultArgon2Params}, nil
}

// WithBcryptCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (h *PasswordHasher) WithBcryptCost(cost int) *PasswordHasher {
	h.bcryptCost = cost
	return h
}

// withArgon2Params overrides the argon2id parameters; tests use it for
// cheap hashes.
func (h *PasswordHasher) withArgon2Params(p Argon2Params) *PasswordHasher {
	h.argon = p
	return h
}

func (h *PasswordHasher) Algorithm() Algorithm {
	return h.algo
}

// Hash returns a fresh hash of password. Two calls with the same input
// return different records because each uses a new random salt.
// bcrypt rejects passwords longer than 72 bytes.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algo == Argon2id {
		return h.hashArgon2id(password), nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify reports whether password matches record. Malformed records and
// unknown algorithms simply do not match.
func (h *PasswordHasher) Verify(password, record string) bool {
	switch {
	case strings.HasPrefix(record, "$2a$"), strings.HasPrefix(record, "$2b$"), strings.HasPrefix(record, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(record), []byte(password)) == nil
	case strings.HasPrefix(record, "$argon2id$"):
		return verifyArgon2id(password, record)
	default:
		return false
	}
}

// VerifyDummy spends the same work as a real verification against a
// throwaway hash. Login calls it for unknown emails so response time does
// not reveal whether an account exists.
func (h *PasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		d, err := h.Hash(hex.EncodeToString(common.GenerateRandByteArray(16)))
		if err == nil {
			h.dummy = d
		}
	})
	_ = h.Verify(password, h.dummy)
}

func (h *PasswordHasher) hashArgon2id(password string) string {
	p := h.argon
	salt := common.GenerateRandByteArray(p.SaltLen)
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idVersion, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func verifyArgon2id(password, record string) bool {
	parts := strings.Split(record, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2idVersion {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory == 0 || memory > maxArgonMemory || time == 0 || time > maxArgonTime || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxArgonKeyLen {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// ErrPasswordTooLong is returned by Hash for bcrypt inputs over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
