// Package password wraps bcrypt hashing behind a bounded worker gate.
// Hashing is deliberately CPU-expensive; the semaphore keeps a burst of
// logins from monopolizing the scheduler and starving request dispatch.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt at a fixed cost. At most
// maxConcurrent hash computations run at once; extra callers block.
type Hasher struct {
	cost int
	sem  chan struct{}
}

// sentinelHash is a valid bcrypt hash of a random throwaway value. It is
// compared against when no real hash exists so that missing-account paths
// pay the same hashing cost as real ones.
const sentinelHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// NewHasher creates a Hasher. Costs below bcrypt.MinCost fall back to
// bcrypt.DefaultCost; maxConcurrent below 1 falls back to 1.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, maxConcurrent),
	}
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Compare reports whether password matches hash. bcrypt's comparison is
// constant-time over the derived key.
func (h *Hasher) Compare(hash, password string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy burns one bcrypt comparison against the sentinel hash. Used
// to equalize timing on branches where no account exists.
func (h *Hasher) CompareDummy(password string) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	_ = bcrypt.CompareHashAndPassword([]byte(sentinelHash), []byte(password))
}
