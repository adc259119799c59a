package utils

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcrypt only reads the first 72 bytes of its input.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher hashes and verifies passwords with bcrypt. Calls are CPU bound, so
// at most `workers` of them run at once.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewHasher(cost, workers int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash returns a salted bcrypt digest. Two calls with the same input never
// return the same digest.
func (h *Hasher) Hash(ctx context.Context, pw string) (string, error) {
	if len(pw) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify reports whether pw hashes to digest. A malformed digest or a
// password longer than MaxPasswordBytes is a mismatch; the error is non-nil
// only when ctx ends before a worker slot frees up.
func (h *Hasher) Verify(ctx context.Context, pw, digest string) (bool, error) {
	// bcrypt ignores bytes past 72, so a longer input could match a digest
	// of its own prefix.
	if len(pw) > MaxPasswordBytes {
		return false, nil
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(pw)) == nil, nil
}
