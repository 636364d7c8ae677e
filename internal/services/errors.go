// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Domain error kinds. Handlers map these to machine-readable response codes;
// ErrStoreUnavailable is the only kind a caller should retry.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrClaimNotFound         = errors.New("claim not found")
	ErrSlugTaken             = errors.New("profile slug already in use")
	ErrAlreadyClaimed        = errors.New("profile is already claimed")
	ErrDuplicatePendingClaim = errors.New("a pending claim already exists for this profile")
	ErrClaimNotPending       = errors.New("claim has already been decided")
	ErrForbidden             = errors.New("admin privilege required")
	ErrNotOwner              = errors.New("caller does not own this profile")
	ErrStoreUnavailable      = errors.New("record store temporarily unavailable")
)

// isUniqueViolation recognizes unique-constraint failures across the backends
// we run against: gorm's translated error, a raw lib/pq error from direct SQL,
// and the sqlite test database.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// storeError passes domain errors through untouched and wraps everything else
// as a retryable store failure.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	for _, domain := range []error{
		ErrUserNotFound, ErrProfileNotFound, ErrClaimNotFound, ErrSlugTaken,
		ErrAlreadyClaimed, ErrDuplicatePendingClaim, ErrClaimNotPending,
		ErrForbidden, ErrNotOwner,
	} {
		if errors.Is(err, domain) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
