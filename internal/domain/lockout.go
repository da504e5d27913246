package domain

import "time"

const (
	// DefaultFailedThreshold is the number of consecutive failures that
	// transitions an account to LOCKED.
	DefaultFailedThreshold = 5
	// DefaultLockoutCooldown is how long a lock holds before lazy recovery.
	DefaultLockoutCooldown = 5 * time.Minute
)

// UnlockDue reports whether a lock taken at lockedAt has outlived the
// cooldown. There is no background sweep; callers evaluate this at the top
// of every credential-check path and persist the result.
func UnlockDue(now time.Time, lockedAt *time.Time, cooldown time.Duration) bool {
	if lockedAt == nil {
		return false
	}
	return !now.Before(lockedAt.Add(cooldown))
}

// EvaluateLazyUnlock applies the timed LOCKED -> UNLOCKED transition in
// place. It returns true when the account state changed and must be
// persisted before the caller continues.
func (a *Account) EvaluateLazyUnlock(now time.Time, cooldown time.Duration) bool {
	if !a.Locked {
		return false
	}
	if !UnlockDue(now, a.LockedAt, cooldown) {
		return false
	}
	a.Locked = false
	a.LockedAt = nil
	a.FailedAttempts = 0
	return true
}

// RecordFailedAttempt increments the failure counter and, when the threshold
// is reached, takes the lock. Returns true when this attempt locked the
// account.
func (a *Account) RecordFailedAttempt(now time.Time, threshold int) bool {
	a.FailedAttempts++
	if a.FailedAttempts < threshold {
		return false
	}
	a.FailedAttempts = threshold
	a.Locked = true
	at := now
	a.LockedAt = &at
	return true
}

// ClearLockout resets all failure state. A successful credential check
// clears the counter from any state, including counts below the threshold.
func (a *Account) ClearLockout() {
	a.FailedAttempts = 0
	a.Locked = false
	a.LockedAt = nil
}
