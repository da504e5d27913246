package domain

import (
	"testing"
	"time"
)

func TestRecordFailedAttemptLocksAtThreshold(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := Account{}

	for i := 1; i < DefaultFailedThreshold; i++ {
		if locked := a.RecordFailedAttempt(now, DefaultFailedThreshold); locked {
			t.Fatalf("attempt %d should not lock", i)
		}
		if a.FailedAttempts != i {
			t.Fatalf("attempt %d: counter = %d", i, a.FailedAttempts)
		}
	}

	if locked := a.RecordFailedAttempt(now, DefaultFailedThreshold); !locked {
		t.Fatal("threshold attempt should lock")
	}
	if !a.Locked || a.LockedAt == nil || !a.LockedAt.Equal(now) {
		t.Fatalf("lock state after threshold: locked=%v lockedAt=%v", a.Locked, a.LockedAt)
	}
}

func TestRecordFailedAttemptCapsCounter(t *testing.T) {
	now := time.Now().UTC()
	a := Account{}
	for i := 0; i < DefaultFailedThreshold+3; i++ {
		a.RecordFailedAttempt(now, DefaultFailedThreshold)
	}
	if a.FailedAttempts != DefaultFailedThreshold {
		t.Fatalf("counter should cap at %d, got %d", DefaultFailedThreshold, a.FailedAttempts)
	}
}

func TestUnlockDue(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if UnlockDue(base, nil, DefaultLockoutCooldown) {
		t.Fatal("nil lockedAt should never be due")
	}
	lockedAt := base
	if UnlockDue(base.Add(DefaultLockoutCooldown-time.Second), &lockedAt, DefaultLockoutCooldown) {
		t.Fatal("unlock due before cooldown elapsed")
	}
	if !UnlockDue(base.Add(DefaultLockoutCooldown), &lockedAt, DefaultLockoutCooldown) {
		t.Fatal("unlock not due exactly at cooldown boundary")
	}
}

func TestEvaluateLazyUnlock(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lockedAt := base
	a := Account{Locked: true, LockedAt: &lockedAt, FailedAttempts: DefaultFailedThreshold}

	if a.EvaluateLazyUnlock(base.Add(time.Minute), DefaultLockoutCooldown) {
		t.Fatal("unlocked before cooldown")
	}
	if !a.Locked {
		t.Fatal("state must be untouched while cooldown is running")
	}

	if !a.EvaluateLazyUnlock(base.Add(DefaultLockoutCooldown+time.Second), DefaultLockoutCooldown) {
		t.Fatal("expected unlock after cooldown")
	}
	if a.Locked || a.LockedAt != nil || a.FailedAttempts != 0 {
		t.Fatalf("unlock must clear all failure state: %+v", a)
	}

	if a.EvaluateLazyUnlock(base.Add(time.Hour), DefaultLockoutCooldown) {
		t.Fatal("already-unlocked account reported a change")
	}
}
