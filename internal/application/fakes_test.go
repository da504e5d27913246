package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akararkan/khi-backend-sub000/internal/domain"
	"github.com/akararkan/khi-backend-sub000/internal/ports"
	"github.com/google/uuid"
)

// In-memory fakes for the service's ports. They implement just enough
// behavior for the workflows under test and are safe for the sequential use
// the tests make of them.

type fakeAccountRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1, rows: map[int64]domain.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, p ports.AccountCreateParams) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Username == p.Username {
			return domain.Account{}, domain.ErrDuplicateUsername
		}
		if a.Email == p.Email {
			return domain.Account{}, domain.ErrDuplicateEmail
		}
	}
	a := domain.Account{
		ID:                f.nextID,
		Username:          p.Username,
		Email:             p.Email,
		PasswordHash:      p.PasswordHash,
		Role:              p.Role,
		Enabled:           p.Enabled,
		PasswordExpiresAt: p.PasswordExpiresAt,
		CreatedAt:         p.CreatedAtUTC,
		UpdatedAt:         p.CreatedAtUTC,
	}
	f.rows[a.ID] = a
	f.nextID++
	return a, nil
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrNotFound
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id int64) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAccountRepo) SaveLockState(_ context.Context, id int64, failed int, locked bool, lockedAt *time.Time, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.FailedAttempts = failed
	a.Locked = locked
	a.LockedAt = lockedAt
	a.UpdatedAt = at
	f.rows[id] = a
	return nil
}

func (f *fakeAccountRepo) SetResetToken(_ context.Context, id int64, token string, expiresAt time.Time, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.ResetToken = &token
	a.ResetTokenExpiresAt = &expiresAt
	a.UpdatedAt = at
	f.rows[id] = a
	return nil
}

func (f *fakeAccountRepo) CompleteReset(_ context.Context, id int64, hash string, passwordExpiresAt time.Time, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	a.PasswordExpiresAt = passwordExpiresAt
	a.ResetToken = nil
	a.ResetTokenExpiresAt = nil
	a.UpdatedAt = at
	f.rows[id] = a
	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeSessionRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: map[uuid.UUID]domain.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, p ports.SessionCreateParams) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.Session{
		SessionID: uuid.New(),
		AccountID: p.AccountID,
		Device:    p.Device,
		IPAddress: p.IPAddress,
		IssuedAt:  p.IssuedAt,
		ExpiresAt: p.ExpiresAt,
		Active:    true,
	}
	f.rows[s.SessionID] = s
	return s, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) ListActiveByAccount(_ context.Context, accountID int64) ([]domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Session
	for _, s := range f.rows {
		if s.AccountID == accountID && s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Active {
		s.Active = false
		s.LogoutAt = &at
		f.rows[id] = s
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllByAccount(_ context.Context, accountID int64, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.rows {
		if s.AccountID == accountID && s.Active {
			s.Active = false
			s.LogoutAt = &at
			f.rows[id] = s
			n++
		}
	}
	return n, nil
}

type fakeBlacklistRepo struct {
	mu   sync.Mutex
	rows map[string]time.Time
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{rows: map[string]time.Time{}}
}

func (f *fakeBlacklistRepo) Insert(_ context.Context, token string, _, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[token]; !ok {
		f.rows[token] = expiresAt
	}
	return nil
}

func (f *fakeBlacklistRepo) Contains(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[token]
	return ok, nil
}

func (f *fakeBlacklistRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for token, exp := range f.rows {
		if !exp.After(now) {
			delete(f.rows, token)
			n++
		}
	}
	return n, nil
}

type fakeAttemptRepo struct {
	mu   sync.Mutex
	rows []domain.LoginAttempt
}

func (f *fakeAttemptRepo) Insert(_ context.Context, a domain.LoginAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAttemptRepo) ListByAccount(_ context.Context, accountID int64, limit, offset int, since *time.Time, status string) ([]domain.LoginAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.LoginAttempt
	for i := len(f.rows) - 1; i >= 0; i-- {
		a := f.rows[i]
		if a.AccountID == nil || *a.AccountID != accountID {
			continue
		}
		if since != nil && a.AttemptAt.Before(*since) {
			continue
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		out = append(out, a)
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCache struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]bool
	tokens   map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{sessions: map[uuid.UUID]bool{}, tokens: map[string]bool{}}
}

func (f *fakeCache) MarkSessionRevoked(_ context.Context, id uuid.UUID, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = true
	return nil
}

func (f *fakeCache) IsSessionRevoked(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id], nil
}

func (f *fakeCache) MarkTokenBlacklisted(_ context.Context, token string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = true
	return nil
}

func (f *fakeCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[token], nil
}

// fakeHasher uses a reversible marker instead of a real KDF so tests stay
// fast. compareCalls lets tests assert that locked accounts skip the
// password check entirely.
type fakeHasher struct {
	compareCalls int
}

func (f *fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (f *fakeHasher) Compare(hash, plain string) error {
	f.compareCalls++
	if hash != "hashed:"+plain {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeSigner issues opaque handles into an in-memory claim table. Temporal
// validation runs against the fixture clock so tests can advance time.
type fakeSigner struct {
	mu     sync.Mutex
	nextID int
	issued map[string]ports.AuthClaims
	now    func() time.Time
}

func newFakeSigner(now func() time.Time) *fakeSigner {
	return &fakeSigner{nextID: 1, issued: map[string]ports.AuthClaims{}, now: now}
}

func (f *fakeSigner) Sign(claims ports.AuthClaims) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := fmt.Sprintf("token-%d", f.nextID)
	f.nextID++
	f.issued[token] = claims
	return token, nil
}

func (f *fakeSigner) ParseAndValidate(token string) (ports.AuthClaims, error) {
	claims, err := f.Decode(token)
	if err != nil {
		return ports.AuthClaims{}, err
	}
	if !f.now().Before(claims.ExpiresAt) {
		return ports.AuthClaims{}, domain.ErrTokenExpired
	}
	return claims, nil
}

func (f *fakeSigner) Decode(token string) (ports.AuthClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.issued[token]
	if !ok {
		return ports.AuthClaims{}, domain.ErrInvalidToken
	}
	return claims, nil
}
