package quota

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

var _ model.QuotaLedger = (*Ledger)(nil)

// Ledger tracks per-user personal storage consumption against each user's
// limit. Reservation is the linearization point for quota admission: each
// user has a dedicated mutex, so reserve-and-check is a single atomic step
// and usage never exceeds the limit under concurrent uploads.
//
// Counters are hydrated from the user store on first touch and persisted
// write-through. A failed persist aborts the reservation, so in-memory and
// durable state never diverge in the direction that would admit an
// over-quota upload.
type Ledger struct {
	users  model.UserStore
	logger *logger.Logger

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

type entry struct {
	mu       sync.Mutex
	hydrated bool
	used     int64
	limit    int64
}

// NewLedger creates a Ledger backed by the given user store.
func NewLedger(users model.UserStore, logger *logger.Logger) *Ledger {
	return &Ledger{
		users:   users,
		logger:  logger,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Reserve atomically admits bytes against the user's remaining quota.
// Returns model.ErrInvalidSize for a negative byte count,
// model.ErrQuotaExceeded when usage + bytes would pass the limit,
// model.ErrNotFound when the user does not exist.
func (l *Ledger) Reserve(ctx context.Context, userID uuid.UUID, bytes int64) error {
	if bytes < 0 {
		return fmt.Errorf("%w: negative reservation of %d bytes", model.ErrInvalidSize, bytes)
	}

	e := l.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.hydrate(ctx, e, userID); err != nil {
		return err
	}

	if e.used+bytes > e.limit {
		return model.ErrQuotaExceeded
	}

	if err := l.users.UpdateStorageUsed(ctx, userID, e.used+bytes); err != nil {
		return fmt.Errorf("%w: failed to persist reservation: %v", model.ErrStorageIO, err)
	}

	e.used += bytes
	return nil
}

// Release returns bytes to the user's quota. It never fails: usage is
// clamped at zero, and a clamp is logged as a warning since releasing more
// than was reserved is a caller bug.
func (l *Ledger) Release(ctx context.Context, userID uuid.UUID, bytes int64) {
	if bytes < 0 {
		l.logger.Warn("ignoring negative quota release", "user_id", userID, "bytes", bytes)
		return
	}

	e := l.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.hydrate(ctx, e, userID); err != nil {
		l.logger.Error("failed to hydrate ledger entry for release", "user_id", userID, "error", err)
		return
	}

	next := e.used - bytes
	if next < 0 {
		l.logger.Warn("quota release exceeds recorded usage, clamping to zero",
			"user_id", userID, "used", e.used, "released", bytes)
		next = 0
	}

	// Memory stays authoritative even if the write-through fails; the
	// next successful persist converges the stored counter.
	if err := l.users.UpdateStorageUsed(ctx, userID, next); err != nil {
		l.logger.Error("failed to persist quota release", "user_id", userID, "error", err)
	}

	e.used = next
}

// Usage reports the user's current personal storage consumption in bytes.
func (l *Ledger) Usage(ctx context.Context, userID uuid.UUID) (int64, error) {
	e := l.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.hydrate(ctx, e, userID); err != nil {
		return 0, err
	}
	return e.used, nil
}

// Limit reports the user's personal storage ceiling in bytes.
func (l *Ledger) Limit(ctx context.Context, userID uuid.UUID) (int64, error) {
	e := l.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := l.hydrate(ctx, e, userID); err != nil {
		return 0, err
	}
	return e.limit, nil
}

func (l *Ledger) entryFor(userID uuid.UUID) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[userID]
	if !ok {
		e = &entry{}
		l.entries[userID] = e
	}
	return e
}

// hydrate loads the counters from the user store once per entry. Called
// with e.mu held.
func (l *Ledger) hydrate(ctx context.Context, e *entry, userID uuid.UUID) error {
	if e.hydrated {
		return nil
	}

	user, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	e.used = user.StorageUsed
	e.limit = user.StorageLimit
	e.hydrated = true
	return nil
}
