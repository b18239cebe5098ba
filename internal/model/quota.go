package model

import (
	"context"

	"github.com/google/uuid"
)

// QuotaLedger answers whether a user may store more bytes personally and
// maintains the running total. Reserve is linearizable per user: two
// concurrent reservations never both succeed when their combined size
// exceeds the remaining quota.
type QuotaLedger interface {
	Reserve(ctx context.Context, userID uuid.UUID, bytes int64) error
	Release(ctx context.Context, userID uuid.UUID, bytes int64)
	Usage(ctx context.Context, userID uuid.UUID) (int64, error)
	Limit(ctx context.Context, userID uuid.UUID) (int64, error)
}
