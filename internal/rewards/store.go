package rewards

import "context"

// Store persists one serialized redemption ledger per user key.
// Get returns (nil, nil) when no ledger exists yet.
type Store interface {
	Get(ctx context.Context, userKey string) ([]byte, error)
	Set(ctx context.Context, userKey string, value []byte) error
}
