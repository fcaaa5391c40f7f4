package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecospot/internal/logger"
	"ecospot/internal/metrics"
)

// ErrLedgerAppendFailed marks a redemption that credited the wallet but
// could not be written to the ledger. The credit stands; the record is
// lost until reconciliation.
var ErrLedgerAppendFailed = errors.New("ledger append failed")

// Ledger is an append-only log of redemptions, one per user key.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Load reads a user's redemption history. A missing ledger is an empty
// one. A ledger that no longer parses is treated as empty too, with a
// log line and a metric, so a single corrupt blob cannot lock a user out
// of the rewards surface.
func (l *Ledger) Load(ctx context.Context, userKey string) ([]RedemptionRecord, error) {
	raw, err := l.store.Get(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if len(raw) == 0 {
		return []RedemptionRecord{}, nil
	}

	var records []RedemptionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Error("redemption ledger corrupt, treating as empty", "user_key", userKey, "error", err)
		metrics.RecordLedgerCorruption()
		return []RedemptionRecord{}, nil
	}

	return records, nil
}

// Append adds a record to the user's ledger with a read-modify-write.
func (l *Ledger) Append(ctx context.Context, userKey string, rec RedemptionRecord) error {
	records, err := l.Load(ctx, userKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerAppendFailed, err)
	}

	records = append(records, rec)

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerAppendFailed, err)
	}

	if err := l.store.Set(ctx, userKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerAppendFailed, err)
	}

	return nil
}

// RedeemedPoints sums every point ever redeemed, across both kinds.
func (l *Ledger) RedeemedPoints(ctx context.Context, userKey string) (int, error) {
	records, err := l.Load(ctx, userKey)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, rec := range records {
		total += rec.Points
	}
	return total, nil
}

// WalletPointsInMonth sums wallet-kind conversions whose timestamp falls
// in the same UTC calendar month as now. Records with timestamps that no
// longer parse are skipped.
func (l *Ledger) WalletPointsInMonth(ctx context.Context, userKey string, now time.Time) (int, error) {
	records, err := l.Load(ctx, userKey)
	if err != nil {
		return 0, err
	}

	nowUTC := now.UTC()
	total := 0
	for _, rec := range records {
		if rec.Kind != KindWallet {
			continue
		}
		t, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			continue
		}
		t = t.UTC()
		if t.Year() == nowUTC.Year() && t.Month() == nowUTC.Month() {
			total += rec.Points
		}
	}
	return total, nil
}
