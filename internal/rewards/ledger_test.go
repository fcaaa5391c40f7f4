package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for ledger tests.
type memStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, userKey string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[userKey], nil
}

func (m *memStore) Set(_ context.Context, userKey string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[userKey] = value
	return nil
}

func seedLedger(t *testing.T, store *memStore, userKey string, records []RedemptionRecord) {
	t.Helper()
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	store.data[userKey] = raw
}

func TestLedger_LoadMissing(t *testing.T) {
	ledger := NewLedger(newMemStore())

	records, err := ledger.Load(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_LoadCorruptTreatedAsEmpty(t *testing.T) {
	store := newMemStore()
	store.data["7"] = []byte("{not json")
	ledger := NewLedger(store)

	records, err := ledger.Load(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedger_LoadStoreError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	ledger := NewLedger(store)

	_, err := ledger.Load(context.Background(), "7")
	require.Error(t, err)
}

func TestLedger_AppendRoundTrip(t *testing.T) {
	store := newMemStore()
	ledger := NewLedger(store)
	ctx := context.Background()

	rec1 := RedemptionRecord{ID: "a", Kind: KindWallet, Points: 500, Credits: 5, Timestamp: "2026-03-01T10:00:00Z"}
	rec2 := RedemptionRecord{ID: "b", Kind: KindReward, Points: 600, Title: "One free parking hour", Timestamp: "2026-03-02T10:00:00Z"}

	require.NoError(t, ledger.Append(ctx, "7", rec1))
	require.NoError(t, ledger.Append(ctx, "7", rec2))

	records, err := ledger.Load(ctx, "7")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rec1, records[0])
	assert.Equal(t, rec2, records[1])
}

func TestLedger_AppendStoreError(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("disk full")
	ledger := NewLedger(store)

	err := ledger.Append(context.Background(), "7", RedemptionRecord{ID: "a"})
	assert.ErrorIs(t, err, ErrLedgerAppendFailed)
}

func TestLedger_RedeemedPoints(t *testing.T) {
	store := newMemStore()
	seedLedger(t, store, "7", []RedemptionRecord{
		{ID: "a", Kind: KindWallet, Points: 500, Timestamp: "2026-02-10T10:00:00Z"},
		{ID: "b", Kind: KindReward, Points: 600, Timestamp: "2026-03-01T10:00:00Z"},
	})
	ledger := NewLedger(store)

	total, err := ledger.RedeemedPoints(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, 1100, total)
}

func TestLedger_WalletPointsInMonth(t *testing.T) {
	store := newMemStore()
	seedLedger(t, store, "7", []RedemptionRecord{
		// Counts: wallet kind, same UTC month.
		{ID: "a", Kind: KindWallet, Points: 500, Timestamp: "2026-03-05T10:00:00Z"},
		// Skipped: previous month.
		{ID: "b", Kind: KindWallet, Points: 700, Timestamp: "2026-02-27T10:00:00Z"},
		// Skipped: reward kind.
		{ID: "c", Kind: KindReward, Points: 600, Timestamp: "2026-03-06T10:00:00Z"},
		// Skipped: local March 31 23:30 -05:00 is April 1 04:30 UTC.
		{ID: "d", Kind: KindWallet, Points: 300, Timestamp: "2026-03-31T23:30:00-05:00"},
	})
	ledger := NewLedger(store)

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	total, err := ledger.WalletPointsInMonth(context.Background(), "7", now)
	require.NoError(t, err)
	assert.Equal(t, 500, total)
}

func TestLedger_WalletPointsInMonth_BadTimestampSkipped(t *testing.T) {
	store := newMemStore()
	seedLedger(t, store, "7", []RedemptionRecord{
		{ID: "a", Kind: KindWallet, Points: 500, Timestamp: "whenever"},
	})
	ledger := NewLedger(store)

	total, err := ledger.WalletPointsInMonth(context.Background(), "7", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
