package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ecospot/internal/wallet"
)

func TestWalletTopUp_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	repo := wallet.NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "wallet@test.com", "Wallet User")

	w, err := repo.GetOrCreateWallet(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, w.UserID)
	require.Equal(t, int64(0), w.BalanceCredits)

	err = repo.TopUp(ctx, userID, 50)
	require.NoError(t, err)

	w, err = repo.GetOrCreateWallet(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(50), w.BalanceCredits)
}

func TestWalletTransactionRef_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	repo := wallet.NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "txn@test.com", "Txn User")

	err := repo.CreditConversion(ctx, userID, 5, "rec-abc")
	require.NoError(t, err)

	txns, err := repo.GetTransactions(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, int64(5), txns[0].AmountCredits)
	require.Equal(t, "points_conversion", txns[0].Type)
	require.Equal(t, "rec-abc", txns[0].Ref)
	require.Equal(t, int64(5), txns[0].BalanceAfter)
}

func TestWalletInsufficientBalance_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	repo := wallet.NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db, "poor@test.com", "Poor User")

	err := repo.AddTransaction(ctx, userID, -50, "reservation_payment", "")
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)
}
