package wallet

import "context"

type Repository interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error)
	AddTransaction(ctx context.Context, userID int, amountCredits int64, txType, ref string) error
	TopUp(ctx context.Context, userID int, amountCredits int64) error
	CreditConversion(ctx context.Context, userID int, credits int64, ref string) error
	GetTransactions(ctx context.Context, userID int, limit, offset int) ([]Transaction, error)
}
