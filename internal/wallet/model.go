package wallet

import "time"

type Wallet struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"user_id"`
	BalanceCredits int64     `db:"balance_credits" json:"balance_credits"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID            int       `db:"id" json:"id"`
	WalletID      int       `db:"wallet_id" json:"wallet_id"`
	AmountCredits int64     `db:"amount_credits" json:"amount_credits"`
	Type          string    `db:"type" json:"type"` // topup, points_conversion, reservation_payment, refund
	Ref           string    `db:"ref" json:"ref,omitempty"`
	BalanceAfter  int64     `db:"balance_after" json:"balance_after"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type TopUpRequest struct {
	AmountCredits int64 `json:"amount_credits" binding:"required"`
}
