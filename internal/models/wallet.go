package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's spendable balance. One wallet per user, created at
// account creation with a zero balance. Balance and FrozenAmount are only
// mutated by the ledger service inside a database transaction.
type Wallet struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	UserID       uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	FrozenAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"frozen_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Available returns the portion of the balance not reserved by frozen funds.
func (w *Wallet) Available() decimal.Decimal {
	return w.Balance.Sub(w.FrozenAmount)
}
