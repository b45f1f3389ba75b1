package models

import "time"

// Setting is a key/value row in the platform settings store. The ledger
// only reads the limits.* keys; other subsystems keep their own keys here.
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting keys read by the limits policy.
const (
	SettingDepositMin         = "limits.deposit_min"
	SettingDepositMax         = "limits.deposit_max"
	SettingDepositMaxDaily    = "limits.deposit_max_daily"
	SettingWithdrawalMin      = "limits.withdrawal_min"
	SettingWithdrawalMax      = "limits.withdrawal_max"
	SettingWithdrawalMaxDaily = "limits.withdrawal_max_daily"
	SettingRequireProofOver   = "limits.require_proof_over"
)
