package repositories

import "errors"

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrOperationNotFound = errors.New("wallet operation not found")
	ErrSettingNotFound   = errors.New("setting not found")
	ErrUserNotFound      = errors.New("user not found")
)
