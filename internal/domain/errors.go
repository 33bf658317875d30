package domain

import "errors"

var (
	// Asset errors
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidTitle  = errors.New("invalid title")

	// Transaction errors
	ErrInvalidAmount              = errors.New("amount must be positive")
	ErrInvalidTransactionKind     = errors.New("invalid transaction kind")
	ErrMissingSourceAsset         = errors.New("source asset is required for this kind")
	ErrMissingDestinationAsset    = errors.New("destination asset is required for this kind")
	ErrUnexpectedSourceAsset      = errors.New("source asset must not be set for this kind")
	ErrUnexpectedDestinationAsset = errors.New("destination asset must not be set for this kind")
	ErrSameAsset                  = errors.New("cannot transfer to the same asset")
	ErrTransactionNotFound        = errors.New("transaction not found")

	// Reminder errors
	ErrReminderNotFound     = errors.New("reminder not found")
	ErrMissingReminderTitle = errors.New("reminder title is required")
	ErrMissingDueDate       = errors.New("due date is required")
	ErrInvalidRecurrence    = errors.New("invalid recurrence")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
