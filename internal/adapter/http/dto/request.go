package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/ledger"
	"github.com/rk/lifeadmin/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// OpenAccountRequest represents a request to open an asset account.
type OpenAccountRequest struct {
	Title          string          `json:"title"`
	Kind           string          `json:"kind"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Color          string          `json:"color"`
}

// ToLedgerInput converts to ledger input.
func (r *OpenAccountRequest) ToLedgerInput() ledger.OpenAccountInput {
	return ledger.OpenAccountInput{
		Title:          r.Title,
		Kind:           domain.AssetKind(r.Kind),
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
		Color:          r.Color,
	}
}

// UpdateAccountRequest represents a partial update to an asset account.
// Absent fields are left untouched.
type UpdateAccountRequest struct {
	Title *string `json:"title,omitempty"`
	Kind  *string `json:"kind,omitempty"`
	Color *string `json:"color,omitempty"`
}

// ToLedgerPatch converts to ledger patch.
func (r *UpdateAccountRequest) ToLedgerPatch() ledger.AssetPatch {
	patch := ledger.AssetPatch{
		Title: r.Title,
		Color: r.Color,
	}
	if r.Kind != nil {
		kind := domain.AssetKind(*r.Kind)
		patch.Kind = &kind
	}
	return patch
}

// RecordTransactionRequest represents a request to record a transaction.
type RecordTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Date        *time.Time      `json:"date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Subcategory string          `json:"subcategory,omitempty"`
	FromAssetID string          `json:"from_asset_id,omitempty"`
	ToAssetID   string          `json:"to_asset_id,omitempty"`
}

// ToLedgerInput converts to ledger input.
func (r *RecordTransactionRequest) ToLedgerInput() ledger.RecordTransactionInput {
	input := ledger.RecordTransactionInput{
		Amount:      r.Amount,
		Kind:        domain.TransactionKind(r.Kind),
		Notes:       r.Notes,
		Subcategory: r.Subcategory,
		FromAssetID: r.FromAssetID,
		ToAssetID:   r.ToAssetID,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// AmendTransactionRequest represents a partial amendment to a transaction.
// Absent fields keep their stored values.
type AmendTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Kind        *string          `json:"kind,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Subcategory *string          `json:"subcategory,omitempty"`
	FromAssetID *string          `json:"from_asset_id,omitempty"`
	ToAssetID   *string          `json:"to_asset_id,omitempty"`
}

// ToLedgerPatch converts to ledger patch.
func (r *AmendTransactionRequest) ToLedgerPatch() ledger.TransactionPatch {
	patch := ledger.TransactionPatch{
		Amount:      r.Amount,
		Date:        r.Date,
		Notes:       r.Notes,
		Subcategory: r.Subcategory,
		FromAssetID: r.FromAssetID,
		ToAssetID:   r.ToAssetID,
	}
	if r.Kind != nil {
		kind := domain.TransactionKind(*r.Kind)
		patch.Kind = &kind
	}
	return patch
}

// CreateReminderRequest represents a request to create a reminder.
type CreateReminderRequest struct {
	Title         string    `json:"title"`
	Category      string    `json:"category,omitempty"`
	DueDate       time.Time `json:"due_date"`
	Notes         string    `json:"notes,omitempty"`
	Recurrence    string    `json:"recurrence,omitempty"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReminderRequest) ToUseCaseInput() usecase.CreateReminderInput {
	return usecase.CreateReminderInput{
		Title:         r.Title,
		Category:      r.Category,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
		Recurrence:    domain.Recurrence(r.Recurrence),
		AttachmentURL: r.AttachmentURL,
	}
}

// UpdateReminderRequest represents a partial update to a reminder.
type UpdateReminderRequest struct {
	Title         *string    `json:"title,omitempty"`
	Category      *string    `json:"category,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Recurrence    *string    `json:"recurrence,omitempty"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateReminderRequest) ToUseCaseInput() usecase.UpdateReminderInput {
	input := usecase.UpdateReminderInput{
		Title:         r.Title,
		Category:      r.Category,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
		AttachmentURL: r.AttachmentURL,
	}
	if r.Recurrence != nil {
		rec := domain.Recurrence(*r.Recurrence)
		input.Recurrence = &rec
	}
	return input
}

// CompleteReminderRequest toggles a reminder's completion state.
type CompleteReminderRequest struct {
	Completed bool `json:"completed"`
}
