package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
)

// AssetResponse represents an asset account in API responses.
type AssetResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Kind      string          `json:"kind"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AssetFromDomain converts a domain asset to a response.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:        a.ID,
		Title:     a.Title,
		Kind:      string(a.Kind),
		Currency:  a.Currency,
		Balance:   a.Balance,
		Color:     a.Color,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.Asset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// ListAssetsResponse wraps an asset listing.
type ListAssetsResponse struct {
	Assets []*AssetResponse `json:"assets"`
	Total  int64            `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
	Subcategory string          `json:"subcategory,omitempty"`
	FromAssetID string          `json:"from_asset_id,omitempty"`
	ToAssetID   string          `json:"to_asset_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Date:        t.Date,
		Notes:       t.Notes,
		Subcategory: t.Subcategory,
		FromAssetID: t.FromAssetID,
		ToAssetID:   t.ToAssetID,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category,omitempty"`
	DueDate       time.Time  `json:"due_date"`
	Notes         string     `json:"notes,omitempty"`
	Recurrence    string     `json:"recurrence"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ReminderFromDomain converts a domain reminder to a response.
func ReminderFromDomain(r *domain.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:            r.ID,
		Title:         r.Title,
		Category:      r.Category,
		DueDate:       r.DueDate,
		Notes:         r.Notes,
		Recurrence:    string(r.Recurrence),
		AttachmentURL: r.AttachmentURL,
		Completed:     r.Completed,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.Reminder) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r)
	}
	return result
}

// ListRemindersResponse wraps a reminder listing.
type ListRemindersResponse struct {
	Reminders []*ReminderResponse `json:"reminders"`
	Total     int64               `json:"total"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// SummaryEntry is the per-currency ledger total.
type SummaryEntry struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Assets   int             `json:"assets"`
}

// SummaryResponse wraps the ledger summary.
type SummaryResponse struct {
	Currencies []SummaryEntry `json:"currencies"`
}

// SummaryFromUseCase converts usecase summaries to a response.
func SummaryFromUseCase(summaries []usecase.CurrencySummary) SummaryResponse {
	entries := make([]SummaryEntry, len(summaries))
	for i, s := range summaries {
		entries[i] = SummaryEntry{
			Currency: s.Currency,
			Total:    s.Total,
			Assets:   s.Assets,
		}
	}
	return SummaryResponse{Currencies: entries}
}

// SyncStateResponse reports the durable-write status of one record.
type SyncStateResponse struct {
	Collection string    `json:"collection"`
	RecordID   string    `json:"record_id"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SyncStateFromDomain converts a domain sync state to a response.
func SyncStateFromDomain(s domain.SyncState) SyncStateResponse {
	return SyncStateResponse{
		Collection: string(s.Collection),
		RecordID:   s.RecordID,
		Status:     string(s.Status),
		Attempts:   s.Attempts,
		LastError:  s.LastError,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
