package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rk/lifeadmin/internal/adapter/http/dto"
	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/ledger"
)

type transactionServiceStub struct {
	recordFn func(ctx context.Context, userID string, input ledger.RecordTransactionInput) (*domain.Transaction, error)
	getFn    func(ctx context.Context, userID, id string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Transaction, error)
	amendFn  func(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (*domain.Transaction, error)
	removeFn func(ctx context.Context, userID, id string) error
}

func (s *transactionServiceStub) RecordTransaction(ctx context.Context, userID string, input ledger.RecordTransactionInput) (*domain.Transaction, error) {
	return s.recordFn(ctx, userID, input)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, userID, id)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return s.listFn(ctx, userID)
}

func (s *transactionServiceStub) AmendTransaction(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (*domain.Transaction, error) {
	return s.amendFn(ctx, userID, id, patch)
}

func (s *transactionServiceStub) RemoveTransaction(ctx context.Context, userID, id string) error {
	return s.removeFn(ctx, userID, id)
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	txn := &domain.Transaction{
		ID:          "txn-1",
		UserID:      "user-1",
		Amount:      decimal.RequireFromString("150"),
		Kind:        domain.TransactionKindExpense,
		FromAssetID: "asset-1",
	}

	var captured ledger.RecordTransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		recordFn: func(ctx context.Context, userID string, input ledger.RecordTransactionInput) (*domain.Transaction, error) {
			captured = input
			return txn, nil
		},
	})

	body, _ := json.Marshal(dto.RecordTransactionRequest{
		Amount:      decimal.RequireFromString("150"),
		Kind:        "Expense",
		FromAssetID: "asset-1",
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/transactions", bytes.NewReader(body), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Kind != domain.TransactionKindExpense || captured.FromAssetID != "asset-1" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "txn-1" {
		t.Fatalf("expected txn-1, got %s", resp.ID)
	}
}

func TestTransactionHandler_Create_ValidationError(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		recordFn: func(ctx context.Context, userID string, input ledger.RecordTransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrAssetNotFound
		},
	})

	body := bytes.NewBufferString(`{"amount":"10","kind":"Expense","from_asset_id":"no-such"}`)
	rec := httptest.NewRecorder()
	handler.Create(rec, authedRequest(http.MethodPost, "/transactions", body, nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Update_NotFound(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		amendFn: func(ctx context.Context, userID, id string, patch ledger.TransactionPatch) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	body := bytes.NewBufferString(`{"amount":"300"}`)
	rec := httptest.NewRecorder()
	handler.Update(rec, authedRequest(http.MethodPatch, "/transactions/missing", body, map[string]string{"id": "missing"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Delete(t *testing.T) {
	var deletedID string
	handler := NewTransactionHandler(&transactionServiceStub{
		removeFn: func(ctx context.Context, userID, id string) error {
			deletedID = id
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Delete(rec, authedRequest(http.MethodDelete, "/transactions/txn-1", nil, map[string]string{"id": "txn-1"}))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deletedID != "txn-1" {
		t.Fatalf("expected txn-1 removed, got %q", deletedID)
	}
}

func TestTransactionHandler_List(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, userID string) ([]*domain.Transaction, error) {
			return []*domain.Transaction{
				{ID: "txn-2", Kind: domain.TransactionKindIncome, Amount: decimal.New(50, 0)},
				{ID: "txn-1", Kind: domain.TransactionKindExpense, Amount: decimal.New(150, 0)},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, authedRequest(http.MethodGet, "/transactions", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || resp.Transactions[0].ID != "txn-2" {
		t.Fatalf("unexpected listing: %+v", resp)
	}
}
