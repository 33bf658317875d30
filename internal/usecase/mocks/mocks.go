// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each mock keeps an in-memory backing store and lets tests
// override individual methods through the exported Func fields.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rk/lifeadmin/internal/domain"
)

// MockAssetRepository is a mock implementation of usecase.AssetRepository.
type MockAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset

	CreateFunc     func(ctx context.Context, asset *domain.Asset) error
	UpdateFunc     func(ctx context.Context, asset *domain.Asset) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Asset, error)
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{assets: make(map[string]*domain.Asset)}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset.Clone()
	return nil
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset.Clone()
	return nil
}

func (m *MockAssetRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Asset
	for _, a := range m.assets {
		if a.UserID == userID {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Stored returns the stored asset by id, for assertions.
func (m *MockAssetRepository) Stored(id string) (*domain.Asset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assets[id]
	return a, ok
}

// MockTransactionRepository is a mock implementation of
// usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction

	CreateFunc     func(ctx context.Context, txn *domain.Transaction) error
	UpdateFunc     func(ctx context.Context, txn *domain.Transaction) error
	DeleteFunc     func(ctx context.Context, userID, id string) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{txns: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn.Clone()
	return nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn.Clone()
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.txns, id)
	return nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction
	for _, t := range m.txns {
		if t.UserID == userID {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Stored returns the stored transaction by id, for assertions.
func (m *MockTransactionRepository) Stored(id string) (*domain.Transaction, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.txns[id]
	return t, ok
}

// MockReminderRepository is a mock implementation of
// usecase.ReminderRepository.
type MockReminderRepository struct {
	mu        sync.RWMutex
	reminders map[string]*domain.Reminder

	CreateFunc     func(ctx context.Context, reminder *domain.Reminder) error
	UpdateFunc     func(ctx context.Context, reminder *domain.Reminder) error
	DeleteFunc     func(ctx context.Context, userID, id string) error
	GetByIDFunc    func(ctx context.Context, userID, id string) (*domain.Reminder, error)
	ListByUserFunc func(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error)
	ListDueFunc    func(ctx context.Context, at time.Time) ([]*domain.Reminder, error)
}

func NewMockReminderRepository() *MockReminderRepository {
	return &MockReminderRepository{reminders: make(map[string]*domain.Reminder)}
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders[reminder.ID] = reminder.Clone()
	return nil
}

func (m *MockReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reminder)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[reminder.ID]; !ok {
		return domain.ErrReminderNotFound
	}
	m.reminders[reminder.ID] = reminder.Clone()
	return nil
}

func (m *MockReminderRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reminders, id)
	return nil
}

func (m *MockReminderRepository) GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reminders[id]
	if !ok || r.UserID != userID {
		return nil, domain.ErrReminderNotFound
	}
	return r.Clone(), nil
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.Reminder, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, activeOnly)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Reminder
	for _, r := range m.reminders {
		if r.UserID != userID {
			continue
		}
		if activeOnly && r.Completed {
			continue
		}
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockReminderRepository) ListDue(ctx context.Context, at time.Time) ([]*domain.Reminder, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, at)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Reminder
	for _, r := range m.reminders {
		if r.DueBy(at) {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("mock-id-%d", m.n)
}

// MockSyncQueue records enqueued intents for assertions.
type MockSyncQueue struct {
	mu      sync.Mutex
	Intents []domain.SyncIntent

	EnqueueFunc func(intent domain.SyncIntent)
}

func NewMockSyncQueue() *MockSyncQueue {
	return &MockSyncQueue{}
}

func (m *MockSyncQueue) Enqueue(intent domain.SyncIntent) {
	if m.EnqueueFunc != nil {
		m.EnqueueFunc(intent)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Intents = append(m.Intents, intent)
}

// ByCollection returns the recorded intents for one collection.
func (m *MockSyncQueue) ByCollection(c domain.Collection) []domain.SyncIntent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.SyncIntent
	for _, in := range m.Intents {
		if in.Collection == c {
			out = append(out, in)
		}
	}
	return out
}

// MockCache is an in-memory usecase.Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
