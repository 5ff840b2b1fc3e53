package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc           func(ctx context.Context, user *domain.User) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	IncrementBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	UpdateStatusFunc     func(ctx context.Context, id string, status domain.UserStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Add(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) IncrementBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	if m.IncrementBalanceFunc != nil {
		return m.IncrementBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	u.Balance = u.Balance.Add(delta)
	u.UpdatedAt = updatedAt
	return u.Balance, nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Status = status
		u.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []*domain.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc                 func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc       func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	UpdateStatusFunc           func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	UpdateStatusAndBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, afterBalance decimal.Decimal, updatedAt time.Time) error
	UpdateAfterBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, afterBalance decimal.Decimal, updatedAt time.Time) error
	ExistsByReferenceFunc      func(ctx context.Context, reference string) (bool, error)
	ListByUserFunc             func(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Add(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
}

func (m *MockTransactionRepository) Get(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[id]
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.Status = status
	txn.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) UpdateStatusAndBalance(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, afterBalance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateStatusAndBalanceFunc != nil {
		return m.UpdateStatusAndBalanceFunc(ctx, tx, id, status, afterBalance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.Status = status
	txn.AfterBalance = afterBalance
	txn.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) UpdateAfterBalance(ctx context.Context, tx usecase.Transaction, id string, afterBalance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateAfterBalanceFunc != nil {
		return m.UpdateAfterBalanceFunc(ctx, tx, id, afterBalance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.AfterBalance = afterBalance
	txn.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	if m.ExistsByReferenceFunc != nil {
		return m.ExistsByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, txn := range m.transactions {
		if txn.TransactionID == reference {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

// MockReferenceStore is a mock implementation of ReferenceStore.
type MockReferenceStore struct {
	Fees       map[domain.FeeType]*domain.FeeSchedule
	Currencies map[string]*domain.Currency
	Networks   map[string]*domain.Network

	FindFeeByTypeFunc    func(ctx context.Context, feeType domain.FeeType) (*domain.FeeSchedule, error)
	FindCurrencyByIDFunc func(ctx context.Context, id string) (*domain.Currency, error)
	FindNetworkByIDFunc  func(ctx context.Context, id string) (*domain.Network, error)
}

func NewMockReferenceStore() *MockReferenceStore {
	return &MockReferenceStore{
		Fees:       make(map[domain.FeeType]*domain.FeeSchedule),
		Currencies: make(map[string]*domain.Currency),
		Networks:   make(map[string]*domain.Network),
	}
}

func (m *MockReferenceStore) FindFeeByType(ctx context.Context, feeType domain.FeeType) (*domain.FeeSchedule, error) {
	if m.FindFeeByTypeFunc != nil {
		return m.FindFeeByTypeFunc(ctx, feeType)
	}
	if fee, ok := m.Fees[feeType]; ok {
		return fee, nil
	}
	return nil, domain.ErrFeeScheduleNotFound
}

func (m *MockReferenceStore) FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error) {
	if m.FindCurrencyByIDFunc != nil {
		return m.FindCurrencyByIDFunc(ctx, id)
	}
	if c, ok := m.Currencies[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCurrencyNotFound
}

func (m *MockReferenceStore) FindNetworkByID(ctx context.Context, id string) (*domain.Network, error) {
	if m.FindNetworkByIDFunc != nil {
		return m.FindNetworkByIDFunc(ctx, id)
	}
	if n, ok := m.Networks[id]; ok {
		return n, nil
	}
	return nil, domain.ErrNetworkNotFound
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		if err := t.CommitFunc(ctx); err != nil {
			return err
		}
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.Committed {
		return nil
	}
	if t.RollbackFunc != nil {
		if err := t.RollbackFunc(ctx); err != nil {
			return err
		}
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// Last returns the most recently begun transaction.
func (m *MockTransactionManager) Last() *MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Transactions) == 0 {
		return nil
	}
	return m.Transactions[len(m.Transactions)-1]
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

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
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int

	NewReferenceFunc func(txType domain.TransactionType) string
	NewUIDFunc       func() string
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) NewReference(txType domain.TransactionType) string {
	if m.NewReferenceFunc != nil {
		return m.NewReferenceFunc(txType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("TXN-%s-%d", txType, m.counter)
}

func (m *MockReferenceGenerator) NewUID() string {
	if m.NewUIDFunc != nil {
		return m.NewUIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("uid-%d", m.counter)
}

// MockCache is an in-memory mock of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
