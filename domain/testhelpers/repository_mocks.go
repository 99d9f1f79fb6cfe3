package testhelpers

import (
	"context"

	"betbook/domain/entities"
	"betbook/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, userID int64) (*entities.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, email, displayName string, initialBalance int64) (*entities.Account, error) {
	args := m.Called(ctx, email, displayName, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Debit(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) Credit(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*entities.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) Update(ctx context.Context, wager *entities.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) ListByParticipant(ctx context.Context, userID int64) ([]*entities.Wager, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListByArbiter(ctx context.Context, arbiterID int64, includeUnassigned bool) ([]*entities.Wager, error) {
	args := m.Called(ctx, arbiterID, includeUnassigned)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListPublicOpen(ctx context.Context) ([]*entities.Wager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListSettled(ctx context.Context) ([]*entities.Wager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wager), args.Error(1)
}

// MockUnitOfWork wires the mock repositories into a no-op transaction
// boundary. Begin, Commit and Rollback only count calls; the mocks carry the
// behavior under test.
type MockUnitOfWork struct {
	Accounts *MockAccountRepository
	Wagers   *MockWagerRepository

	Begun      int
	Committed  int
	RolledBack int
}

// NewMockUnitOfWork creates a unit of work over fresh repository mocks.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Accounts: new(MockAccountRepository),
		Wagers:   new(MockWagerRepository),
	}
}

func (u *MockUnitOfWork) Begin(ctx context.Context) error {
	u.Begun++
	return nil
}

func (u *MockUnitOfWork) Commit() error {
	u.Committed++
	return nil
}

func (u *MockUnitOfWork) Rollback() error {
	u.RolledBack++
	return nil
}

func (u *MockUnitOfWork) AccountRepository() interfaces.AccountRepository {
	return u.Accounts
}

func (u *MockUnitOfWork) WagerRepository() interfaces.WagerRepository {
	return u.Wagers
}

// MockUnitOfWorkFactory hands out the same mock unit of work on every Create.
type MockUnitOfWorkFactory struct {
	UoW *MockUnitOfWork
}

func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{UoW: NewMockUnitOfWork()}
}

func (f *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	return f.UoW
}
