package history

import (
	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryManager is a mock implementation of HistoryManager for testing.
type MockHistoryManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockHistoryManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockHistoryManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// WriteSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) WriteSnapshot(snap schema.Snapshot) error {
	args := m.Called(snap)
	return args.Error(0)
}

// ReadSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) ReadSnapshot(date string) (schema.Snapshot, error) {
	args := m.Called(date)
	return args.Get(0).(schema.Snapshot), args.Error(1)
}

// ListDates implements the HistoryStore interface.
func (m *MockHistoryStore) ListDates() ([]string, error) {
	args := m.Called()
	dates, _ := args.Get(0).([]string)
	return dates, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
