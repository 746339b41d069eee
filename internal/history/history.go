// Package history persists dated momentum snapshots.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
)

// snapshotTable is the name of the table for snapshot storage.
const snapshotTable = "momentum_snapshots"

// HistoryStoreManager manages the HistoryStore instance.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the HistoryStore.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &HistoryStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory initializes the global history manager for the configured
// backend. Safe to call more than once; only the first call takes effect.
func InitHistory(cfg *contract.Config) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewHistoryStore(cfg.HistoryBackend, ResolveLocation(cfg))
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history storage: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	return initErr
}

// GetHistoryStore initializes the manager if needed and returns the store.
func GetHistoryStore(cfg *contract.Config) (contract.HistoryStore, error) {
	if err := InitHistory(cfg); err != nil {
		return nil, err
	}
	return Manager.GetHistoryStore(), nil
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// NewHistoryStore initializes and returns a HistoryStore for the backend.
func NewHistoryStore(backend schema.HistoryBackend, location string) (contract.HistoryStore, error) {
	switch backend {
	case schema.HistoryFS:
		return NewFSStore(location)
	case schema.HistorySQLite, schema.HistoryMySQL, schema.HistoryPostgreSQL:
		return NewSQLStore(backend, location)
	case schema.HistoryNone:
		return &noopStore{}, nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be fs, sqlite, mysql, postgresql, or none", backend)
	}
}

// ResolveLocation resolves the store location for the configured backend:
// a directory for fs, a file path for sqlite, a connection string for
// server databases.
func ResolveLocation(cfg *contract.Config) string {
	switch cfg.HistoryBackend {
	case schema.HistoryFS:
		if cfg.HistoryPath != "" {
			return cfg.HistoryPath
		}
		return contract.GetHistoryDirPath()
	case schema.HistorySQLite:
		if cfg.HistoryDBConnect != "" {
			return cfg.HistoryDBConnect
		}
		if cfg.HistoryPath != "" {
			return cfg.HistoryPath
		}
		return contract.GetHistoryDBFilePath()
	default:
		return cfg.HistoryDBConnect
	}
}

// ClearHistory removes all recorded snapshots for the specified backend.
// For fs, it deletes the snapshot directory. For SQLite, it deletes the
// database file. For server databases, it drops the snapshot table.
func ClearHistory(backend schema.HistoryBackend, location string) error {
	switch backend {
	case schema.HistoryFS:
		if location == "" {
			return fmt.Errorf("location cannot be empty for fs backend")
		}
		if err := os.RemoveAll(location); err != nil {
			return fmt.Errorf("failed to remove snapshot directory %s: %w", location, err)
		}
		return nil

	case schema.HistorySQLite:
		if location == "" {
			return fmt.Errorf("location cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", location, err)
		}
		return nil

	case schema.HistoryMySQL:
		return clearSQLTable("mysql", location, snapshotTable)

	case schema.HistoryPostgreSQL:
		return clearSQLTable("pgx", location, snapshotTable)

	case schema.HistoryNone:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}

// noopStore discards writes and reports an empty history.
type noopStore struct{}

var _ contract.HistoryStore = &noopStore{} // Compile-time check

func (s *noopStore) WriteSnapshot(schema.Snapshot) error { return nil }

func (s *noopStore) ReadSnapshot(date string) (schema.Snapshot, error) {
	return schema.Snapshot{}, fmt.Errorf("%w: %s", contract.ErrSnapshotNotFound, date)
}

func (s *noopStore) ListDates() ([]string, error) { return nil, nil }

func (s *noopStore) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{Backend: schema.HistoryNone}, nil
}

func (s *noopStore) Close() error { return nil }
