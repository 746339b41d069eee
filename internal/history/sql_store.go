package history

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/gitsignals/gitsignals/internal/contract"
	"github.com/gitsignals/gitsignals/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// SQLStoreImpl handles snapshot storage using various database backends.
type SQLStoreImpl struct {
	db         *sql.DB
	backend    schema.HistoryBackend
	driverName string
	connStr    string
}

var _ contract.HistoryStore = &SQLStoreImpl{} // Compile-time check

// NewSQLStore initializes and returns a snapshot store on a SQL backend.
func NewSQLStore(backend schema.HistoryBackend, connStr string) (*SQLStoreImpl, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.HistorySQLite:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite history at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.HistoryMySQL:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.HistoryPostgreSQL:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL history backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", snapshotTable, err)
	}

	return &SQLStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.HistoryBackend) string {
	switch backend {
	case schema.HistoryMySQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_date VARCHAR(10) NOT NULL,
				full_name VARCHAR(255) NOT NULL,
				score DOUBLE NOT NULL,
				PRIMARY KEY (snapshot_date, full_name)
			);
		`, snapshotTable)

	case schema.HistoryPostgreSQL:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_date TEXT NOT NULL,
				full_name TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (snapshot_date, full_name)
			);
		`, snapshotTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_date TEXT NOT NULL,
				full_name TEXT NOT NULL,
				score REAL NOT NULL,
				PRIMARY KEY (snapshot_date, full_name)
			);
		`, snapshotTable)
	}
}

// getPlaceholder returns the parameter placeholder for the backend.
func (ss *SQLStoreImpl) getPlaceholder(n int) string {
	if ss.backend == schema.HistoryPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// WriteSnapshot replaces any rows for the snapshot date inside a transaction,
// so re-recording a date is idempotent and readers never see a partial day.
func (ss *SQLStoreImpl) WriteSnapshot(snap schema.Snapshot) error {
	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE snapshot_date = %s", snapshotTable, ss.getPlaceholder(1))
	if _, err := tx.Exec(deleteQuery, snap.Date); err != nil {
		return fmt.Errorf("failed to clear snapshot for %s: %w", snap.Date, err)
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (snapshot_date, full_name, score) VALUES (%s, %s, %s)",
		snapshotTable, ss.getPlaceholder(1), ss.getPlaceholder(2), ss.getPlaceholder(3))
	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	// Deterministic insert order simplifies debugging with SQL tooling.
	names := make([]string, 0, len(snap.Entries))
	for name := range snap.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := stmt.Exec(snap.Date, name, snap.Entries[name]); err != nil {
			return fmt.Errorf("failed to insert snapshot row for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot for %s: %w", snap.Date, err)
	}
	return nil
}

// ReadSnapshot loads all rows for a date.
func (ss *SQLStoreImpl) ReadSnapshot(date string) (schema.Snapshot, error) {
	query := fmt.Sprintf("SELECT full_name, score FROM %s WHERE snapshot_date = %s", snapshotTable, ss.getPlaceholder(1))
	rows, err := ss.db.Query(query, date)
	if err != nil {
		return schema.Snapshot{}, fmt.Errorf("failed to read snapshot for %s: %w", date, err)
	}
	defer func() { _ = rows.Close() }()

	entries := map[string]float64{}
	for rows.Next() {
		var name string
		var score float64
		if err := rows.Scan(&name, &score); err != nil {
			return schema.Snapshot{}, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		entries[name] = score
	}
	if err := rows.Err(); err != nil {
		return schema.Snapshot{}, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	if len(entries) == 0 {
		return schema.Snapshot{}, fmt.Errorf("%w: %s", contract.ErrSnapshotNotFound, date)
	}

	return schema.Snapshot{Date: date, Entries: entries}, nil
}

// ListDates returns all snapshot dates in chronological order.
func (ss *SQLStoreImpl) ListDates() ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT snapshot_date FROM %s ORDER BY snapshot_date ASC", snapshotTable)
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// GetStatus returns status information about the history store.
func (ss *SQLStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:  ss.backend,
		Location: ss.connStr,
	}

	query := fmt.Sprintf(`SELECT COUNT(DISTINCT snapshot_date), COUNT(*),
		COALESCE(MIN(snapshot_date), ''), COALESCE(MAX(snapshot_date), '') FROM %s`, snapshotTable)
	row := ss.db.QueryRow(query)
	if err := row.Scan(&status.SnapshotCount, &status.EntryCount, &status.OldestDate, &status.NewestDate); err != nil {
		return status, fmt.Errorf("failed to read history status: %w", err)
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SQLStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
