// Package samplestore persists health metric samples behind a pluggable
// database/sql backend (SQLite by default, MySQL and PostgreSQL for shared
// deployments).
package samplestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// samplesTable is the table holding raw metric samples.
const samplesTable = "lifetick_samples"

// StoreImpl implements the SampleStore interface.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.SampleStore = &StoreImpl{} // Compile-time check

// NewSampleStore creates a new SampleStore with the specified backend.
func NewSampleStore(backend schema.DatabaseBackend, connStr string) (contract.SampleStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &StoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schema
	if err := createSamplesTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create samples table: %w", err)
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createSamplesTable creates the samples table.
func createSamplesTable(db *sql.DB, backend schema.DatabaseBackend) error {
	if _, err := db.Exec(getCreateSamplesQuery(backend)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", samplesTable, err)
	}
	return nil
}

// getCreateSamplesQuery returns the CREATE TABLE query for lifetick_samples.
func getCreateSamplesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(samplesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				sample_id VARCHAR(36) PRIMARY KEY,
				metric_type VARCHAR(64) NOT NULL,
				value DOUBLE NOT NULL,
				source VARCHAR(32) NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				INDEX idx_samples_recorded_at (recorded_at)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				sample_id TEXT PRIMARY KEY,
				metric_type TEXT NOT NULL,
				value DOUBLE PRECISION NOT NULL,
				source TEXT NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_samples_recorded_at ON %s (recorded_at);
		`, quotedTableName, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				sample_id TEXT PRIMARY KEY,
				metric_type TEXT NOT NULL,
				value REAL NOT NULL,
				source TEXT NOT NULL,
				recorded_at TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_samples_recorded_at ON %s (recorded_at);
		`, quotedTableName, quotedTableName)
	}
}

// InsertSamples stores a batch of samples inside one transaction. Samples
// without an ID are assigned a fresh UUID; samples with an unknown metric
// type or source are rejected before anything is written.
func (s *StoreImpl) InsertSamples(ctx context.Context, samples []schema.MetricSample) (int, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	for i := range samples {
		sample := &samples[i]
		if _, ok := schema.ValidMetricTypes[sample.Type]; !ok {
			return 0, fmt.Errorf("sample %d: %w: unknown metric type %q", i, schema.ErrInvalidSample, sample.Type)
		}
		if _, ok := schema.ValidSampleSources[sample.Source]; !ok {
			return 0, fmt.Errorf("sample %d: %w: unknown source %q", i, schema.ErrInvalidSample, sample.Source)
		}
		if sample.Timestamp.IsZero() {
			return 0, fmt.Errorf("sample %d: %w: missing timestamp", i, schema.ErrInvalidSample)
		}
		if sample.ID == "" {
			sample.ID = uuid.NewString()
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quotedTableName := quoteTableName(samplesTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (sample_id, metric_type, value, source, recorded_at) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (sample_id, metric_type, value, source, recorded_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sample := range samples {
		if _, err := stmt.ExecContext(ctx, sample.ID, string(sample.Type), sample.Value, string(sample.Source), formatTime(sample.Timestamp, s.backend)); err != nil {
			return 0, fmt.Errorf("failed to insert sample %s: %w", sample.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert: %w", err)
	}
	return len(samples), nil
}

// ListWindow returns all samples with timestamps in [start, end), ordered by
// timestamp ascending.
func (s *StoreImpl) ListWindow(ctx context.Context, start, end time.Time) ([]schema.MetricSample, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(samplesTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT sample_id, metric_type, value, source, recorded_at FROM %s WHERE recorded_at >= $1 AND recorded_at < $2 ORDER BY recorded_at ASC`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT sample_id, metric_type, value, source, recorded_at FROM %s WHERE recorded_at >= ? AND recorded_at < ? ORDER BY recorded_at ASC`, quotedTableName)
	}

	rows, err := s.db.QueryContext(ctx, query, formatTime(start, s.backend), formatTime(end, s.backend))
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.MetricSample
	for rows.Next() {
		var sample schema.MetricSample
		var metricType, source string

		switch s.backend {
		case schema.SQLiteBackend:
			var recordedAt string
			if err := rows.Scan(&sample.ID, &metricType, &sample.Value, &source, &recordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan sample: %w", err)
			}
			ts, err := time.Parse(time.RFC3339Nano, recordedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
			sample.Timestamp = ts
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&sample.ID, &metricType, &sample.Value, &source, &sample.Timestamp); err != nil {
				return nil, fmt.Errorf("failed to scan sample: %w", err)
			}
		}

		sample.Type = schema.MetricType(metricType)
		sample.Source = schema.SampleSource(source)
		results = append(results, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the sample store.
func (s *StoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
		ByType:    make(map[schema.MetricType]int),
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(samplesTable, s.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&status.TotalSamples); err != nil {
		return status, fmt.Errorf("failed to get total samples: %w", err)
	}

	if status.TotalSamples > 0 {
		lastQuery := fmt.Sprintf("SELECT recorded_at FROM %s ORDER BY recorded_at DESC LIMIT 1", quotedTableName)
		last, err := s.scanTime(ctx, lastQuery)
		if err != nil {
			return status, fmt.Errorf("failed to get last sample time: %w", err)
		}
		status.LastSampleTime = last

		oldestQuery := fmt.Sprintf("SELECT recorded_at FROM %s ORDER BY recorded_at ASC LIMIT 1", quotedTableName)
		oldest, err := s.scanTime(ctx, oldestQuery)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest sample time: %w", err)
		}
		status.OldestSampleTime = oldest

		typeQuery := fmt.Sprintf("SELECT metric_type, COUNT(*) FROM %s GROUP BY metric_type", quotedTableName)
		rows, err := s.db.QueryContext(ctx, typeQuery)
		if err != nil {
			return status, fmt.Errorf("failed to get per-type counts: %w", err)
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var metricType string
			var count int
			if err := rows.Scan(&metricType, &count); err != nil {
				return status, fmt.Errorf("failed to scan per-type count: %w", err)
			}
			status.ByType[schema.MetricType(metricType)] = count
		}
		if err := rows.Err(); err != nil {
			return status, fmt.Errorf("error iterating per-type counts: %w", err)
		}
	}

	return status, nil
}

// scanTime reads a single recorded_at value, handling the SQLite text format.
func (s *StoreImpl) scanTime(ctx context.Context, query string) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, query)

	switch s.backend {
	case schema.SQLiteBackend:
		var str string
		if err := row.Scan(&str); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, str)
	default: // MySQL and PostgreSQL store as native datetime
		var t time.Time
		if err := row.Scan(&t); err != nil {
			return time.Time{}, err
		}
		return t, nil
	}
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// formatTime normalizes timestamps for storage. SQLite stores RFC3339Nano
// text normalized to UTC; the other backends take native datetimes.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}
