package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"arbiter-hq/arbiter/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/decisions.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore persists decision records in SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database, enables WAL mode if configured,
// and initializes the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return audit.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return audit.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return audit.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return audit.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return audit.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists one decision record.
func (s *SQLiteStore) Store(ctx context.Context, record *audit.DecisionRecord) error {
	query := `
		INSERT INTO decisions (
			id, request_id, timestamp,
			subject_id, object_id, action,
			decision, matched_policy_id, reason, error,
			evaluation_time_us
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errorVal interface{}
	if record.Error != "" {
		errorVal = record.Error
	}

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.RequestID, record.Timestamp.UTC(),
		record.SubjectID, record.ObjectID, record.Action,
		record.Decision, record.MatchedPolicyID, record.Reason, errorVal,
		record.EvaluationTime.Microseconds(),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves decision records matching the filters, newest first.
func (s *SQLiteStore) Query(ctx context.Context, q *Query) ([]*audit.DecisionRecord, error) {
	if q == nil {
		q = &Query{}
	}

	whereClause, args := buildWhereClause(q)

	sqlQuery := `
		SELECT id, request_id, timestamp,
			subject_id, object_id, action,
			decision, matched_policy_id, reason, error,
			evaluation_time_us
		FROM decisions`
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY timestamp DESC"

	limit := 100
	if q.Limit > 0 {
		limit = q.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if q.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*audit.DecisionRecord{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the filters.
func (s *SQLiteStore) Count(ctx context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}

	whereClause, args := buildWhereClause(q)

	sqlQuery := "SELECT COUNT(*) FROM decisions"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// DeleteBefore removes records with a timestamp strictly before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM decisions WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_before", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_before", err)
	}
	return count, nil
}

// DeleteOldest removes the n oldest records.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM decisions WHERE id IN (
			SELECT id FROM decisions ORDER BY timestamp ASC LIMIT ?
		)`, n)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_oldest", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_oldest", err)
	}
	return count, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return audit.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite audit storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the clause without the "WHERE" keyword, plus its arguments.
func buildWhereClause(q *Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if q.StartTime != nil {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, q.StartTime.UTC())
	}
	if q.EndTime != nil {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, q.EndTime.UTC())
	}
	if q.SubjectID != "" {
		conditions = append(conditions, "subject_id = ?")
		args = append(args, q.SubjectID)
	}
	if q.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, q.Action)
	}
	if q.Decision != "" {
		conditions = append(conditions, "decision = ?")
		args = append(args, q.Decision)
	}
	if q.MatchedPolicyID != "" {
		conditions = append(conditions, "matched_policy_id = ?")
		args = append(args, q.MatchedPolicyID)
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}
	return whereClause, args
}

func scanRow(rows *sql.Rows) (*audit.DecisionRecord, error) {
	var record audit.DecisionRecord
	var errorVal sql.NullString
	var evalTimeUs int64

	err := rows.Scan(
		&record.ID, &record.RequestID, &record.Timestamp,
		&record.SubjectID, &record.ObjectID, &record.Action,
		&record.Decision, &record.MatchedPolicyID, &record.Reason, &errorVal,
		&evalTimeUs,
	)
	if err != nil {
		return nil, err
	}

	if errorVal.Valid {
		record.Error = errorVal.String
	}
	record.EvaluationTime = time.Duration(evalTimeUs) * time.Microsecond

	return &record, nil
}
