package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the decisions table and its indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id                 TEXT PRIMARY KEY,
	request_id         TEXT NOT NULL,
	timestamp          DATETIME NOT NULL,
	subject_id         TEXT,
	object_id          TEXT,
	action             TEXT NOT NULL,
	decision           TEXT NOT NULL,
	matched_policy_id  TEXT,
	reason             TEXT,
	error              TEXT,
	evaluation_time_us INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_timestamp ON decisions(timestamp);
CREATE INDEX IF NOT EXISTS idx_decisions_subject ON decisions(subject_id);
CREATE INDEX IF NOT EXISTS idx_decisions_decision ON decisions(decision);
CREATE INDEX IF NOT EXISTS idx_decisions_policy ON decisions(matched_policy_id);

CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version, ignoring duplicates.
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?);
`

// GetSchemaVersion retrieves the latest schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
