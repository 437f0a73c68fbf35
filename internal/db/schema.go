package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    title TEXT,
    status TEXT,
    generated_at TEXT,
    report_json TEXT
);

CREATE TABLE IF NOT EXISTS mirror_scores (
    run_id TEXT PRIMARY KEY,
    draft_to_sample REAL,
    standard_to_sample REAL,
    improvement REAL
);

CREATE TABLE IF NOT EXISTS fidelity_alerts (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    type TEXT,
    sentence_index INTEGER,
    detail TEXT
);

CREATE TABLE IF NOT EXISTS citation_suggestions (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    sentence_index INTEGER,
    reason TEXT,
    sentence_text TEXT,
    queries TEXT
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
