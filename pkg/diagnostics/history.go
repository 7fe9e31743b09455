package diagnostics

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// History is an append-only invocation log backed by a pure-Go SQLite
// database, grounded on broady-tygor's with-sqlc example
// (`sql.Open("sqlite", path)` plus an embedded schema executed on open).
// It records *that* an object was reflected, whether the cache served
// it, and how many opcodes ran — never the resolved Type graph itself.
type History struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS invocations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	object_id   TEXT NOT NULL,
	cache_hit   INTEGER NOT NULL,
	opcode_count INTEGER NOT NULL,
	recorded_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// OpenHistory opens (creating if necessary) the SQLite database at path
// and ensures its schema exists.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: opening history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("diagnostics: creating history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the underlying database handle.
func (h *History) Close() error { return h.db.Close() }

// Record appends one invocation entry — objectID identifies the
// reflected Packed/host-class by an opaque identity string the caller
// derives (e.g. a pointer's fmt.Sprintf("%p", ...)), not its content.
func (h *History) Record(objectID string, cacheHit bool, opcodeCount int) error {
	hit := 0
	if cacheHit {
		hit = 1
	}
	_, err := h.db.Exec(
		`INSERT INTO invocations (object_id, cache_hit, opcode_count) VALUES (?, ?, ?)`,
		objectID, hit, opcodeCount,
	)
	if err != nil {
		return fmt.Errorf("diagnostics: recording invocation: %w", err)
	}
	return nil
}

// Summary aggregates the log for `cmd/reflectdump history`.
type Summary struct {
	Total     int
	CacheHits int
	OpcodesSum int64
}

// Summarize computes the running totals across every recorded invocation.
func (h *History) Summarize() (Summary, error) {
	var s Summary
	row := h.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(cache_hit), 0), COALESCE(SUM(opcode_count), 0) FROM invocations`,
	)
	if err := row.Scan(&s.Total, &s.CacheHits, &s.OpcodesSum); err != nil {
		return Summary{}, fmt.Errorf("diagnostics: summarizing history: %w", err)
	}
	return s, nil
}
