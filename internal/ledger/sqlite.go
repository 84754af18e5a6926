package ledger

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added event_type index
const currentSchemaVersion = 1

// SQLiteLog is the durable Log backed by SQLite with WAL mode.
type SQLiteLog struct {
	db *sql.DB
}

var _ Log = (*SQLiteLog)(nil)

// OpenSQLite creates or opens a ledger database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent, safe to call multiple times.
func OpenSQLite(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteLog) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		// The schema.sql CREATE statements are idempotent, so catching
		// up from any older version is just re-running them.
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

// AppendRecords implements Log. The whole batch lands in a single
// transaction; an INSERT failure rolls everything back.
func (s *SQLiteLog) AppendRecords(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append records: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, e := range entries {
		payload, err := MarshalCanonical(e.Payload)
		if err != nil {
			return fmt.Errorf("append records: entry %d: %w", e.Seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ledger_entries
			(seq, ts, event_type, actor_id, actor_email, payload, prev_digest, digest)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			int64(e.Seq),
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			string(e.EventType),
			e.Actor.ID,
			e.Actor.Email,
			string(payload),
			e.PrevDigest,
			e.Digest,
		)
		if err != nil {
			return fmt.Errorf("append records: entry %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append records: commit: %w", err)
	}
	return nil
}

const entryColumns = "seq, ts, event_type, actor_id, actor_email, payload, prev_digest, digest"

// ReadRecord implements Log.
func (s *SQLiteLog) ReadRecord(ctx context.Context, seq uint64) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM ledger_entries WHERE seq = ?", int64(seq))
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("read record %d: %w", seq, err)
	}
	return e, nil
}

// ReadRange implements Log.
func (s *SQLiteLog) ReadRange(ctx context.Context, from, to uint64) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM ledger_entries WHERE seq >= ?"
	args := []any{int64(from)}
	if to > 0 {
		query += " AND seq <= ?"
		args = append(args, int64(to))
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read range: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("read range: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read range: %w", err)
	}
	return entries, nil
}

// ReadHead implements Log.
func (s *SQLiteLog) ReadHead(ctx context.Context) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM ledger_entries ORDER BY seq DESC LIMIT 1")
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read head: %w", err)
	}
	return e, true, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEntry(row scannable) (Entry, error) {
	var (
		seq     int64
		ts      string
		payload string
		e       Entry
	)
	err := row.Scan(&seq, &ts, &e.EventType, &e.Actor.ID, &e.Actor.Email,
		&payload, &e.PrevDigest, &e.Digest)
	if err != nil {
		return Entry{}, err
	}
	e.Seq = uint64(seq)

	e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Entry{}, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}
	e.Payload, err = decodePayload([]byte(payload))
	if err != nil {
		return Entry{}, fmt.Errorf("bad payload: %w", err)
	}
	return e, nil
}

// decodePayload parses stored canonical JSON back into the value shapes
// MarshalCanonical accepts, so digests recompute identically on read.
// All JSON numbers decode as int64; floats are never stored.
func decodePayload(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	v, err := normalizeDecoded(raw)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func normalizeDecoded(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %q in stored payload", val)
		}
		return n, nil
	case map[string]any:
		for k, elem := range val {
			norm, err := normalizeDecoded(elem)
			if err != nil {
				return nil, err
			}
			val[k] = norm
		}
		return val, nil
	case []any:
		for i, elem := range val {
			norm, err := normalizeDecoded(elem)
			if err != nil {
				return nil, err
			}
			val[i] = norm
		}
		return val, nil
	default:
		return v, nil
	}
}
