package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("history: not found")

type DB struct {
	db   *sql.DB
	path string
}

// Record is one successful token count.
type Record struct {
	ID        string `json:"id"`
	Model     string `json:"model"`
	Encoding  string `json:"encoding"`
	Tokens    int    `json:"tokens"`
	Chars     int    `json:"chars"`
	Source    string `json:"source"`     // ui / cli
	CreatedAt string `json:"created_at"` // RFC3339
}

// Stats aggregates the stored records.
type Stats struct {
	Count       int `json:"count"`
	TotalTokens int `json:"total_tokens"`
	MaxTokens   int `json:"max_tokens"`
}

// Open creates or opens a SQLite database at path with WAL mode and a
// busy timeout of 5 seconds, creating the counts table if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", p, err)
		}
	}

	ddl := `CREATE TABLE IF NOT EXISTS counts (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		model      TEXT NOT NULL,
		encoding   TEXT NOT NULL,
		tokens     INTEGER NOT NULL,
		chars      INTEGER NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Insert stores r, filling in ID and CreatedAt when empty, and returns the
// stored record.
func (d *DB) Insert(r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := d.db.Exec(
		`INSERT INTO counts (id, model, encoding, tokens, chars, source, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Model, r.Encoding, r.Tokens, r.Chars, r.Source, r.CreatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("history: insert: %w", err)
	}
	return r, nil
}

// Get retrieves a record by ID. Returns ErrNotFound if the ID does not exist.
func (d *DB) Get(id string) (Record, error) {
	var r Record
	err := d.db.QueryRow(
		`SELECT id, model, encoding, tokens, chars, source, created_at FROM counts WHERE id = ?`, id,
	).Scan(&r.ID, &r.Model, &r.Encoding, &r.Tokens, &r.Chars, &r.Source, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("history: get: %w", err)
	}
	return r, nil
}

// List returns the most recent records first. If limit is 0, all records
// are returned.
func (d *DB) List(limit int) ([]Record, error) {
	query := `SELECT id, model, encoding, tokens, chars, source, created_at FROM counts ORDER BY seq DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = d.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Model, &r.Encoding, &r.Tokens, &r.Chars, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: rows: %w", err)
	}
	return records, nil
}

// Stats returns aggregate counts over every stored record.
func (d *DB) Stats() (Stats, error) {
	var s Stats
	err := d.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(tokens), 0), COALESCE(MAX(tokens), 0) FROM counts`,
	).Scan(&s.Count, &s.TotalTokens, &s.MaxTokens)
	if err != nil {
		return Stats{}, fmt.Errorf("history: stats: %w", err)
	}
	return s, nil
}

// Clear deletes every record and returns how many were removed.
func (d *DB) Clear() (int64, error) {
	res, err := d.db.Exec(`DELETE FROM counts`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("history: rows affected: %w", err)
	}
	return n, nil
}
