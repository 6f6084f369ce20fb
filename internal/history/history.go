// Package history persists OTP verification attempts in a local sqlite
// database so past demo runs can be inspected.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Attempt is one submitted OTP verification.
type Attempt struct {
	ID          int64
	ChallengeID string
	Account     string
	// CodeMask is the submitted code with all but the first digit masked.
	// The cleartext code is never stored.
	CodeMask string
	OK       bool
	At       time.Time
}

// Store is a sqlite-backed attempt log.
type Store struct {
	path string
	conn *sql.DB
}

// DefaultPath returns the attempt database location under the XDG data dir.
func DefaultPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "otpbox", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "otpbox-history.db")
	}
	return filepath.Join(home, ".local", "share", "otpbox", "history.db")
}

// Open opens the store at the default path.
func Open() (*Store, error) {
	return OpenAt(DefaultPath())
}

// OpenAt opens (and if necessary creates and migrates) the store at path.
func OpenAt(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dsn(clean))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Store{path: clean, conn: conn}, nil
}

func dsn(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func migrate(conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    challenge_id TEXT NOT NULL,
    account TEXT NOT NULL,
    code_mask TEXT NOT NULL,
    ok INTEGER NOT NULL,
    at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_at ON attempts(at);
`
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one attempt. The caller supplies a pre-masked code; see
// MaskCode.
func (s *Store) Record(a Attempt) error {
	if a.ChallengeID == "" {
		return fmt.Errorf("challenge id is required")
	}
	if a.At.IsZero() {
		a.At = time.Now()
	}

	_, err := s.conn.Exec(
		`INSERT INTO attempts (challenge_id, account, code_mask, ok, at) VALUES (?, ?, ?, ?, ?)`,
		a.ChallengeID, a.Account, a.CodeMask, boolToInt(a.OK), a.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, most recent first.
func (s *Store) Recent(limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(
		`SELECT id, challenge_id, account, code_mask, ok, at FROM attempts ORDER BY at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var ok int
		if err := rows.Scan(&a.ID, &a.ChallengeID, &a.Account, &a.CodeMask, &ok, &a.At); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.OK = ok != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

// MaskCode produces the stored representation of a submitted code: the first
// character survives, the rest become bullets.
func MaskCode(code string) string {
	runes := []rune(code)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0]) + strings.Repeat("•", len(runes)-1)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
