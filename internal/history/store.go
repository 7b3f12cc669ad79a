// Package history persists a local record of uploads and downloads in a
// SQLite database. The CLI writes an entry per transfer and reads them back
// for `bindist history`; the library itself never touches this package.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, registers as "sqlite".
)

// Transfer kinds.
const (
	KindUpload   = "upload"
	KindDownload = "download"
)

// Transfer outcomes.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry is one recorded transfer.
type Entry struct {
	ID            string
	Kind          string
	Profile       string
	ApplicationID string
	Version       string
	FileName      string
	FileSize      int64
	Checksum      string
	Status        string
	ErrorMsg      string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Filter narrows List results. The zero value matches every entry.
type Filter struct {
	Kind          string
	ApplicationID string
	Status        string
	Limit         int
}

// Store is the transfer history database. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens (creating if needed) the history database at dbPath and runs
// pending migrations. Use ":memory:" for tests.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
			return nil, fmt.Errorf("history: creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: opening database: %w", err)
	}

	if err := setPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(context.Background(), db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func setPragmas(db *sql.DB) error {
	pragmas := []struct {
		sql  string
		desc string
	}{
		{"PRAGMA journal_mode=WAL", "enable write-ahead logging"},
		{"PRAGMA synchronous=NORMAL", "balanced durability for a local cache"},
		{"PRAGMA foreign_keys=ON", "enforce foreign keys"},
		{"PRAGMA journal_size_limit=67108864", "cap WAL size at 64MB"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.sql); err != nil {
			return fmt.Errorf("history: %s: %w", p.desc, err)
		}
	}
	return nil
}

// Record inserts a transfer entry and returns its ID. A missing ID is
// assigned, and a zero StartedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transfers (
			id, kind, profile, application_id, version, file_name,
			file_size, checksum, status, error_msg, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Profile, e.ApplicationID, e.Version, e.FileName,
		e.FileSize, nullString(e.Checksum), e.Status, nullString(e.ErrorMsg),
		e.StartedAt.UnixNano(), timeToNano(e.FinishedAt),
	)
	if err != nil {
		return "", fmt.Errorf("history: recording transfer: %w", err)
	}

	s.logger.Info("recorded transfer",
		slog.String("kind", e.Kind),
		slog.String("application_id", e.ApplicationID),
		slog.String("version", e.Version),
		slog.String("status", e.Status))

	return e.ID, nil
}

// List returns entries matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `
		SELECT id, kind, profile, application_id, version, file_name,
		       file_size, checksum, status, error_msg, started_at, finished_at
		FROM transfers`

	var conds []string
	var args []any
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.ApplicationID != "" {
		conds = append(conds, "application_id = ?")
		args = append(args, f.ApplicationID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY started_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: listing transfers: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                  Entry
			checksum, errorMsg sql.NullString
			startedNs, finNs   int64
		)
		err := rows.Scan(&e.ID, &e.Kind, &e.Profile, &e.ApplicationID,
			&e.Version, &e.FileName, &e.FileSize, &checksum, &e.Status,
			&errorMsg, &startedNs, &finNs)
		if err != nil {
			return nil, fmt.Errorf("history: scanning transfer: %w", err)
		}
		e.Checksum = checksum.String
		e.ErrorMsg = errorMsg.String
		e.StartedAt = time.Unix(0, startedNs)
		e.FinishedAt = nanoToTime(finNs)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: reading transfers: %w", err)
	}
	return entries, nil
}

// Prune deletes entries whose start time is older than the cutoff and
// returns how many were removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixNano()
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transfers WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: pruning transfers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("history: pruning transfers: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned transfer history", slog.Int64("removed", n))
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timeToNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func nanoToTime(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
