// Package sqlite provides persistent storage for crawl records and
// sessions backed by a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dialogue-labs/botscript/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the crawl record and session store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.botscript/data/botscript.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".botscript", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "botscript.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CrawlRecordStore returns a CrawlRecordStore interface backed by this store.
func (s *Store) CrawlRecordStore() driven.CrawlRecordStore {
	return &crawlRecordStore{store: s}
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Crawl Record Store ====================

// crawlRecordStore implements driven.CrawlRecordStore.
type crawlRecordStore struct {
	store *Store
}

var _ driven.CrawlRecordStore = (*crawlRecordStore)(nil)

// Create inserts a record unless its identifier already exists. The
// primary key constraint resolves concurrent creates: exactly one
// caller observes created.
func (s *crawlRecordStore) Create(ctx context.Context, record domain.CrawlRecord) (bool, error) {
	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO crawl_records (identifier, kind, collection_id, status, registered_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(identifier) DO NOTHING
	`, record.Identifier, string(record.Kind), record.CollectionID,
		int(record.Status), record.RegisteredAt, nullTime(record.CompletedAt))
	if err != nil {
		return false, fmt.Errorf("creating crawl record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking insert result: %w", err)
	}
	return affected > 0, nil
}

// Get retrieves a record by identifier.
func (s *crawlRecordStore) Get(ctx context.Context, identifier string) (*domain.CrawlRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT identifier, kind, collection_id, status, registered_at, completed_at
		FROM crawl_records WHERE identifier = ?
	`, identifier)

	return scanCrawlRecord(row)
}

// Update overwrites an existing record.
func (s *crawlRecordStore) Update(ctx context.Context, record domain.CrawlRecord) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE crawl_records
		SET kind = ?, collection_id = ?, status = ?, registered_at = ?, completed_at = ?
		WHERE identifier = ?
	`, string(record.Kind), record.CollectionID, int(record.Status),
		record.RegisteredAt, nullTime(record.CompletedAt), record.Identifier)
	if err != nil {
		return fmt.Errorf("updating crawl record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all registered records.
func (s *crawlRecordStore) List(ctx context.Context) ([]domain.CrawlRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT identifier, kind, collection_id, status, registered_at, completed_at
		FROM crawl_records
		ORDER BY registered_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying crawl records: %w", err)
	}
	defer rows.Close()

	var records []domain.CrawlRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var record domain.CrawlRecord
		var kind string
		var status int
		var completedAt sql.NullTime
		if err := rows.Scan(&record.Identifier, &kind, &record.CollectionID,
			&status, &record.RegisteredAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning crawl record: %w", err)
		}
		record.Kind = domain.ResourceKind(kind)
		record.Status = domain.CrawlStatus(status)
		if completedAt.Valid {
			record.CompletedAt = completedAt.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crawl records: %w", err)
	}

	return records, nil
}

// scanCrawlRecord scans a single crawl record row.
func scanCrawlRecord(row *sql.Row) (*domain.CrawlRecord, error) {
	var record domain.CrawlRecord
	var kind string
	var status int
	var completedAt sql.NullTime

	if err := row.Scan(&record.Identifier, &kind, &record.CollectionID,
		&status, &record.RegisteredAt, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning crawl record: %w", err)
	}

	record.Kind = domain.ResourceKind(kind)
	record.Status = domain.CrawlStatus(status)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time
	}

	return &record, nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores or updates a session.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	variablesJSON, err := json.Marshal(session.Variables)
	if err != nil {
		return fmt.Errorf("marshalling variables: %w", err)
	}
	collectionsJSON, err := json.Marshal(session.Collections)
	if err != nil {
		return fmt.Errorf("marshalling collections: %w", err)
	}
	bodiesJSON, err := json.Marshal(session.LastSentBodies)
	if err != nil {
		return fmt.Errorf("marshalling sent bodies: %w", err)
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, channel, variables, collections, last_sent_bodies, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			channel = excluded.channel,
			variables = excluded.variables,
			collections = excluded.collections,
			last_sent_bodies = excluded.last_sent_bodies,
			updated_at = excluded.updated_at
	`, session.ID, string(session.Channel), string(variablesJSON),
		string(collectionsJSON), string(bodiesJSON), session.CreatedAt, session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, channel, variables, collections, last_sent_bodies, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	var session domain.Session
	var channel, variablesJSON, collectionsJSON, bodiesJSON string
	if err := row.Scan(&session.ID, &channel, &variablesJSON, &collectionsJSON,
		&bodiesJSON, &session.CreatedAt, &session.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	session.Channel = domain.Channel(channel)
	if err := json.Unmarshal([]byte(variablesJSON), &session.Variables); err != nil {
		return nil, fmt.Errorf("unmarshalling variables: %w", err)
	}
	if err := json.Unmarshal([]byte(collectionsJSON), &session.Collections); err != nil {
		return nil, fmt.Errorf("unmarshalling collections: %w", err)
	}
	if err := json.Unmarshal([]byte(bodiesJSON), &session.LastSentBodies); err != nil {
		return nil, fmt.Errorf("unmarshalling sent bodies: %w", err)
	}
	if session.Variables == nil {
		session.Variables = make(map[string]string)
	}
	if session.LastSentBodies == nil {
		session.LastSentBodies = make(map[string]string)
	}

	return &session, nil
}

// Delete removes a session.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// nullTime maps a zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
