// Package store provides SQLite-based persistence for change records.
// It manages the append-only history log and its version/scope queries.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilupskalvis/dochist/internal/models"
)

// Store represents the SQLite change record store
type Store struct {
	db *sql.DB
}

// New creates a new store connection
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema
func (s *Store) Initialize() error {
	schema := `
	-- Change records (append-only history log)
	CREATE TABLE IF NOT EXISTS change_records (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		version INTEGER NOT NULL,
		action TEXT NOT NULL,
		root_type TEXT NOT NULL,
		root_id TEXT NOT NULL,
		chain JSON NOT NULL,
		original JSON,
		modified JSON,
		modifier_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_change_records_root
		ON change_records(root_type, root_id, version);
	CREATE INDEX IF NOT EXISTS idx_change_records_scope
		ON change_records(scope, version);
	CREATE INDEX IF NOT EXISTS idx_change_records_modifier
		ON change_records(modifier_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRecord persists a change record. A zero version is assigned the
// next version for the record's scope and root document.
func (s *Store) SaveRecord(record *models.ChangeRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if record.Version == 0 {
		version, err := s.nextVersion(record.Scope, record.RootType(), record.Root().ID)
		if err != nil {
			return err
		}
		record.Version = version
	}

	chain, err := json.Marshal(record.Chain)
	if err != nil {
		return fmt.Errorf("marshal chain: %w", err)
	}
	original, err := json.Marshal(record.Original)
	if err != nil {
		return fmt.Errorf("marshal original: %w", err)
	}
	modified, err := json.Marshal(record.Modified)
	if err != nil {
		return fmt.Errorf("marshal modified: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO change_records
			(id, scope, version, action, root_type, root_id, chain, original, modified, modifier_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Scope, record.Version, string(record.Action),
		record.RootType(), record.Root().ID, string(chain), string(original), string(modified),
		record.ModifierID, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// nextVersion returns one past the highest version stored for the
// scope and root document.
func (s *Store) nextVersion(scope, rootType, rootID string) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow(`
		SELECT MAX(version) FROM change_records
		WHERE scope = ? AND root_type = ? AND root_id = ?`,
		scope, rootType, rootID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to query version: %w", err)
	}
	return int(version.Int64) + 1, nil
}

// GetRecord returns a change record by id.
func (s *Store) GetRecord(id string) (*models.ChangeRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, scope, version, action, chain, original, modified, modifier_id, created_at, updated_at
		FROM change_records WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: change record %s", models.ErrNotFound, id)
	}
	return record, err
}

// GetRecordByShortID returns a change record by an id prefix. Fails if
// the prefix is ambiguous.
func (s *Store) GetRecordByShortID(prefix string) (*models.ChangeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, scope, version, action, chain, original, modified, modifier_id, created_at, updated_at
		FROM change_records WHERE id LIKE ? LIMIT 2`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%w: change record %s", models.ErrNotFound, prefix)
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("ambiguous record id prefix: %s", prefix)
	}
}

// ListByRoot returns every record whose chain starts at the given root
// document, ordered by version.
func (s *Store) ListByRoot(rootType, rootID string) ([]*models.ChangeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, scope, version, action, chain, original, modified, modifier_id, created_at, updated_at
		FROM change_records WHERE root_type = ? AND root_id = ?
		ORDER BY version`, rootType, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByScope returns every record in a scope, ordered by version.
func (s *Store) ListByScope(scope string) ([]*models.ChangeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, scope, version, action, chain, original, modified, modifier_id, created_at, updated_at
		FROM change_records WHERE scope = ?
		ORDER BY version`, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListByActor returns every record made by the given modifier,
// newest first.
func (s *Store) ListByActor(modifierID string) ([]*models.ChangeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, scope, version, action, chain, original, modified, modifier_id, created_at, updated_at
		FROM change_records WHERE modifier_id = ?
		ORDER BY created_at DESC`, modifierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// scanner matches sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one change record row.
func scanRecord(row scanner) (*models.ChangeRecord, error) {
	var record models.ChangeRecord
	var action string
	var chain, original, modified []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&record.ID, &record.Scope, &record.Version, &action,
		&chain, &original, &modified, &record.ModifierID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Action = models.Action(action)
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	if err := json.Unmarshal(chain, &record.Chain); err != nil {
		return nil, fmt.Errorf("unmarshal chain: %w", err)
	}
	if err := json.Unmarshal(original, &record.Original); err != nil {
		return nil, fmt.Errorf("unmarshal original: %w", err)
	}
	if err := json.Unmarshal(modified, &record.Modified); err != nil {
		return nil, fmt.Errorf("unmarshal modified: %w", err)
	}
	return &record, nil
}

// collectRecords reads all change record rows.
func collectRecords(rows *sql.Rows) ([]*models.ChangeRecord, error) {
	var records []*models.ChangeRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
