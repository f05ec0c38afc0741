package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// ErrUnknownCollection is returned when an operation names a collection that
// is not part of the schema.
var ErrUnknownCollection = errors.New("unknown collection")

// Store is the embedded store engine: a single versioned database file
// holding one sub-collection per schema entity, each record persisted as a
// JSON blob keyed by its id. Every operation runs in its own transaction
// scoped to one collection; there is no cross-collection transaction.
type Store struct {
	path string

	initOnce sync.Once
	initErr  error
	db       *sql.DB
}

// NewStore creates a store for the given file path. The file is not opened
// until Init.
func NewStore(path string) *Store {
	if path == "" {
		path = "kuskodento.db"
	}
	return &Store{path: path}
}

// Init opens (creating on first run) the database file and upgrades the
// schema when needed. It is idempotent: concurrent callers all observe the
// same single open handle, and repeat calls return the first outcome.
func (s *Store) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.open(ctx)
	})
	return s.initErr
}

func (s *Store) open(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return errors.Wrap(err, "failed to create data directory")
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.Wrap(err, "failed to open database file")
	}
	// A single connection keeps every statement on one handle, matching the
	// one-writer model of the embedded engine.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	if err := migrate(ctx, db); err != nil {
		return err
	}

	s.db = db
	log.Println("Store initialized successfully.")
	return nil
}

// migrate creates the collection tables and the sidecar settings table, then
// stamps the schema version.
func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}
	if version > SchemaVersion {
		return errors.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for _, name := range collections {
		stmt := `CREATE TABLE IF NOT EXISTS "` + name + `" (
			id TEXT PRIMARY KEY,
			record BLOB NOT NULL
		)`
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to create collection %s", name)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		return errors.Wrap(err, "failed to create settings table")
	}

	if version < SchemaVersion {
		if _, err := db.ExecContext(ctx, `PRAGMA user_version = `+strconv.Itoa(SchemaVersion)); err != nil {
			return errors.Wrap(err, "failed to stamp schema version")
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) table(collection string) (string, error) {
	if !IsCollection(collection) {
		return "", errors.Wrap(ErrUnknownCollection, collection)
	}
	return `"` + collection + `"`, nil
}

// GetAll returns every record in the named collection as raw JSON documents,
// in no particular order. An empty collection yields an empty slice.
func (s *Store) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT record FROM `+table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read collection %s", collection)
	}
	defer func() { _ = rows.Close() }()

	records := []json.RawMessage{}
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, errors.Wrapf(err, "failed to scan record from %s", collection)
		}
		records = append(records, json.RawMessage(record))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate collection %s", collection)
	}
	return records, nil
}

// GetByID returns the record with the given id, or (nil, nil) when it does
// not exist. A missing key is never an error.
func (s *Store) GetByID(ctx context.Context, collection, id string) (json.RawMessage, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	table, err := s.table(collection)
	if err != nil {
		return nil, err
	}

	var record []byte
	err = s.db.QueryRowContext(ctx, `SELECT record FROM `+table+` WHERE id = ?`, id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read record %s from %s", id, collection)
	}
	return json.RawMessage(record), nil
}

// Put inserts or fully replaces the record keyed by its own "id" field.
// There is no partial merge: an existing record with the same id is
// overwritten entirely.
func (s *Store) Put(ctx context.Context, collection string, record interface{}) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	table, err := s.table(collection)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "failed to encode record for %s", collection)
	}
	var key struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &key); err != nil {
		return errors.Wrapf(err, "failed to extract record id for %s", collection)
	}
	if key.ID == "" {
		return errors.Errorf("record for %s is missing an id", collection)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, record) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record`,
		key.ID, payload)
	if err != nil {
		return errors.Wrapf(err, "failed to put record %s into %s", key.ID, collection)
	}
	return nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	table, err := s.table(collection)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id); err != nil {
		return errors.Wrapf(err, "failed to delete record %s from %s", id, collection)
	}
	return nil
}

// Clear removes every record in the named collection. Used by the backup
// importer before restoring a collection.
func (s *Store) Clear(ctx context.Context, collection string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}
	table, err := s.table(collection)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return errors.Wrapf(err, "failed to clear collection %s", collection)
	}
	return nil
}
