package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/storage/migrations"
)

// SQLite keeps the timetables of signed-in users in one database, each row
// scoped by user id. Storage ids are UUIDs.
type SQLite struct {
	db     *sql.DB
	userID string
	now    func() time.Time
}

// OpenConnection opens a SQLite database and applies the schema.
// path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLite opens the database at path for userID.
func NewSQLite(path, userID string) (*SQLite, error) {
	if userID == "" {
		return nil, errors.New("sqlite storage requires a user id")
	}
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLite{db: db, userID: userID, now: time.Now}, nil
}

// NewSQLiteFromDB wraps an open, migrated connection for userID. Several
// users may share one connection.
func NewSQLiteFromDB(db *sql.DB, userID string) *SQLite {
	return &SQLite{db: db, userID: userID, now: time.Now}
}

const selectColumns = `storage_id, entry_id, subject, kind, date, day, recurrence,
	start_time, end_time, category, color, notes`

func (s *SQLite) GetEntries(ctx context.Context) ([]entry.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM entries WHERE user_id = ? ORDER BY rowid`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var records []entry.Record
	for rows.Next() {
		var r entry.Record
		if err := rows.Scan(&r.StorageID, &r.ID, &r.Subject, &r.Type, &r.Date, &r.Day, &r.Recurrence,
			&r.StartTime, &r.EndTime, &r.Category, &r.Color, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return records, nil
}

func (s *SQLite) AddEntry(ctx context.Context, r entry.Record) (entry.Record, error) {
	r.StorageID = uuid.New().String()
	_, err := s.db.ExecContext(ctx, `INSERT INTO entries (storage_id, user_id, entry_id, subject, kind, date,
		day, recurrence, start_time, end_time, category, color, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StorageID, s.userID, r.ID, r.Subject, r.Type, r.Date, r.Day, r.Recurrence,
		r.StartTime, r.EndTime, r.Category, r.Color, r.Notes, s.now().UTC())
	if err != nil {
		return entry.Record{}, fmt.Errorf("inserting entry %q: %w", r.ID, err)
	}
	return r, nil
}

func (s *SQLite) UpdateEntry(ctx context.Context, identifier string, r entry.Record) (entry.Record, error) {
	id, err := s.resolve(ctx, identifier)
	if err != nil {
		return entry.Record{}, err
	}
	r.StorageID = id

	_, err = s.db.ExecContext(ctx, `UPDATE entries SET entry_id = ?, subject = ?, kind = ?, date = ?, day = ?,
		recurrence = ?, start_time = ?, end_time = ?, category = ?, color = ?, notes = ?
		WHERE storage_id = ? AND user_id = ?`,
		r.ID, r.Subject, r.Type, r.Date, r.Day, r.Recurrence, r.StartTime, r.EndTime,
		r.Category, r.Color, r.Notes, id, s.userID)
	if err != nil {
		return entry.Record{}, fmt.Errorf("updating entry %q: %w", id, err)
	}
	return r, nil
}

func (s *SQLite) DeleteEntry(ctx context.Context, identifier string) error {
	if err := ValidateIdentifier(identifier); err != nil {
		return err
	}
	id, err := s.resolve(ctx, identifier)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE storage_id = ? AND user_id = ?`, id, s.userID); err != nil {
		return fmt.Errorf("deleting entry %q: %w", id, err)
	}
	return nil
}

// resolve maps a storage id or derived id to the storage id of one of the
// user's rows.
func (s *SQLite) resolve(ctx context.Context, identifier string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT storage_id FROM entries
		WHERE user_id = ? AND (storage_id = ? OR entry_id = ?)
		ORDER BY storage_id = ? DESC, rowid LIMIT 1`,
		s.userID, identifier, identifier, identifier).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, identifier)
	}
	if err != nil {
		return "", fmt.Errorf("resolving entry %q: %w", identifier, err)
	}
	return id, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
