package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
)

var (
	// ErrNotFound is returned when no stored record matches an identifier.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidIdentifier is returned for placeholder or path-unsafe identifiers.
	ErrInvalidIdentifier = errors.New("invalid entry identifier")
	// errUndecodable marks a stored object that is not a valid record.
	// Loading skips such objects.
	errUndecodable = errors.New("undecodable entry")
)

// Strategy persists timetable records. The store drives it; a strategy never
// changes the store's collection on its own.
type Strategy interface {
	// GetEntries returns every stored record in insertion order.
	GetEntries(ctx context.Context) ([]entry.Record, error)
	// AddEntry stores r and returns it as stored, possibly with a new StorageID.
	AddEntry(ctx context.Context, r entry.Record) (entry.Record, error)
	// UpdateEntry replaces the record addressed by identifier (a storage id or
	// a derived id) with r and returns it as stored.
	UpdateEntry(ctx context.Context, identifier string, r entry.Record) (entry.Record, error)
	// DeleteEntry removes the record addressed by identifier.
	DeleteEntry(ctx context.Context, identifier string) error
	Close() error
}

// ValidateIdentifier rejects identifiers that cannot address a stored record:
// the empty string, the "N/A" placeholder and anything that could escape a
// key prefix.
func ValidateIdentifier(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" || strings.EqualFold(trimmed, "N/A") ||
		strings.ContainsAny(trimmed, `/\`) || strings.Contains(trimmed, "..") {
		return fmt.Errorf("%w %q: this entry may have been created locally before sign-in, refresh and try again",
			ErrInvalidIdentifier, id)
	}
	return nil
}

// findIndex returns the position of the record addressed by id, matching the
// storage id first and the derived id second.
func findIndex(records []entry.Record, id string) int {
	for i, r := range records {
		if r.StorageID != "" && r.StorageID == id {
			return i
		}
	}
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
