package timetable

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/logging"
	"github.com/yamkelajack06/Study-Flow/internal/metrics"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
	"github.com/yamkelajack06/Study-Flow/internal/storage"
)

// DeletePrompt is shown before a single entry is deleted.
const DeletePrompt = "Are you sure you want to delete this timetable entry? This action cannot be undone."

const persistenceMessage = "Could not reach storage. Please try again."

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) (bool, error)

// AlwaysConfirm accepts every confirmation. It is the store's default, for
// callers that confirm deletes before reaching the store.
func AlwaysConfirm(string) (bool, error) { return true, nil }

// Store owns the timetable of one session. Every mutation is validated,
// checked for conflicts and persisted through the strategy before the
// in-memory collection changes.
//
// Mutations are expected to come from a single writer. The mutex only keeps
// readers consistent; two overlapping updates can still both pass conflict
// detection against the same stale snapshot.
type Store struct {
	mu         sync.Mutex
	entries    []entry.Entry
	categories []Category

	strategy storage.Strategy
	log      logging.Logger
	confirm  ConfirmFunc
	metrics  metrics.Recorder
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithConfirm sets the confirmation prompt used before deletes. A nil c
// keeps AlwaysConfirm.
func WithConfirm(c ConfirmFunc) Option {
	return func(s *Store) {
		if c != nil {
			s.confirm = c
		}
	}
}

// WithMetrics sets the operation recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *Store) { s.metrics = r }
}

// WithClock sets the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCategories registers categories on top of the defaults.
func WithCategories(cs ...Category) Option {
	return func(s *Store) {
		for _, c := range cs {
			s.addCategory(c.Name, c.Color)
		}
	}
}

// New loads the timetable from strategy. Records that cannot be upgraded to
// valid entries are logged and skipped.
func New(ctx context.Context, strategy storage.Strategy, opts ...Option) (*Store, error) {
	s := &Store{
		strategy:   strategy,
		log:        logging.NewNopLogger(),
		confirm:    AlwaysConfirm,
		metrics:    metrics.Nop{},
		now:        time.Now,
		categories: DefaultCategories(),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := strategy.GetEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading entries: %v", ErrPersistence, err)
	}
	for _, r := range records {
		e, err := entry.Normalize(r)
		if err != nil {
			s.log.Warn("skipping stored entry", "id", r.ID, "storage_id", r.StorageID, "error", err)
			continue
		}
		s.entries = append(s.entries, e)
	}
	s.log.Debug("timetable loaded", "entries", len(s.entries), "skipped", len(records)-len(s.entries))
	return s, nil
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Entries returns a copy of the collection in insertion order.
func (s *Store) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.entries)
}

// Find returns the entry addressed by identifier (id or storage id).
func (s *Store) Find(identifier string) (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.entries, identifier); i >= 0 {
		return s.entries[i].Clone(), true
	}
	return entry.Entry{}, false
}

// Add validates candidate, rejects it if it overlaps an entry on the same
// day, then persists it.
func (s *Store) Add(ctx context.Context, candidate entry.Entry) Result {
	e, err := s.prepare(candidate, s.Entries(), "", false)
	if err != nil {
		return s.reject("add", err)
	}

	stored, err := s.strategy.AddEntry(ctx, e.Record())
	if err != nil {
		return s.persistFailure("add", e, err)
	}
	e.StorageID = stored.StorageID

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.log.Info("entry added", "id", e.ID, "storage_id", e.StorageID)
	s.metrics.Operation("add", metrics.ResultOK)
	return success(e, fmt.Sprintf("Added %q.", e.Subject))
}

// Update replaces the entry addressed by priorID with candidate. Empty
// category, color and notes are carried over from the prior version, and
// the id is recomputed from the new key fields.
func (s *Store) Update(ctx context.Context, priorID string, candidate entry.Entry) Result {
	if priorID == "" {
		priorID = candidate.Handle()
	}
	snapshot := s.Entries()
	i := indexOf(snapshot, priorID)
	if i < 0 {
		return s.reject("update", fmt.Errorf("%w: %q", ErrNotFound, priorID))
	}
	prev := snapshot[i]

	candidate = candidate.Clone()
	candidate.StorageID = prev.StorageID
	if candidate.Category == "" {
		candidate.Category = prev.Category
	}
	if candidate.Color == "" && strings.EqualFold(candidate.Category, prev.Category) {
		candidate.Color = prev.Color
	}
	if candidate.Notes == "" {
		candidate.Notes = prev.Notes
	}

	e, err := s.prepare(candidate, snapshot, prev.Handle(), true)
	if err != nil {
		return s.reject("update", err)
	}

	stored, err := s.strategy.UpdateEntry(ctx, prev.Handle(), e.Record())
	if err != nil {
		return s.persistFailure("update", e, err)
	}
	e.StorageID = stored.StorageID

	s.mu.Lock()
	if j := indexOf(s.entries, prev.Handle()); j >= 0 {
		s.entries[j] = e
	}
	s.mu.Unlock()

	s.log.Info("entry updated", "prior_id", prev.ID, "id", e.ID, "storage_id", e.StorageID)
	s.metrics.Operation("update", metrics.ResultOK)
	return success(e, fmt.Sprintf("Updated %q.", e.Subject))
}

// Delete removes the entry addressed by ref after asking for confirmation.
// A declined confirmation is reported as Cancelled, not as an error.
func (s *Store) Delete(ctx context.Context, ref Ref) Result {
	if err := ref.validate(); err != nil {
		return s.reject("delete", err)
	}

	target, ok := resolve(s.Entries(), ref)
	if !ok {
		return s.reject("delete", fmt.Errorf("%w: %s", ErrNotFound, ref))
	}

	yes, err := s.confirm(DeletePrompt)
	if err != nil {
		return s.reject("delete", fmt.Errorf("confirming delete: %w", err))
	}
	if !yes {
		s.metrics.Operation("delete", metrics.ResultCancelled)
		return Result{Cancelled: true, Message: "Delete cancelled."}
	}

	if err := s.remove(ctx, target); err != nil {
		if errors.Is(err, ErrInvalidIdentifier) {
			return s.reject("delete", err)
		}
		return s.persistFailure("delete", target, err)
	}

	s.metrics.Operation("delete", metrics.ResultOK)
	return success(target, fmt.Sprintf("Deleted %q.", target.Subject))
}

// remove deletes target from the strategy and then from the collection.
func (s *Store) remove(ctx context.Context, target entry.Entry) error {
	if err := s.strategy.DeleteEntry(ctx, target.Handle()); err != nil {
		return err
	}

	s.mu.Lock()
	if i := indexOf(s.entries, target.Handle()); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	s.mu.Unlock()

	s.log.Info("entry deleted", "id", target.ID, "storage_id", target.StorageID)
	return nil
}

// prepare runs every check an entry must pass before it is persisted and
// returns the entry as it will be stored.
func (s *Store) prepare(candidate entry.Entry, snapshot []entry.Entry, priorID string, isUpdate bool) (entry.Entry, error) {
	e := candidate.Clone()

	start, err := schedule.NormalizeLabel(e.StartTime)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := schedule.NormalizeLabel(e.EndTime)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("invalid end time: %w", err)
	}
	e.StartTime, e.EndTime = start, end

	if err := schedule.ValidateOrder(e.StartTime, e.EndTime); err != nil {
		return entry.Entry{}, err
	}
	e.Subject = strings.TrimSpace(e.Subject)
	if err := e.Validate(); err != nil {
		return entry.Entry{}, err
	}

	if e.Color == "" {
		e.Color = s.ColorFor(e.Category)
	}
	e.ID = e.DerivedID()

	if c := entry.DetectConflict(snapshot, e, priorID, isUpdate); c.HasConflict {
		s.metrics.Conflict()
		return entry.Entry{}, &conflictError{msg: c.Message, with: *c.Conflicting}
	}
	return e, nil
}

func (s *Store) reject(op string, err error) Result {
	s.log.Debug("operation rejected", "op", op, "error", err)
	s.metrics.Operation(op, metrics.ResultRejected)

	var ce *conflictError
	if errors.As(err, &ce) {
		return failure(err, ce.msg)
	}
	if errors.Is(err, ErrInvalidOrder) {
		return failure(err, "End time must be after start time")
	}
	return failure(err, "")
}

func (s *Store) persistFailure(op string, e entry.Entry, err error) Result {
	s.log.Error("storage operation failed", "op", op, "id", e.ID, "error", err)
	s.metrics.Operation(op, metrics.ResultFailed)
	if errors.Is(err, ErrNotFound) {
		return failure(err, "")
	}
	return failure(fmt.Errorf("%w: %v", ErrPersistence, err), persistenceMessage)
}

// conflictError carries the entry a candidate overlaps.
type conflictError struct {
	msg  string
	with entry.Entry
}

func (e *conflictError) Error() string { return ErrConflict.Error() + ": " + e.msg }
func (e *conflictError) Unwrap() error { return ErrConflict }

// ConflictingEntry returns the existing entry that caused a conflict
// rejection, if err is one.
func ConflictingEntry(err error) (entry.Entry, bool) {
	var ce *conflictError
	if errors.As(err, &ce) {
		return ce.with, true
	}
	return entry.Entry{}, false
}

func indexOf(entries []entry.Entry, identifier string) int {
	for i, e := range entries {
		if e.StorageID != "" && e.StorageID == identifier {
			return i
		}
	}
	for i, e := range entries {
		if e.Matches(identifier) {
			return i
		}
	}
	return -1
}

func cloneAll(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
