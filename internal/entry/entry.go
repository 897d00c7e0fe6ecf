package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// Kind tells which of an entry's date or weekday fields is authoritative.
type Kind string

const (
	KindOnce      Kind = "once"
	KindRecurring Kind = "recurring"
)

// MaxNotesLength bounds the free-text notes of an entry, in characters.
const MaxNotesLength = 100

// ErrInvalid is returned for entries whose shape breaks the data model.
var ErrInvalid = errors.New("invalid entry")

// OneTime holds the calendar date of a one-off entry.
type OneTime struct {
	Date time.Time
}

// Weekly holds the weekday and repetition rule of a recurring entry.
type Weekly struct {
	Day        time.Weekday
	Recurrence schedule.Recurrence
}

// Entry is a scheduled block on the timetable. Exactly one of Once and
// Recurring is set.
type Entry struct {
	ID        string
	StorageID string
	Subject   string
	StartTime string
	EndTime   string
	Category  string
	Color     string
	Notes     string

	Once      *OneTime
	Recurring *Weekly
}

// NewOnce builds a one-time entry on date. Its ID is derived from the key fields.
func NewOnce(subject string, date time.Time, start, end string) Entry {
	e := Entry{
		Subject:   strings.TrimSpace(subject),
		StartTime: start,
		EndTime:   end,
		Once:      &OneTime{Date: schedule.CivilDate(date)},
	}
	e.ID = e.DerivedID()
	return e
}

// NewRecurring builds a recurring entry on day. An empty recurrence means weekly.
func NewRecurring(subject string, day time.Weekday, r schedule.Recurrence, start, end string) Entry {
	if r == "" {
		r = schedule.Weekly
	}
	e := Entry{
		Subject:   strings.TrimSpace(subject),
		StartTime: start,
		EndTime:   end,
		Recurring: &Weekly{Day: day, Recurrence: r},
	}
	e.ID = e.DerivedID()
	return e
}

// Kind reports whether e is a one-time or a recurring entry.
func (e Entry) Kind() Kind {
	if e.Once != nil {
		return KindOnce
	}
	return KindRecurring
}

// Day returns the weekday name of e. For one-time entries it is derived from the date.
func (e Entry) Day() string {
	switch {
	case e.Once != nil:
		return e.Once.Date.Weekday().String()
	case e.Recurring != nil:
		return e.Recurring.Day.String()
	}
	return ""
}

// Date returns the calendar date of a one-time entry as YYYY-MM-DD, or "".
func (e Entry) Date() string {
	if e.Once == nil {
		return ""
	}
	return e.Once.Date.Format(schedule.DateLayout)
}

// Recurrence returns the repetition rule, or "" for one-time entries.
func (e Entry) Recurrence() schedule.Recurrence {
	if e.Recurring == nil {
		return ""
	}
	return e.Recurring.Recurrence
}

// Handle returns the authoritative identifier: the storage id once assigned,
// otherwise the derived id.
func (e Entry) Handle() string {
	if e.StorageID != "" {
		return e.StorageID
	}
	return e.ID
}

// Matches reports whether identifier addresses e by id or storage id.
func (e Entry) Matches(identifier string) bool {
	if identifier == "" {
		return false
	}
	return e.ID == identifier || e.StorageID == identifier
}

// Clone returns a copy of e that shares no pointers with it.
func (e Entry) Clone() Entry {
	if e.Once != nil {
		once := *e.Once
		e.Once = &once
	}
	if e.Recurring != nil {
		rec := *e.Recurring
		e.Recurring = &rec
	}
	return e
}

// Validate checks the shape of e. Time labels are checked separately with
// schedule.ValidateOrder.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	if (e.Once == nil) == (e.Recurring == nil) {
		return fmt.Errorf("%w: entry must be either one-time or recurring", ErrInvalid)
	}
	if e.Once != nil && e.Once.Date.IsZero() {
		return fmt.Errorf("%w: one-time entry needs a date", ErrInvalid)
	}
	if e.Recurring != nil && !e.Recurring.Recurrence.Valid() {
		return fmt.Errorf("%w: unknown recurrence %q", ErrInvalid, e.Recurring.Recurrence)
	}
	if n := utf8.RuneCountInString(e.Notes); n > MaxNotesLength {
		return fmt.Errorf("%w: notes are %d characters, the limit is %d", ErrInvalid, n, MaxNotesLength)
	}
	return nil
}
