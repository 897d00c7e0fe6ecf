package timetable

import (
	"time"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// EntriesForDate returns the entries that take place on date, in
// collection order.
func (s *Store) EntriesForDate(date time.Time) []entry.Entry {
	return entry.OccurringOn(s.Entries(), date)
}

// EntriesForToday returns the entries that take place on the store's
// current date.
func (s *Store) EntriesForToday() []entry.Entry {
	return s.EntriesForDate(s.now())
}

// EntriesForRange returns every occurrence between from and to, inclusive,
// ordered by date and start time.
func (s *Store) EntriesForRange(from, to time.Time) ([]entry.Occurrence, error) {
	return entry.Expand(s.Entries(), from, to)
}

// EntriesForWeek returns the occurrences of the Monday-based week containing date.
func (s *Store) EntriesForWeek(date time.Time) ([]entry.Occurrence, error) {
	days := schedule.WeekDates(date)
	return s.EntriesForRange(days[0], days[len(days)-1])
}

// EntriesForMonth returns the occurrences of the month containing date.
func (s *Store) EntriesForMonth(date time.Time) ([]entry.Occurrence, error) {
	days := schedule.MonthDates(date)
	return s.EntriesForRange(days[0], days[len(days)-1])
}
