package entry

import (
	"fmt"
	"strings"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// Record is the flat, persisted shape of an entry. Field names match the
// JSON written by earlier versions of the timetable so old exports still load.
type Record struct {
	ID         string `json:"id" yaml:"id,omitempty"`
	StorageID  string `json:"firestoreId,omitempty" yaml:"firestoreId,omitempty"`
	Subject    string `json:"subject" yaml:"subject"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	Day        string `json:"day,omitempty" yaml:"day,omitempty"`
	Recurrence string `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
	StartTime  string `json:"startTime" yaml:"startTime"`
	EndTime    string `json:"endTime" yaml:"endTime"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Record flattens e for persistence. One-time entries carry their derived
// weekday in Day.
func (e Entry) Record() Record {
	r := Record{
		ID:        e.ID,
		StorageID: e.StorageID,
		Subject:   e.Subject,
		Type:      string(e.Kind()),
		Day:       e.Day(),
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Category:  e.Category,
		Color:     e.Color,
		Notes:     e.Notes,
	}
	if e.Once != nil {
		r.Date = e.Date()
	} else if e.Recurring != nil {
		r.Recurrence = string(e.Recurring.Recurrence)
	}
	return r
}

// Normalize upgrades a stored record into an Entry. Legacy records without
// a type are recurring, a missing recurrence means weekly, and a one-time
// record's weekday is always recomputed from its date. Time labels are
// rewritten as "H:MM AM" when they parse and kept verbatim otherwise.
func Normalize(r Record) (Entry, error) {
	e := Entry{
		ID:        strings.TrimSpace(r.ID),
		StorageID: strings.TrimSpace(r.StorageID),
		Subject:   strings.TrimSpace(r.Subject),
		StartTime: normalizeLabel(r.StartTime),
		EndTime:   normalizeLabel(r.EndTime),
		Category:  r.Category,
		Color:     r.Color,
		Notes:     r.Notes,
	}

	switch Kind(strings.ToLower(strings.TrimSpace(r.Type))) {
	case KindOnce:
		date, err := schedule.ParseCalendarDate(r.Date)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: record %q: %v", ErrInvalid, r.ID, err)
		}
		e.Once = &OneTime{Date: date}
	case KindRecurring, "":
		w, err := normalizeWeekly(r)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: record %q: %v", ErrInvalid, r.ID, err)
		}
		e.Recurring = w
	default:
		return Entry{}, fmt.Errorf("%w: record %q has unknown type %q", ErrInvalid, r.ID, r.Type)
	}

	if e.ID == "" {
		e.ID = e.DerivedID()
	}
	if e.Subject == "" {
		return Entry{}, fmt.Errorf("%w: record %q has no subject", ErrInvalid, r.ID)
	}
	return e, nil
}

func normalizeWeekly(r Record) (*Weekly, error) {
	day, ok := schedule.ParseWeekday(r.Day)
	if !ok {
		// Legacy records sometimes only kept the date.
		date, err := schedule.ParseCalendarDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("unrecognized day %q", r.Day)
		}
		day = date.Weekday()
	}

	rec := schedule.Weekly
	if s := strings.TrimSpace(r.Recurrence); s != "" && !strings.EqualFold(s, "none") {
		parsed, err := schedule.ParseRecurrence(s)
		if err != nil {
			return nil, err
		}
		rec = parsed
	}
	return &Weekly{Day: day, Recurrence: rec}, nil
}

func normalizeLabel(s string) string {
	if label, err := schedule.NormalizeLabel(s); err == nil {
		return label
	}
	return strings.TrimSpace(s)
}
