package timetable

import (
	"fmt"
	"strings"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
	"github.com/yamkelajack06/Study-Flow/internal/storage"
)

// Ref loosely addresses an entry to delete. Identifiers are tried first;
// the subject, day and start time triple is the fallback for references
// whose id is stale or missing.
type Ref struct {
	ID        string `json:"id,omitempty"`
	StorageID string `json:"firestoreId,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Day       string `json:"day,omitempty"`
	StartTime string `json:"startTime,omitempty"`
}

// RefTo returns a reference that addresses e exactly.
func RefTo(e entry.Entry) Ref {
	return Ref{ID: e.ID, StorageID: e.StorageID, Subject: e.Subject, Day: e.Day(), StartTime: e.StartTime}
}

func (r Ref) String() string {
	if r.StorageID != "" {
		return fmt.Sprintf("%q", r.StorageID)
	}
	if r.ID != "" {
		return fmt.Sprintf("%q", r.ID)
	}
	return fmt.Sprintf("%q on %s at %s", r.Subject, r.Day, r.StartTime)
}

func (r Ref) validate() error {
	if r.StorageID != "" {
		return storage.ValidateIdentifier(r.StorageID)
	}
	if strings.EqualFold(strings.TrimSpace(r.ID), "N/A") {
		return storage.ValidateIdentifier(r.ID)
	}
	return nil
}

func (r Ref) hasTriple() bool {
	return r.Subject != "" && r.Day != "" && r.StartTime != ""
}

// resolve finds the entry r addresses: by storage id, then by id, then by
// subject, day and start time.
func resolve(entries []entry.Entry, r Ref) (entry.Entry, bool) {
	for _, id := range []string{r.StorageID, r.ID} {
		if id == "" {
			continue
		}
		if i := indexOf(entries, id); i >= 0 {
			return entries[i], true
		}
	}
	if !r.hasTriple() {
		return entry.Entry{}, false
	}

	day, ok := schedule.ParseWeekday(r.Day)
	if !ok {
		return entry.Entry{}, false
	}
	start, err := schedule.NormalizeLabel(r.StartTime)
	if err != nil {
		return entry.Entry{}, false
	}
	for _, e := range entries {
		if strings.EqualFold(e.Subject, strings.TrimSpace(r.Subject)) &&
			e.Day() == day.String() && e.StartTime == start {
			return e, true
		}
	}
	return entry.Entry{}, false
}
