package entry

import (
	"fmt"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// ConflictResult is the outcome of DetectConflict.
type ConflictResult struct {
	HasConflict bool
	Conflicting *Entry
	Message     string
}

// DetectConflict looks for an entry in existing that shares the candidate's
// weekday name and whose time range overlaps it. The first overlap in
// collection order wins.
//
// Days are compared by name only: a one-time entry on a Monday is checked
// against every Monday entry, whatever its recurrence.
//
// On update, entries addressed by priorID (or the candidate's own id when
// priorID is empty) are ignored so an entry never clashes with its old self.
// Existing entries with unparseable times are skipped. The candidate's own
// times must already have been validated.
func DetectConflict(existing []Entry, candidate Entry, priorID string, isUpdate bool) ConflictResult {
	start, err := schedule.ToMinutes(candidate.StartTime)
	if err != nil {
		return ConflictResult{}
	}
	end, err := schedule.ToMinutes(candidate.EndTime)
	if err != nil {
		return ConflictResult{}
	}

	self := priorID
	if self == "" {
		self = candidate.ID
	}
	day := candidate.Day()

	for i := range existing {
		other := existing[i]
		if isUpdate && (other.Matches(self) || other.Matches(candidate.StorageID)) {
			continue
		}
		if other.Day() != day {
			continue
		}

		oStart, err := schedule.ToMinutes(other.StartTime)
		if err != nil {
			continue
		}
		oEnd, err := schedule.ToMinutes(other.EndTime)
		if err != nil {
			continue
		}

		if schedule.IntervalsOverlap(start, end, oStart, oEnd) {
			conflicting := other.Clone()
			return ConflictResult{
				HasConflict: true,
				Conflicting: &conflicting,
				Message: fmt.Sprintf("This time slot conflicts with %q scheduled from %s to %s on %s.",
					other.Subject, other.StartTime, other.EndTime, other.Day()),
			}
		}
	}
	return ConflictResult{}
}
