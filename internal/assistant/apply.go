package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
	"github.com/yamkelajack06/Study-Flow/internal/timetable"
)

// Timetable is the part of the store the assistant may drive.
type Timetable interface {
	Now() time.Time
	Entries() []entry.Entry
	EntriesForDate(date time.Time) []entry.Entry
	EntriesForToday() []entry.Entry
	Add(ctx context.Context, candidate entry.Entry) timetable.Result
	Update(ctx context.Context, priorID string, candidate entry.Entry) timetable.Result
	Delete(ctx context.Context, ref timetable.Ref) timetable.Result
	AddMultiple(ctx context.Context, candidates []entry.Entry) timetable.BatchResult
	DeleteMultiple(ctx context.Context, refs []timetable.Ref) timetable.DeleteSummary
}

// Outcome reports what applying an action did.
type Outcome struct {
	Kind      Kind
	OK        bool
	Cancelled bool
	Message   string
	Err       error

	// Entries holds the changed entry for single actions and the matching
	// entries for a view.
	Entries []entry.Entry
	Batch   *timetable.BatchResult
	Deleted *timetable.DeleteSummary
}

// Apply runs a parsed action against tt.
func Apply(ctx context.Context, tt Timetable, a Action) Outcome {
	switch a.Kind {
	case KindAdd:
		e, err := entry.Normalize(a.Record)
		if err != nil {
			return invalid(a.Kind, err)
		}
		return fromResult(a.Kind, tt.Add(ctx, e))

	case KindUpdate:
		e, err := entry.Normalize(a.Record)
		if err != nil {
			return invalid(a.Kind, err)
		}
		return fromResult(a.Kind, tt.Update(ctx, a.ID, e))

	case KindDelete:
		return fromResult(a.Kind, tt.Delete(ctx, refFor(a.Record)))

	case KindView:
		date, found := tt.Now(), tt.EntriesForToday()
		if a.Date != "" {
			d, err := schedule.ParseCalendarDate(a.Date)
			if err != nil {
				return invalid(a.Kind, err)
			}
			date, found = d, tt.EntriesForDate(d)
		}
		return Outcome{
			Kind:    a.Kind,
			OK:      true,
			Entries: found,
			Message: fmt.Sprintf("%d %s on %s.", len(found), plural(len(found)), schedule.DescribeDate(date)),
		}

	case KindAddMultiple:
		return addMultiple(ctx, tt, a.Entries)

	case KindDeleteMultiple:
		refs := make([]timetable.Ref, len(a.Entries))
		for i, r := range a.Entries {
			refs[i] = refFor(r)
		}
		summary := tt.DeleteMultiple(ctx, refs)
		out := Outcome{Kind: a.Kind, OK: !summary.Cancelled, Cancelled: summary.Cancelled, Deleted: &summary}
		if summary.Cancelled {
			out.Message = "Delete cancelled."
		} else {
			out.Message = fmt.Sprintf("Deleted %d of %d requested entries.", summary.Deleted, summary.Requested)
		}
		return out
	}
	return invalid(a.Kind, fmt.Errorf("unsupported action %q", a.Kind))
}

func addMultiple(ctx context.Context, tt Timetable, records []entry.Record) Outcome {
	var (
		candidates []entry.Entry
		rejected   []timetable.Failure
	)
	for _, r := range records {
		e, err := entry.Normalize(r)
		if err != nil {
			rejected = append(rejected, timetable.Failure{
				Entry:  entry.Entry{Subject: r.Subject, StartTime: r.StartTime, EndTime: r.EndTime},
				Reason: err.Error(),
				Err:    err,
			})
			continue
		}
		candidates = append(candidates, e)
	}

	res := tt.AddMultiple(ctx, candidates)
	res.Failed = append(res.Failed, rejected...)

	return Outcome{
		Kind:    KindAddMultiple,
		OK:      len(res.Failed) == 0,
		Entries: res.Successful,
		Batch:   &res,
		Message: fmt.Sprintf("Added %d of %d entries.", len(res.Successful), len(records)),
	}
}

// refFor addresses the entry an assistant record names. The id shown to the
// assistant may be either kind of identifier, so it is matched against both.
func refFor(r entry.Record) timetable.Ref {
	return timetable.Ref{
		ID:        r.ID,
		StorageID: r.StorageID,
		Subject:   r.Subject,
		Day:       r.Day,
		StartTime: r.StartTime,
	}
}

func fromResult(k Kind, r timetable.Result) Outcome {
	out := Outcome{Kind: k, OK: r.OK, Cancelled: r.Cancelled, Message: r.Message, Err: r.Err}
	if r.Entry != nil {
		out.Entries = []entry.Entry{*r.Entry}
	}
	return out
}

func invalid(k Kind, err error) Outcome {
	err = fmt.Errorf("%w: %v", ErrInvalidAction, err)
	return Outcome{Kind: k, Err: err, Message: err.Error()}
}

func plural(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}
