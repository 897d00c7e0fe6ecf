package timetable

import (
	"context"
	"fmt"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/metrics"
)

// Failure is one rejected item of a batch.
type Failure struct {
	Entry  entry.Entry
	Reason string
	Err    error
}

// BatchResult partitions a batch add. len(Successful)+len(Failed) always
// equals the number of candidates.
type BatchResult struct {
	Successful []entry.Entry
	Failed     []Failure
}

// DeleteSummary reports a batch delete. Deleted counts only entries that
// were resolved and actually removed, so it never exceeds Requested.
type DeleteSummary struct {
	Deleted   int
	Requested int
	Cancelled bool
}

// AddMultiple adds candidates in order. Each candidate is validated against
// the collection as it was before the batch plus the candidates already
// stored by it, then persisted before the next one is looked at. A failing
// item never stops the rest of the batch, and Failed keeps input order.
func (s *Store) AddMultiple(ctx context.Context, candidates []entry.Entry) BatchResult {
	var res BatchResult

	snapshot := s.Entries()
	for _, c := range candidates {
		e, err := s.prepare(c, snapshot, "", false)
		if err != nil {
			r := s.reject("add_multiple", err)
			res.Failed = append(res.Failed, Failure{Entry: c, Reason: r.Message, Err: r.Err})
			continue
		}

		stored, err := s.strategy.AddEntry(ctx, e.Record())
		if err != nil {
			r := s.persistFailure("add_multiple", e, err)
			res.Failed = append(res.Failed, Failure{Entry: e, Reason: r.Message, Err: r.Err})
			continue
		}
		e.StorageID = stored.StorageID

		s.mu.Lock()
		s.entries = append(s.entries, e)
		s.mu.Unlock()

		snapshot = append(snapshot, e)
		s.metrics.Operation("add_multiple", metrics.ResultOK)
		res.Successful = append(res.Successful, e)
	}

	s.log.Info("batch added", "requested", len(candidates),
		"successful", len(res.Successful), "failed", len(res.Failed))
	return res
}

// DeleteMultiple removes every entry refs resolve to, after a single
// confirmation. Unresolvable refs are skipped. The returned count is
// recomputed from actual deletions, whatever the caller believes.
func (s *Store) DeleteMultiple(ctx context.Context, refs []Ref) DeleteSummary {
	summary := DeleteSummary{Requested: len(refs)}

	snapshot := s.Entries()
	seen := map[string]bool{}
	var targets []entry.Entry
	for _, ref := range refs {
		if err := ref.validate(); err != nil {
			s.log.Warn("skipping delete reference", "ref", ref.String(), "error", err)
			continue
		}
		e, ok := resolve(snapshot, ref)
		if !ok {
			s.log.Debug("delete reference did not resolve", "ref", ref.String())
			continue
		}
		if seen[e.Handle()] {
			continue
		}
		seen[e.Handle()] = true
		targets = append(targets, e)
	}
	if len(targets) == 0 {
		return summary
	}

	yes, err := s.confirm(fmt.Sprintf(
		"Are you sure you want to delete %d timetable entries? This action cannot be undone.", len(targets)))
	if err != nil || !yes {
		s.metrics.Operation("delete_multiple", metrics.ResultCancelled)
		summary.Cancelled = true
		return summary
	}

	for _, e := range targets {
		if err := s.remove(ctx, e); err != nil {
			s.persistFailure("delete_multiple", e, err)
			continue
		}
		s.metrics.Operation("delete_multiple", metrics.ResultOK)
		summary.Deleted++
	}

	s.log.Info("batch deleted", "requested", summary.Requested, "deleted", summary.Deleted)
	return summary
}
