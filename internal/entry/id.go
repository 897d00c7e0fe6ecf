package entry

import "fmt"

// DeriveID builds the natural key of an entry, e.g. "Calculus-Monday-9:00 AM".
// Two entries with the same subject, day and start time share an id.
func DeriveID(subject, dayOrDate, startTime string) string {
	return fmt.Sprintf("%s-%s-%s", subject, dayOrDate, startTime)
}

// DerivedID returns the natural key of e, keyed by date for one-time entries
// and by weekday for recurring ones.
func (e Entry) DerivedID() string {
	key := e.Day()
	if e.Once != nil {
		key = e.Date()
	}
	return DeriveID(e.Subject, key, e.StartTime)
}
