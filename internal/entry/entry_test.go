package entry

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewOnce(t *testing.T) {
	e := NewOnce("Exam", date(2025, 3, 10), "9:00 AM", "11:00 AM")

	assert.Equal(t, KindOnce, e.Kind())
	assert.Equal(t, "Monday", e.Day())
	assert.Equal(t, "2025-03-10", e.Date())
	assert.Equal(t, schedule.Recurrence(""), e.Recurrence())
	assert.Equal(t, "Exam-2025-03-10-9:00 AM", e.ID)
	assert.NoError(t, e.Validate())
}

func TestNewRecurring(t *testing.T) {
	e := NewRecurring("Calculus", time.Monday, "", "9:00 AM", "10:00 AM")

	assert.Equal(t, KindRecurring, e.Kind())
	assert.Equal(t, "Monday", e.Day())
	assert.Equal(t, "", e.Date())
	assert.Equal(t, schedule.Weekly, e.Recurrence())
	assert.Equal(t, "Calculus-Monday-9:00 AM", e.ID)
	assert.NoError(t, e.Validate())
}

func TestEntryValidate(t *testing.T) {
	valid := NewRecurring("Math", time.Monday, schedule.Weekly, "9:00 AM", "10:00 AM")

	tests := []struct {
		name   string
		mutate func(e *Entry)
	}{
		{"empty subject", func(e *Entry) { e.Subject = "  " }},
		{"neither variant", func(e *Entry) { e.Recurring = nil }},
		{"both variants", func(e *Entry) { e.Once = &OneTime{Date: date(2025, 3, 10)} }},
		{"zero date", func(e *Entry) { e.Recurring = nil; e.Once = &OneTime{} }},
		{"unknown recurrence", func(e *Entry) { e.Recurring.Recurrence = "daily" }},
		{"notes too long", func(e *Entry) { e.Notes = strings.Repeat("n", MaxNotesLength+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid.Clone()
			tt.mutate(&e)
			assert.ErrorIs(t, e.Validate(), ErrInvalid)
		})
	}

	t.Run("notes at limit", func(t *testing.T) {
		e := valid.Clone()
		e.Notes = strings.Repeat("é", MaxNotesLength)
		assert.NoError(t, e.Validate())
	})
}

func TestEntryMatchesAndHandle(t *testing.T) {
	e := NewRecurring("Math", time.Monday, schedule.Weekly, "9:00 AM", "10:00 AM")
	assert.Equal(t, e.ID, e.Handle())
	assert.True(t, e.Matches("Math-Monday-9:00 AM"))
	assert.False(t, e.Matches(""))

	e.StorageID = "doc-1"
	assert.Equal(t, "doc-1", e.Handle())
	assert.True(t, e.Matches("doc-1"))
	assert.True(t, e.Matches("Math-Monday-9:00 AM"))
	assert.False(t, e.Matches("other"))
}

func TestEntryClone(t *testing.T) {
	e := NewRecurring("Math", time.Monday, schedule.Weekly, "9:00 AM", "10:00 AM")
	c := e.Clone()
	c.Recurring.Day = time.Friday

	assert.Equal(t, time.Monday, e.Recurring.Day)
}

func TestDeriveID(t *testing.T) {
	assert.Equal(t, "Calculus-Monday-9:00 AM", DeriveID("Calculus", "Monday", "9:00 AM"))
	assert.Equal(t, "Exam-2025-03-10-9:00 AM", DeriveID("Exam", "2025-03-10", "9:00 AM"))
}
