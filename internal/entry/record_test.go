package entry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		record    Record
		wantKind  Kind
		wantDay   string
		wantRec   schedule.Recurrence
		wantDate  string
		wantID    string
		wantStart string
	}{
		{
			name:      "legacy untyped record is weekly recurring",
			record:    Record{ID: "Math-Monday-9:00 AM", Subject: "Math", Day: "Monday", StartTime: "9:00 AM", EndTime: "10:00 AM"},
			wantKind:  KindRecurring,
			wantDay:   "Monday",
			wantRec:   schedule.Weekly,
			wantID:    "Math-Monday-9:00 AM",
			wantStart: "9:00 AM",
		},
		{
			name:      "misspelled legacy weekday",
			record:    Record{Subject: "Lab", Day: "Thurday", StartTime: "2:00 PM", EndTime: "4:00 PM"},
			wantKind:  KindRecurring,
			wantDay:   "Thursday",
			wantRec:   schedule.Weekly,
			wantID:    "Lab-Thursday-2:00 PM",
			wantStart: "2:00 PM",
		},
		{
			name:      "once record drops recurrence and rederives day",
			record:    Record{ID: "x", Subject: "Exam", Type: "once", Date: "2025-03-10", Day: "Friday", Recurrence: "none", StartTime: "09:00", EndTime: "11:00"},
			wantKind:  KindOnce,
			wantDay:   "Monday",
			wantDate:  "2025-03-10",
			wantID:    "x",
			wantStart: "9:00 AM",
		},
		{
			name:      "once record with timestamp date",
			record:    Record{Subject: "Exam", Type: "once", Date: "2025-03-10T00:00:00.000Z", StartTime: "9:00 AM", EndTime: "11:00 AM"},
			wantKind:  KindOnce,
			wantDay:   "Monday",
			wantDate:  "2025-03-10",
			wantID:    "Exam-2025-03-10-9:00 AM",
			wantStart: "9:00 AM",
		},
		{
			name:      "recurring with none recurrence",
			record:    Record{Subject: "Gym", Type: "recurring", Day: "friday", Recurrence: "none", StartTime: "6:00 PM", EndTime: "7:00 PM"},
			wantKind:  KindRecurring,
			wantDay:   "Friday",
			wantRec:   schedule.Weekly,
			wantID:    "Gym-Friday-6:00 PM",
			wantStart: "6:00 PM",
		},
		{
			name:      "biweekly",
			record:    Record{Subject: "Seminar", Type: "recurring", Day: "Tuesday", Recurrence: "biweekly", StartTime: "1:00 PM", EndTime: "2:00 PM"},
			wantKind:  KindRecurring,
			wantDay:   "Tuesday",
			wantRec:   schedule.Biweekly,
			wantID:    "Seminar-Tuesday-1:00 PM",
			wantStart: "1:00 PM",
		},
		{
			name:      "untyped with date only",
			record:    Record{Subject: "Club", Date: "2025-03-12", StartTime: "5:00 PM", EndTime: "6:00 PM"},
			wantKind:  KindRecurring,
			wantDay:   "Wednesday",
			wantRec:   schedule.Weekly,
			wantID:    "Club-Wednesday-5:00 PM",
			wantStart: "5:00 PM",
		},
		{
			name:      "unparseable time kept verbatim",
			record:    Record{Subject: "Odd", Day: "Monday", StartTime: " noon ", EndTime: "1:00 PM"},
			wantKind:  KindRecurring,
			wantDay:   "Monday",
			wantRec:   schedule.Weekly,
			wantID:    "Odd-Monday-noon",
			wantStart: "noon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Normalize(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, e.Kind())
			assert.Equal(t, tt.wantDay, e.Day())
			assert.Equal(t, tt.wantRec, e.Recurrence())
			assert.Equal(t, tt.wantDate, e.Date())
			assert.Equal(t, tt.wantID, e.ID)
			assert.Equal(t, tt.wantStart, e.StartTime)
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{"once without date", Record{Subject: "Exam", Type: "once", StartTime: "9:00 AM", EndTime: "10:00 AM"}},
		{"recurring without day", Record{Subject: "Math", Type: "recurring", StartTime: "9:00 AM", EndTime: "10:00 AM"}},
		{"unknown type", Record{Subject: "Math", Type: "sometimes", Day: "Monday"}},
		{"unknown recurrence", Record{Subject: "Math", Day: "Monday", Recurrence: "hourly"}},
		{"missing subject", Record{Day: "Monday", StartTime: "9:00 AM", EndTime: "10:00 AM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.record)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	e := NewOnce("Exam", date(2025, 3, 10), "9:00 AM", "11:00 AM")
	e.StorageID = "abc"
	e.Category = "Exam"
	e.Color = "#ef4444"
	e.Notes = "Room 12"

	data, err := json.Marshal(e.Record())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"firestoreId":"abc"`)
	assert.Contains(t, string(data), `"day":"Monday"`)
	assert.NotContains(t, string(data), `"recurrence"`)

	var r Record
	require.NoError(t, json.Unmarshal(data, &r))
	back, err := Normalize(r)
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

func TestRecordRecurring(t *testing.T) {
	r := NewRecurring("Math", time.Monday, schedule.Monthly, "9:00 AM", "10:00 AM").Record()
	assert.Equal(t, "recurring", r.Type)
	assert.Equal(t, "Monday", r.Day)
	assert.Equal(t, "monthly", r.Recurrence)
	assert.Empty(t, r.Date)
}
