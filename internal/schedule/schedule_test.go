package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	// Fixed reference time: Wednesday, January 15, 2025
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		input          string
		wantFrom       TimeOfDay
		wantTo         TimeOfDay
		wantDate       *time.Time
		wantWeekday    *time.Weekday
		wantRecurrence Recurrence
		wantErr        bool
	}{
		{
			name:     "bare time range",
			input:    "from 9am to 5pm",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 17, Minute: 0},
		},
		{
			name:     "24h time range",
			input:    "from 9:00 to 17:00",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 17, Minute: 0},
		},
		{
			name:     "timetable labels",
			input:    "from 9:00 AM to 10:00 AM today",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 10, Minute: 0},
			wantDate: timePtr(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "tomorrow",
			input:    "from 9am to 5pm tomorrow",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 17, Minute: 0},
			wantDate: timePtr(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "on Monday",
			input:    "from 10am to 2pm on Monday",
			wantFrom: TimeOfDay{Hour: 10, Minute: 0},
			wantTo:   TimeOfDay{Hour: 14, Minute: 0},
			wantDate: timePtr(time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "ISO date",
			input:    "from 9am to 11am on 2025-03-10",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 11, Minute: 0},
			wantDate: timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:           "every monday",
			input:          "from 9am to 10am every monday",
			wantFrom:       TimeOfDay{Hour: 9, Minute: 0},
			wantTo:         TimeOfDay{Hour: 10, Minute: 0},
			wantWeekday:    weekdayPtr(time.Monday),
			wantRecurrence: Weekly,
		},
		{
			name:           "every other tuesday",
			input:          "from 2pm to 3pm every other tuesday",
			wantFrom:       TimeOfDay{Hour: 14, Minute: 0},
			wantTo:         TimeOfDay{Hour: 15, Minute: 0},
			wantWeekday:    weekdayPtr(time.Tuesday),
			wantRecurrence: Biweekly,
		},
		{
			name:           "monthly on wednesdays",
			input:          "from 1pm to 2pm monthly on wednesdays",
			wantFrom:       TimeOfDay{Hour: 13, Minute: 0},
			wantTo:         TimeOfDay{Hour: 14, Minute: 0},
			wantWeekday:    weekdayPtr(time.Wednesday),
			wantRecurrence: Monthly,
		},
		{
			name:           "first friday of the month",
			input:          "from 8am to 9am first friday of the month",
			wantFrom:       TimeOfDay{Hour: 8, Minute: 0},
			wantTo:         TimeOfDay{Hour: 9, Minute: 0},
			wantWeekday:    weekdayPtr(time.Friday),
			wantRecurrence: Monthly,
		},

		// Case insensitivity
		{
			name:     "uppercase FROM TO",
			input:    "From 9AM To 5PM",
			wantFrom: TimeOfDay{Hour: 9, Minute: 0},
			wantTo:   TimeOfDay{Hour: 17, Minute: 0},
		},

		// Errors
		{name: "empty", input: "", wantErr: true},
		{name: "no from keyword", input: "9am to 5pm", wantErr: true},
		{name: "no to keyword", input: "from 9am 5pm", wantErr: true},
		{name: "bad start time", input: "from abc to 5pm", wantErr: true},
		{name: "bad end time", input: "from 9am to xyz", wantErr: true},
		{name: "bad weekday", input: "from 9am to 5pm every someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScheduleWithNow(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, got.From, "From mismatch")
			assert.Equal(t, tt.wantTo, got.To, "To mismatch")

			if tt.wantDate != nil {
				require.NotNil(t, got.Date, "expected Date to be set")
				assert.Equal(t, *tt.wantDate, *got.Date, "Date mismatch")
			} else {
				assert.Nil(t, got.Date, "expected Date to be nil")
			}

			if tt.wantWeekday != nil {
				require.NotNil(t, got.Weekday, "expected Weekday to be set")
				assert.Equal(t, *tt.wantWeekday, *got.Weekday, "Weekday mismatch")
				assert.Equal(t, tt.wantRecurrence, got.Recurrence, "Recurrence mismatch")
			} else {
				assert.Nil(t, got.Weekday, "expected Weekday to be nil")
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func weekdayPtr(wd time.Weekday) *time.Weekday {
	return &wd
}
