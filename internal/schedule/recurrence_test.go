package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		input   string
		want    Recurrence
		wantErr bool
	}{
		{input: "", want: Weekly},
		{input: "weekly", want: Weekly},
		{input: "Every Week", want: Weekly},
		{input: "biweekly", want: Biweekly},
		{input: "every other week", want: Biweekly},
		{input: "every second week", want: Biweekly},
		{input: "every 2 weeks", want: Biweekly},
		{input: "fortnightly", want: Biweekly},
		{input: "monthly", want: Monthly},
		{input: "every month", want: Monthly},
		{input: "daily", wantErr: true},
		{input: "none", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRecurrence(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecurrenceValid(t *testing.T) {
	assert.True(t, Weekly.Valid())
	assert.True(t, Biweekly.Valid())
	assert.True(t, Monthly.Valid())
	assert.False(t, Recurrence("none").Valid())
	assert.False(t, Recurrence("").Valid())
}

func TestRuleOption(t *testing.T) {
	opt, err := RuleOption(time.Monday, Weekly)
	require.NoError(t, err)
	assert.Equal(t, rrule.WEEKLY, opt.Freq)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO", opt.RRuleString())

	opt, err = RuleOption(time.Wednesday, Monthly)
	require.NoError(t, err)
	assert.Equal(t, rrule.MONTHLY, opt.Freq)
	assert.Equal(t, "FREQ=MONTHLY;BYDAY=+1WE", opt.RRuleString())

	opt, err = RuleOption(time.Friday, Biweekly)
	require.NoError(t, err)
	assert.Equal(t, rrule.YEARLY, opt.Freq)
	assert.Len(t, opt.Byweekno, 26)

	_, err = RuleOption(time.Friday, Recurrence("daily"))
	assert.Error(t, err)
}

func TestRuleOccurrences(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		wd   time.Weekday
		r    Recurrence
		want []int // days of March 2025
	}{
		{"weekly monday", time.Monday, Weekly, []int{3, 10, 17, 24, 31}},
		// ISO weeks 10, 12 and 14
		{"biweekly monday", time.Monday, Biweekly, []int{3, 17, 31}},
		{"monthly wednesday", time.Wednesday, Monthly, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Rule(tt.wd, tt.r, from)
			require.NoError(t, err)

			dates := Occurrences(r, from, to)
			days := make([]int, len(dates))
			for i, d := range dates {
				days[i] = d.Day()
			}
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestOnceRule(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	r, err := OnceRule(date)
	require.NoError(t, err)

	dates := Occurrences(r, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.Len(t, dates, 1)
	assert.True(t, dates[0].Equal(date))
}
