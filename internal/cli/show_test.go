package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRunShow(t *testing.T) {
	a := newTestApp(t, PromptKit{})
	cmd, out := testCmd()
	require.NoError(t, runAdd(cmd, a, scheduleOptions{Subject: "Math", When: "from 9am to 10am every monday", Category: "Class"}))
	require.NoError(t, runAdd(cmd, a, scheduleOptions{Subject: "Club", Day: "Wednesday", Recurrence: "monthly", Start: "5:00 PM", End: "6:00 PM"}))

	tests := []struct {
		name     string
		view     string
		date     string
		contains []string
		excludes []string
	}{
		{"day", "day", "2025-03-10", []string{"Monday, March 10, 2025", "9:00 AM - 10:00 AM", "Math", "[Class]"}, []string{"Club"}},
		{"empty day", "day", "2025-03-11", []string{"nothing scheduled"}, nil},
		{"week", "week", "2025-03-12", []string{"Mon Mar 10", "Sun Mar 16", "9:00 AM", "Math"}, []string{"Club"}},
		{"month", "month", "2025-03-20", []string{"March 2025", "Wed Mar  5", "Mon Mar 31"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			require.NoError(t, runShow(cmd, a, tt.date, tt.view, true))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestRunShowErrors(t *testing.T) {
	a := newTestApp(t, PromptKit{})
	cmd, _ := testCmd()

	assert.Error(t, runShow(cmd, a, "", "year", true))
	assert.Error(t, runShow(cmd, a, "the day after", "day", true))
}

func TestRenderWeekPlacesEntriesBySlot(t *testing.T) {
	math := entry.NewRecurring("Math", time.Monday, schedule.Weekly, "9:30 AM", "10:30 AM")
	early := entry.NewRecurring("Run", time.Monday, schedule.Weekly, "5:00 AM", "6:00 AM")
	occ := []entry.Occurrence{
		{Entry: early, Date: day(2025, 3, 10)},
		{Entry: math, Date: day(2025, 3, 10)},
	}

	out := renderWeek(schedule.WeekDates(day(2025, 3, 10)), occ)
	lines := strings.Split(out, "\n")

	var nineRow string
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "9:00 AM") {
			nineRow = l
		}
	}
	assert.Contains(t, nineRow, "Math")
	assert.Contains(t, out, "outside the grid:")
	assert.Contains(t, out, "5:00 AM - 6:00 AM  Run")
	// header, rule, 18 slots, outside heading, one outside entry, trailing newline
	assert.Len(t, lines, 2+18+2+1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Math", truncate("Math", 14))
	assert.Equal(t, "Linear Algebr…", truncate("Linear Algebra II", 14))
}

type fakeWeeks struct {
	asked []time.Time
}

func (f *fakeWeeks) EntriesForWeek(date time.Time) ([]entry.Occurrence, error) {
	f.asked = append(f.asked, date)
	return nil, nil
}

func TestWeekModelNavigation(t *testing.T) {
	src := &fakeWeeks{}
	m := newWeekModel(src, day(2025, 3, 12))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(weekModel)
	assert.Equal(t, day(2025, 3, 19), m.anchor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(weekModel)
	assert.Equal(t, day(2025, 3, 5), m.anchor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(weekModel)
	assert.Equal(t, day(2025, 3, 12), m.anchor)
	assert.Len(t, src.asked, 5)

	assert.Contains(t, m.View(), "Week of Monday, March 10, 2025")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
