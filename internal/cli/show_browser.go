package cli

import (
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

var footerStyle = lipgloss.NewStyle().Faint(true)

// weekSource returns the occurrences of the week containing a date.
type weekSource interface {
	EntriesForWeek(date time.Time) ([]entry.Occurrence, error)
}

// weekModel pages through the timetable one week at a time.
type weekModel struct {
	source weekSource
	today  time.Time
	anchor time.Time
	occ    []entry.Occurrence
	err    error
}

func newWeekModel(source weekSource, date time.Time) weekModel {
	m := weekModel{source: source, today: date, anchor: date}
	return m.load()
}

func (m weekModel) load() weekModel {
	m.occ, m.err = m.source.EntriesForWeek(m.anchor)
	return m
}

func (m weekModel) Init() tea.Cmd {
	return nil
}

func (m weekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "right", "l", "n":
		m.anchor = m.anchor.AddDate(0, 0, 7)
		return m.load(), nil
	case "left", "h", "p":
		m.anchor = m.anchor.AddDate(0, 0, -7)
		return m.load(), nil
	case "t":
		m.anchor = m.today
		return m.load(), nil
	}
	return m, nil
}

func (m weekModel) View() string {
	var b strings.Builder
	days := schedule.WeekDates(m.anchor)
	b.WriteString(Bold("Week of "+schedule.DescribeDate(days[0])) + "\n\n")
	if m.err != nil {
		b.WriteString(Error(m.err.Error()) + "\n")
	} else {
		b.WriteString(renderWeek(days, m.occ))
	}
	b.WriteString("\n" + footerStyle.Render("←/→ change week · t this week · q quit") + "\n")
	return b.String()
}

func runWeekBrowser(out io.Writer, source weekSource, date time.Time) error {
	p := tea.NewProgram(newWeekModel(source, date), tea.WithAltScreen(), tea.WithOutput(out))
	_, err := p.Run()
	return err
}
