package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// period is a named date range relative to now. A nil bounds func selects
// everything; the custom entry is handled by the picker itself.
type period struct {
	label  string
	bounds func(now time.Time) (time.Time, time.Time)
	custom bool
}

var periods = []period{
	{label: "Today", bounds: func(now time.Time) (time.Time, time.Time) { return now, now }},
	{label: "Last 7 Days", bounds: func(now time.Time) (time.Time, time.Time) { return now.AddDate(0, 0, -6), now }},
	{label: "This Month", bounds: func(now time.Time) (time.Time, time.Time) {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	}},
	{label: "Last Month", bounds: func(now time.Time) (time.Time, time.Time) {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0), first.AddDate(0, 0, -1)
	}},
	{label: "This Year", bounds: func(now time.Time) (time.Time, time.Time) {
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now
	}},
	{label: "All Time"},
	{label: "Custom Range", custom: true},
}

// dayBounds widens a date range to whole days: midnight of start up to,
// but excluding, midnight after end.
func dayBounds(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	return from, to
}

// TimeframeSelectedMsg is emitted once a range is chosen. End is exclusive.
// Start and End are zero values when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

// TimeframePicker lets the operator choose a period or type a custom range.
type TimeframePicker struct {
	now    func() time.Time
	cursor int

	custom bool
	inputs [2]textinput.Model
	focus  int

	err error
}

func NewTimeframePicker() TimeframePicker {
	var inputs [2]textinput.Model

	for i, prompt := range []string{"From: ", "To:   "} {
		ti := textinput.New()
		ti.Placeholder = time.DateOnly
		ti.CharLimit = len(time.DateOnly)
		ti.Width = 12
		ti.Prompt = prompt
		inputs[i] = ti
	}

	return TimeframePicker{now: time.Now, inputs: inputs}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)

	switch {
	case !m.custom && ok:
		return m.updatePeriods(keyMsg)
	case m.custom && ok:
		return m.updateCustom(keyMsg)
	case m.custom:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m TimeframePicker) updatePeriods(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.cursor = max(m.cursor-1, 0)
	case tea.KeyDown:
		m.cursor = min(m.cursor+1, len(periods)-1)
	case tea.KeyEnter:
		p := periods[m.cursor]

		switch {
		case p.custom:
			m.custom = true
			m.focus = 0

			return m, m.inputs[0].Focus()
		case p.bounds == nil:
			return m, selected(TimeframeSelectedMsg{All: true})
		}

		start, end := dayBounds(p.bounds(m.now()))

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus

		return m, m.inputs[m.focus].Focus()

	case "esc":
		m.custom = false
		m.err = nil

		return m, nil

	case "enter":
		var dates [2]time.Time

		for i, in := range m.inputs {
			d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(in.Value()), m.now().Location())
			if err != nil {
				m.err = fmt.Errorf("dates must look like %s", time.DateOnly)
				return m, nil
			}

			dates[i] = d
		}

		if dates[1].Before(dates[0]) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		start, end := dayBounds(dates[0], dates[1])

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.custom {
		fmt.Fprintf(&b, "Enter a date range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)",
			m.inputs[0].View(), m.inputs[1].View())
	} else {
		b.WriteString("Select a period:\n\n")

		for i, p := range periods {
			cursor := " "
			if i == m.cursor {
				cursor = ">"
			}

			fmt.Fprintf(&b, "%s %s\n", cursor, p.label)
		}

		b.WriteString("\n(Enter to select, Esc to back)")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("\n\nError: " + m.err.Error()))
	}

	return b.String()
}

// IsSelecting reports whether the picker shows the period list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset returns the picker to the period list with empty inputs.
func (m *TimeframePicker) Reset() {
	m.custom = false
	m.cursor = 0
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}
