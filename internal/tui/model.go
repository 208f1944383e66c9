// Package tui implements exodo's interactive installment simulator.
package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/exodo/internal/simulate"
	"github.com/Veraticus/exodo/internal/tui/themes"
)

// rateStep is how much one key press moves the monthly rate, in percent.
const rateStep = 0.5

// Model holds the simulator state.
type Model struct {
	err      error
	chosen   *simulate.Scenario
	theme    themes.Theme
	keymap   KeyMap
	help     help.Model
	result   simulate.Result
	input    simulate.Input
	table    table.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a simulator for the input. The cursor starts on the
// recommended scenario.
func NewModel(in simulate.Input) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Plan", Width: 8},
			{Title: "Payment", Width: 14},
			{Title: "Total", Width: 14},
			{Title: "Interest", Width: 14},
			{Title: "CET", Width: 8},
			{Title: "Impact", Width: 8},
			{Title: "Viability", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(themes.Default.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = themes.Default.Selected
	t.SetStyles(s)

	m := Model{
		theme:  themes.Default,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		table:  t,
		input:  in,
		width:  100,
		height: 24,
	}
	m.recompute()
	m.table.SetCursor(m.recommendedIndex())
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Apply):
			if s, ok := m.Selected(); ok {
				m.chosen = &s
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keymap.RateUp):
			m.setRate(m.input.RatePct + rateStep)
			return m, nil

		case key.Matches(msg, m.keymap.RateDown):
			m.setRate(math.Max(0, m.input.RatePct-rateStep))
			return m, nil

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setRate(rate float64) {
	m.input.RatePct = rate
	cursor := m.table.Cursor()
	m.recompute()
	m.table.SetCursor(cursor)
}

func (m *Model) recompute() {
	m.result, m.err = simulate.Simulate(m.input)
	if m.err != nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, len(m.result.Scenarios))
	for i, s := range m.result.Scenarios {
		rows[i] = scenarioRow(s)
	}
	m.table.SetRows(rows)
}

func (m Model) recommendedIndex() int {
	for i, s := range m.result.Scenarios {
		if s.Installments == m.result.Recommended.Installments {
			return i
		}
	}
	return 0
}

// Selected returns the scenario under the cursor.
func (m Model) Selected() (simulate.Scenario, bool) {
	i := m.table.Cursor()
	if m.err != nil || i < 0 || i >= len(m.result.Scenarios) {
		return simulate.Scenario{}, false
	}
	return m.result.Scenarios[i], true
}

// Chosen returns the scenario the user applied, if any.
func (m Model) Chosen() (simulate.Scenario, bool) {
	if m.chosen == nil {
		return simulate.Scenario{}, false
	}
	return *m.chosen, true
}

// Rate returns the monthly interest rate currently simulated.
func (m Model) Rate() float64 {
	return m.input.RatePct
}
