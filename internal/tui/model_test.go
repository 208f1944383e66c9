package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/exodo/internal/simulate"
)

func testInput() simulate.Input {
	return simulate.Input{
		FirstPayment: time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC),
		Terms:        []int{3, 6, 12},
		Amount:       3000,
		Budget:       1000,
		RatePct:      2,
	}
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModel_StartsOnRecommended(t *testing.T) {
	m := NewModel(testInput())

	s, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 6, s.Installments)
	assert.Equal(t, simulate.ViabilityGood, s.Viability)
	assert.Contains(t, m.View(), "Installment simulator")
	assert.Contains(t, m.View(), "Recommended: 6x")
}

func TestModel_ApplySelection(t *testing.T) {
	m := NewModel(testInput())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	s, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 12, s.Installments)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(t, cmd))

	chosen, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, 12, chosen.Installments)
	assert.Empty(t, m.View())
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(testInput())

	m, cmd := press(m, runes("q"))
	assert.True(t, isQuit(t, cmd))
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestModel_ChangeRate(t *testing.T) {
	m := NewModel(testInput())
	before, _ := m.Selected()

	m, _ = press(m, runes("+"))
	assert.InDelta(t, 2.5, m.Rate(), 0.0001)
	after, _ := m.Selected()
	assert.Equal(t, before.Installments, after.Installments, "the cursor stays on the same plan")
	assert.Greater(t, after.Payment, before.Payment)

	for i := 0; i < 10; i++ {
		m, _ = press(m, runes("-"))
	}
	assert.InDelta(t, 0.0, m.Rate(), 0.0001)
	zero, _ := m.Selected()
	assert.InDelta(t, 500.0, zero.Payment, 0.0001)
}

func TestModel_InvalidInput(t *testing.T) {
	in := testInput()
	in.Amount = 0
	m := NewModel(in)

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "amount must be positive")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, isQuit(t, cmd))
	_, ok = m.Chosen()
	assert.False(t, ok)
}

func TestModel_ToggleHelp(t *testing.T) {
	m := NewModel(testInput())
	assert.NotContains(t, m.View(), "rate +0.5%")

	m, _ = press(m, runes("?"))
	assert.Contains(t, m.View(), "rate +0.5%")
}
