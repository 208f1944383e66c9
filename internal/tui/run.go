package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/exodo/internal/simulate"
)

// RunSimulator shows the simulator until the user applies a scenario or
// quits. It reports the applied scenario, if any.
func RunSimulator(ctx context.Context, in simulate.Input) (simulate.Scenario, bool, error) {
	p := tea.NewProgram(NewModel(in), tea.WithContext(ctx), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return simulate.Scenario{}, false, fmt.Errorf("simulator failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return simulate.Scenario{}, false, nil
	}
	s, chosen := m.Chosen()
	return s, chosen, nil
}
