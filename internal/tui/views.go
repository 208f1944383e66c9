package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/simulate"
)

func planLabel(s simulate.Scenario) string {
	if s.IsSpot() {
		return "Spot"
	}
	return fmt.Sprintf("%dx", s.Installments)
}

func scenarioRow(s simulate.Scenario) table.Row {
	return table.Row{
		planLabel(s),
		cli.FormatMoney(s.Payment),
		cli.FormatMoney(s.Total),
		cli.FormatMoney(s.Interest),
		fmt.Sprintf("%.2f%%", s.EffectiveCost),
		fmt.Sprintf("%.1f%%", s.BudgetImpact),
		string(s.Viability),
	}
}

func (m Model) viabilityStyle(v simulate.Viability) lipgloss.Style {
	switch v {
	case simulate.ViabilityGood:
		return m.theme.StatusSuccess
	case simulate.ViabilityWarning:
		return m.theme.StatusWarning
	case simulate.ViabilityBad, simulate.ViabilityImpossible:
		return m.theme.StatusError
	}
	return m.theme.StatusInfo
}

// View renders the simulator.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Installment simulator"),
		m.theme.Subtitle.Render(fmt.Sprintf("Amount %s  ·  Monthly budget %s  ·  Rate %.1f%% a.m.",
			cli.FormatMoney(m.input.Amount),
			cli.FormatMoney(m.input.Budget),
			m.input.RatePct)),
	)

	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.theme.StatusError.Render(m.err.Error()),
			m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.theme.RoundedBox.Render(m.table.View()),
		m.renderDetail(),
		"",
		m.help.View(m.keymap),
	)
}

func (m Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return ""
	}

	rec := m.result.Recommended
	recLine := m.theme.Bold.Render("Recommended: ") + planLabel(rec)
	if rec.Installments == s.Installments {
		recLine += " " + m.theme.StatusSuccess.Render(cli.SuccessIcon)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s leaves %s of the monthly budget: %s",
			planLabel(s),
			cli.FormatMoney(s.BalanceAfter),
			m.viabilityStyle(s.Viability).Render(string(s.Viability))),
		recLine,
	)
}
