package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}
	if m.loading || m.result == nil {
		return InfoStyle.Render(m.loadingMessage)
	}

	var content string
	switch m.currentScene {
	case SceneLedger:
		content = m.ledgerTable.View()
	case SceneEnforcement:
		content = m.enforcementTable.View()
	case SceneViolations:
		content = m.renderViolations()
	default:
		content = "Unknown scene"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		m.renderSummary(),
		content,
		m.help.View(m.keys),
	)
}

// renderTitleBar renders the case name and run settings
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("cspay - " + m.result.CaseName)

	settings := fmt.Sprintf("%s / %s", m.result.Mode, m.result.Strategy)
	if m.opts.Run.Mode == calculation.ThroughCutoff {
		settings += " / through " + output.FormatDate(m.result.Cutoff)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, SubtitleStyle.Render(settings))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, sceneCount)
	for s := Scene(0); s < sceneCount; s++ {
		label := s.String()
		if s == SceneViolations {
			label = fmt.Sprintf("%s (%d)", label, len(m.result.Violations))
		}
		if s == m.currentScene {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSummary() string {
	ledger := m.result.Ledger
	arrearage := ledger.Arrearage()
	arrearageStyle := PaidUpStyle
	if arrearage.IsPositive() {
		arrearageStyle = ArrearsStyle
	}

	parts := []string{
		MetricLabelStyle.Render("Due ") + MetricValueStyle.Render(output.FormatCurrency(ledger.TotalDue())),
		MetricLabelStyle.Render("Paid ") + MetricValueStyle.Render(output.FormatCurrency(ledger.TotalPaid())),
		MetricLabelStyle.Render("Arrearage ") + arrearageStyle.Render(output.FormatCurrency(arrearage)),
	}
	return " " + strings.Join(parts, "   ")
}

func (m Model) renderViolations() string {
	if len(m.result.Violations) == 0 {
		return PaidUpStyle.Padding(1, 2).Render("No violations.")
	}
	width := max(m.width-4, 20)
	v := m.result.Violations[m.violationOffset]
	header := SubtitleStyle.Render(fmt.Sprintf("Violation %d of %d", m.violationOffset+1, len(m.result.Violations)))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		ViolationStyle.Width(width).Render(output.Narrative(v)),
	)
}

func (m Model) renderError() string {
	return ErrorStyle.Render("Error: " + m.err.Error())
}
