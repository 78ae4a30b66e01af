package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Title, tabs, summary and help take about ten lines.
		h := max(msg.Height-10, 3)
		m.ledgerTable.SetHeight(h)
		m.enforcementTable.SetHeight(h)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case CaseLoadedMsg:
		m.kase = msg.Case
		m.payments = msg.Payments
		if m.opts.Run.Strategy == "" {
			m.opts.Run.Strategy = msg.Case.Allocation
		}
		m.loadingMessage = "Allocating payments..."
		return m, reconcileCmd(m.engine, m.kase, m.payments, m.opts.Run)

	case ReconciledMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.setResult(msg.Result)
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.currentScene = (m.currentScene + 1) % sceneCount
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.currentScene = (m.currentScene + sceneCount - 1) % sceneCount
		return m, nil

	case key.Matches(msg, m.keys.Ledger):
		m.currentScene = SceneLedger
		return m, nil

	case key.Matches(msg, m.keys.Enforce):
		m.currentScene = SceneEnforcement
		return m, nil

	case key.Matches(msg, m.keys.Violate):
		m.currentScene = SceneViolations
		return m, nil

	case key.Matches(msg, m.keys.Strategy):
		if m.opts.Run.Strategy == domain.NearestFirst {
			m.opts.Run.Strategy = domain.OldestFirst
		} else {
			m.opts.Run.Strategy = domain.NearestFirst
		}
		return m.recalculate()

	case key.Matches(msg, m.keys.Mode):
		if m.opts.Run.Mode == calculation.FullProjection {
			m.opts.Run.Mode = calculation.ThroughCutoff
		} else {
			m.opts.Run.Mode = calculation.FullProjection
		}
		return m.recalculate()
	}

	return m.updateCurrentScene(msg)
}

func (m Model) recalculate() (tea.Model, tea.Cmd) {
	if m.kase == nil {
		return m, nil
	}
	m.loading = true
	m.loadingMessage = "Allocating payments..."
	return m, reconcileCmd(m.engine, m.kase, m.payments, m.opts.Run)
}

// updateCurrentScene delegates navigation keys to the current scene
func (m Model) updateCurrentScene(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneLedger:
		m.ledgerTable, cmd = m.ledgerTable.Update(msg)
	case SceneEnforcement:
		m.enforcementTable, cmd = m.enforcementTable.Update(msg)
	case SceneViolations:
		if m.result == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.violationOffset > 0 {
				m.violationOffset--
			}
		case key.Matches(msg, m.keys.Down):
			if m.violationOffset < len(m.result.Violations)-1 {
				m.violationOffset++
			}
		}
	}
	return m, cmd
}
