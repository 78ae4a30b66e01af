package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCase = `
name: Test Case
start_date: 2020-01-01
obligations:
  child_support: 1000
payments_file: payments.tsv
children:
  - name: Ann
    date_of_birth: 2010-02-03
`

const testPayments = "01/05/2020\t$600.00\n02/10/2020\t$1,400.00\n"

func writeCase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "case.yaml"), []byte(testCase), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payments.tsv"), []byte(testPayments), 0644))
	return filepath.Join(dir, "case.yaml")
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(Options{
		CasePath: writeCase(t),
		Run: calculation.RunOptions{
			Mode:   calculation.ThroughCutoff,
			Cutoff: domain.Date(2020, time.March, 15),
		},
	}, nil)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	updated, next := m.Update(cmd())
	m = updated.(Model)
	if next != nil {
		return run(t, m, next)
	}
	return m
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	return run(t, m, m.Init())
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, SceneLedger, m.currentScene)
	assert.True(t, m.loading)
	assert.NotNil(t, m.engine)
	assert.Contains(t, m.View(), "Loading case")
}

func TestModel_LoadAndReconcile(t *testing.T) {
	m := loadedModel(t)

	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.False(t, m.loading)
	assert.Equal(t, domain.OldestFirst, m.opts.Run.Strategy, "strategy comes from the case")
	assert.Len(t, m.ledgerTable.Rows(), 5, "three dues and two payments")
	assert.Len(t, m.enforcementTable.Rows(), 3)
	assert.Len(t, m.result.Violations, 1)

	view := m.View()
	assert.Contains(t, view, "Test Case")
	assert.Contains(t, view, "Violations (1)")
	assert.Contains(t, view, "$1,000.00")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(Options{CasePath: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	m = run(t, m, m.Init())

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "failed to read file")
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "tab")
	assert.Equal(t, SceneEnforcement, m.currentScene)
	m, _ = press(t, m, "tab")
	assert.Equal(t, SceneViolations, m.currentScene)
	m, _ = press(t, m, "tab")
	assert.Equal(t, SceneLedger, m.currentScene, "tab wraps around")
	m, _ = press(t, m, "shift+tab")
	assert.Equal(t, SceneViolations, m.currentScene)
	m, _ = press(t, m, "1")
	assert.Equal(t, SceneLedger, m.currentScene)
	m, _ = press(t, m, "e")
	assert.Equal(t, SceneEnforcement, m.currentScene)

	updated, _ := m.Update(NavigateMsg{Scene: SceneViolations})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Violation 1 of 1")
	assert.Contains(t, m.View(), "Obligee")
}

func TestModel_LedgerCursor(t *testing.T) {
	m := loadedModel(t)

	assert.Equal(t, 0, m.ledgerTable.Cursor())
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "down")
	assert.Equal(t, 2, m.ledgerTable.Cursor())
	m, _ = press(t, m, "up")
	assert.Equal(t, 1, m.ledgerTable.Cursor())
}

func TestModel_ToggleStrategy(t *testing.T) {
	m := loadedModel(t)

	m, cmd := press(t, m, "s")
	assert.Equal(t, domain.NearestFirst, m.opts.Run.Strategy)
	assert.True(t, m.loading)
	m = run(t, m, cmd)
	assert.Equal(t, domain.NearestFirst, m.result.Strategy)

	m, cmd = press(t, m, "s")
	m = run(t, m, cmd)
	assert.Equal(t, domain.OldestFirst, m.result.Strategy)
}

func TestModel_ToggleMode(t *testing.T) {
	m := loadedModel(t)
	before := len(m.ledgerTable.Rows())

	m, cmd := press(t, m, "f")
	m = run(t, m, cmd)
	assert.Equal(t, "full_projection", m.result.Mode)
	assert.Greater(t, len(m.ledgerTable.Rows()), before, "full projection runs to the last step-down")
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120, m.help.Width)
}

func TestModel_ReconcileError(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(ReconciledMsg{Err: errors.New("boom")})
	m = updated.(Model)
	assert.Contains(t, m.View(), "boom")
}

func TestScene_String(t *testing.T) {
	assert.Equal(t, "Ledger", SceneLedger.String())
	assert.Equal(t, "Enforcement", SceneEnforcement.String())
	assert.Equal(t, "Violations", SceneViolations.String())
	assert.Equal(t, "Unknown", Scene(9).String())
}
