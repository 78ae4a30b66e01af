package tui

import (
	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneLedger Scene = iota
	SceneEnforcement
	SceneViolations
)

// sceneCount is the number of scenes reachable with tab.
const sceneCount = 3

func (s Scene) String() string {
	switch s {
	case SceneLedger:
		return "Ledger"
	case SceneEnforcement:
		return "Enforcement"
	case SceneViolations:
		return "Violations"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CaseLoadedMsg signals the case and its payments have been loaded
type CaseLoadedMsg struct {
	Case     *domain.Case
	Payments []domain.MadePayment
}

// ReconciledMsg carries the result of allocating payments for the case
type ReconciledMsg struct {
	Result *calculation.Reconciliation
	Err    error
}
