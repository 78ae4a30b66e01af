package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/config"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/rgehrsitz/cspay/internal/output"
)

// Options selects the case to load and how to reconcile it.
type Options struct {
	CasePath     string
	PaymentsPath string
	Run          calculation.RunOptions
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	opts     Options
	engine   *calculation.CalculationEngine
	kase     *domain.Case
	payments []domain.MadePayment
	result   *calculation.Reconciliation

	ledgerTable      table.Model
	enforcementTable table.Model
	violationOffset  int

	keys keyMap
	help help.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

var ledgerColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Description", Width: 20},
	{Title: "Amount Due", Width: 12},
	{Title: "Amount Paid", Width: 12},
	{Title: "Remaining", Width: 12},
	{Title: "Notes", Width: 20},
}

var enforcementColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Description", Width: 20},
	{Title: "Amount", Width: 12},
	{Title: "Remaining", Width: 12},
	{Title: "Payments Applied", Width: 40},
}

// NewModel creates a new application model
func NewModel(opts Options, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene:     SceneLedger,
		opts:             opts,
		engine:           engine,
		ledgerTable:      newTable(ledgerColumns),
		enforcementTable: newTable(enforcementColumns),
		keys:             defaultKeyMap(),
		help:             help.New(),
		width:            80,
		height:           24,
		loading:          true,
		loadingMessage:   "Loading case...",
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())
	return t
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadCaseCmd(m.opts.CasePath, m.opts.PaymentsPath)
}

// loadCaseCmd returns a command that loads the case file and its payments
func loadCaseCmd(casePath, paymentsPath string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		c, err := parser.LoadFromFile(casePath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		made, err := parser.LoadPayments(c, paymentsPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return CaseLoadedMsg{Case: c, Payments: made}
	}
}

// reconcileCmd returns a command that allocates the payments for a case
func reconcileCmd(engine *calculation.CalculationEngine, c *domain.Case, made []domain.MadePayment, run calculation.RunOptions) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Reconcile(c, made, run)
		return ReconciledMsg{Result: result, Err: err}
	}
}

// setResult refreshes the tables from a reconciliation.
func (m *Model) setResult(r *calculation.Reconciliation) {
	m.result = r
	m.violationOffset = 0
	m.ledgerTable.SetRows(ledgerRows(r.Ledger))
	m.ledgerTable.GotoTop()
	m.enforcementTable.SetRows(enforcementRows(r.Ledger))
	m.enforcementTable.GotoTop()
}

func ledgerRows(ledger *domain.Ledger) []table.Row {
	rows := make([]table.Row, 0, len(ledger.Entries))
	for _, e := range ledger.Entries {
		due, paid := "", ""
		if e.IsDue() {
			due = output.FormatCurrency(e.Amount)
		} else {
			paid = output.FormatCurrency(e.Amount)
		}
		rows = append(rows, table.Row{
			output.FormatDate(e.Date),
			e.Description,
			due,
			paid,
			output.FormatCurrency(e.Remaining),
			e.Note,
		})
	}
	return rows
}

func enforcementRows(ledger *domain.Ledger) []table.Row {
	due := ledger.DueEntries()
	rows := make([]table.Row, 0, len(due))
	for _, e := range due {
		applied := make([]string, 0, len(e.Applications))
		for _, a := range e.Applications {
			applied = append(applied, fmt.Sprintf("%s %s", output.FormatDate(a.Date), output.FormatCurrency(a.Amount)))
		}
		rows = append(rows, table.Row{
			output.FormatDate(e.Date),
			e.Description,
			output.FormatCurrency(e.Amount),
			output.FormatCurrency(e.Remaining),
			strings.Join(applied, "; "),
		})
	}
	return rows
}
