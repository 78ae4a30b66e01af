package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/rgehrsitz/cspay/internal/tui"
)

func main() {
	payments := flag.String("payments", "", "payments file (default: payments_file from the case)")
	through := flag.String("through", "", "last date to include, YYYY-MM-DD (default today)")
	full := flag.Bool("full", false, "project to the last step-down")
	strategy := flag.String("strategy", "", "allocation strategy (oldest_first, nearest_first)")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: cspay-tui [flags] <case-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	casePath := flag.Arg(0)

	if _, err := os.Stat(casePath); os.IsNotExist(err) {
		fmt.Printf("Error: Case file not found: %s\n", casePath)
		os.Exit(1)
	}

	run := calculation.RunOptions{
		Mode:     calculation.ThroughCutoff,
		Cutoff:   domain.DateOnly(time.Now()),
		Strategy: domain.AllocationStrategy(*strategy),
	}
	if *full {
		run.Mode = calculation.FullProjection
	}
	if *through != "" {
		cutoff, err := domain.ParseDate(*through)
		if err != nil {
			fmt.Printf("Error: invalid --through date %q\n", *through)
			os.Exit(1)
		}
		run.Cutoff = cutoff
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	log := logrus.New()
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(logrus.DebugLevel)
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(log)

	model := tui.NewModel(tui.Options{
		CasePath:     casePath,
		PaymentsPath: *payments,
		Run:          run,
	}, engine)

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
