package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/cspay/internal/calculation"
	"github.com/rgehrsitz/cspay/internal/compare"
	"github.com/rgehrsitz/cspay/internal/config"
	"github.com/rgehrsitz/cspay/internal/domain"
	"github.com/rgehrsitz/cspay/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state shared by every subcommand for one invocation.
type app struct {
	log    *logrus.Logger
	engine *calculation.CalculationEngine
	parser *config.InputParser

	// now supplies the default cutoff date.
	now func() time.Time

	debug     bool
	logFormat string
	through   string
	full      bool
	payments  string
	format    string
	strategy  string
	save      bool
}

func newApp() *app {
	a := &app{
		log:    logrus.New(),
		engine: calculation.NewCalculationEngine(),
		parser: config.NewInputParser(),
		now:    time.Now,
	}
	a.log.SetOutput(os.Stderr)
	a.log.SetLevel(logrus.InfoLevel)
	return a
}

// configureLogger applies the --debug and --log-format flags.
func (a *app) configureLogger() error {
	switch a.logFormat {
	case "", "text":
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return &domain.ConfigurationError{Parameter: "log-format", Reason: fmt.Sprintf("%q is not one of text, json", a.logFormat)}
	}
	if a.debug {
		a.log.SetLevel(logrus.DebugLevel)
	}
	a.engine.SetLogger(a.log)
	return nil
}

// runOptions builds the projection options from the --full, --through and
// --strategy flags.
func (a *app) runOptions() (calculation.RunOptions, error) {
	opts := calculation.RunOptions{Strategy: domain.AllocationStrategy(a.strategy)}
	if a.strategy != "" {
		if err := calculation.ValidateStrategy(opts.Strategy); err != nil {
			return opts, err
		}
	}
	if a.full {
		opts.Mode = calculation.FullProjection
		return opts, nil
	}
	opts.Mode = calculation.ThroughCutoff
	if a.through == "" {
		opts.Cutoff = domain.DateOnly(a.now())
		return opts, nil
	}
	cutoff, err := domain.ParseDate(a.through)
	if err != nil {
		return opts, &domain.ConfigurationError{Parameter: "through", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", a.through)}
	}
	opts.Cutoff = cutoff
	return opts, nil
}

// reconcile loads the case and, when withPayments is set, its payments, then
// allocates them against the schedule.
func (a *app) reconcile(caseFile string, withPayments bool) (*calculation.Reconciliation, error) {
	c, err := a.parser.LoadFromFile(caseFile)
	if err != nil {
		return nil, err
	}
	opts, err := a.runOptions()
	if err != nil {
		return nil, err
	}

	var made []domain.MadePayment
	if withPayments {
		made, err = a.parser.LoadPayments(c, a.payments)
		if err != nil {
			return nil, err
		}
		if len(made) == 0 {
			a.log.Warnf("no payments loaded for %q; every obligation will be reported unpaid", c.Name)
		}
	}
	return a.engine.Reconcile(c, made, opts)
}

// render writes r with the named formatter, or saves it to a timestamped
// file when --save is set.
func (a *app) render(w io.Writer, r *calculation.Reconciliation, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return &domain.ConfigurationError{Parameter: "format", Reason: fmt.Sprintf("%q is not a known format", format)}
	}
	if a.save {
		filename, err := output.WriteFormatted(f, r, output.Extension(f.Name()))
		if err != nil {
			return err
		}
		a.log.Infof("report written to %s", filename)
		fmt.Fprintln(w, filename)
		return nil
	}
	data, err := f.Format(r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *app) formatOr(def string) string {
	if a.format != "" {
		return a.format
	}
	return def
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cspay",
		Short:         "Child support schedule and compliance calculator",
		Long:          "Builds step-down and payment schedules for a child support order and reconciles payments made against them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configureLogger()
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&a.logFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&a.through, "through", "", "Last date to include, YYYY-MM-DD (default today)")
	flags.BoolVar(&a.full, "full", false, "Project the schedule to the last step-down instead of stopping at --through")
	flags.StringVarP(&a.format, "format", "f", "", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")

	root.AddCommand(stepdownCmd(a))
	root.AddCommand(scheduleCmd(a))
	root.AddCommand(complianceCmd(a))
	root.AddCommand(enforceCmd(a))
	root.AddCommand(violationsCmd(a))
	root.AddCommand(compareCmd(a))
	root.AddCommand(validateCmd(a))
	root.AddCommand(versionCmd())
	return root
}

// paymentFlags adds the flags used by commands that allocate payments.
func paymentFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVar(&a.payments, "payments", "", "Payments file (default: payments_file from the case)")
	cmd.Flags().StringVar(&a.strategy, "strategy", "", "Allocation strategy (oldest_first, nearest_first)")
	cmd.Flags().BoolVar(&a.save, "save", false, "Write the report to a timestamped file")
}

func stepdownCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stepdown [case-file]",
		Short: "Show when each child ages out and the support amount until then",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			events, err := a.engine.StepdownSchedule(c)
			if err != nil {
				return err
			}
			data, err := output.FormatStepdowns(events, a.formatOr("tsv"))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func scheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [case-file]",
		Short: "List every obligation that comes due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reconcile(args[0], false)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), r, a.formatOr("tsv"))
		},
	}
	cmd.Flags().BoolVar(&a.save, "save", false, "Write the report to a timestamped file")
	return cmd
}

func complianceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance [case-file]",
		Short: "Merge obligations and payments into a compliance report with totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reconcile(args[0], true)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), r, a.formatOr("tsv"))
		},
	}
	paymentFlags(cmd, a)
	return cmd
}

func enforceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enforce [case-file]",
		Short: "Show which payments were applied to each obligation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reconcile(args[0], true)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), r, a.formatOr("enforcement"))
		},
	}
	paymentFlags(cmd, a)
	return cmd
}

func violationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "violations [case-file]",
		Short: "Write one pleading paragraph per unpaid obligation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.reconcile(args[0], true)
			if err != nil {
				return err
			}
			if len(r.Violations) == 0 {
				a.log.Infof("%s: no violations", r.CaseName)
			}
			return a.render(cmd.OutOrStdout(), r, a.formatOr("violations"))
		},
	}
	paymentFlags(cmd, a)
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [case-file]",
		Short: "Compare the violations produced by each allocation strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			made, err := a.parser.LoadPayments(c, a.payments)
			if err != nil {
				return err
			}
			opts, err := a.runOptions()
			if err != nil {
				return err
			}
			base := opts.Strategy
			opts.Strategy = ""

			compSet, err := compare.NewCompareEngine(a.engine).Compare(c, made, compare.CompareOptions{Run: opts, Base: base})
			if err != nil {
				return err
			}
			compSet.ConfigPath = args[0]

			var text string
			switch a.formatOr("table") {
			case "table":
				text = (&compare.TableFormatter{}).Format(compSet)
			case "csv":
				text, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				text, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return &domain.ConfigurationError{Parameter: "format", Reason: fmt.Sprintf("%q is not one of table, csv, json", a.format)}
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&a.payments, "payments", "", "Payments file (default: payments_file from the case)")
	cmd.Flags().StringVar(&a.strategy, "strategy", "", "Base allocation strategy (default: the case's allocation)")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [case-file]",
		Short: "Validate a case file and its payments file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			made, err := a.parser.LoadPayments(c, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Case file %s is valid (%d children, %d payments)\n", args[0], len(c.Children), len(made))
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cspay %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		a.log.Error(err)
		os.Exit(1)
	}
}
